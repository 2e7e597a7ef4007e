package domain

import "errors"

// Domain errors. The engine only returns them when strict rules are enabled;
// in permissive mode invalid actions leave the state unchanged.
var (
	ErrActionNotValidInPhase = errors.New("action not valid in current phase")
	ErrInvalidPlayerCount    = errors.New("invalid player count")
	ErrInvalidImpostorCount  = errors.New("invalid impostor count")
	ErrUnknownTarget         = errors.New("unknown target player")
	ErrNotYourTurn           = errors.New("not your turn to vote")
	ErrEmptyName             = errors.New("player name cannot be empty")
	ErrEmptyGuess            = errors.New("guess cannot be empty")
	ErrSpyNotInPlay          = errors.New("spy role is not in play")
)
