// Package wire converts engine actions to and from the JSON envelope the
// presentation clients send.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"impostor/internal/app"
	"impostor/internal/domain"
)

var (
	ErrUnknownActionType = errors.New("unknown action type")
	ErrInvalidPayload    = errors.New("invalid action payload")
)

// Envelope is the serialized form of one action
type Envelope struct {
	Type    domain.ActionKind `json:"type"`
	Payload json.RawMessage   `json:"payload,omitempty"`
}

// Decode parses a JSON envelope into an action
func Decode(data []byte) (domain.Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return env.Action()
}

// Action builds the typed action carried by the envelope
func (env Envelope) Action() (domain.Action, error) {
	switch env.Type {
	case domain.KindOpenSetup:
		return domain.OpenSetup{}, nil
	case domain.KindAddPlayer:
		return decodePayload[domain.AddPlayer](env)
	case domain.KindRemovePlayer:
		return decodePayload[domain.RemovePlayer](env)
	case domain.KindSetImpostorCount:
		return decodePayload[domain.SetImpostorCount](env)
	case domain.KindStartGame:
		return decodePayload[domain.StartGame](env)
	case domain.KindAdvanceReveal:
		return domain.AdvanceReveal{}, nil
	case domain.KindEndRound:
		return domain.EndRound{}, nil
	case domain.KindSubmitDrawing:
		return domain.SubmitDrawing{}, nil
	case domain.KindCastVote:
		return decodePayload[domain.CastVote](env)
	case domain.KindCastDigitalVote:
		return decodePayload[domain.CastDigitalVote](env)
	case domain.KindGuessWord:
		return decodePayload[domain.GuessWord](env)
	case domain.KindSpyGuess:
		return decodePayload[domain.SpyGuess](env)
	case domain.KindNextRound:
		return domain.NextRound{}, nil
	case domain.KindCancelGame:
		return domain.CancelGame{}, nil
	case domain.KindResetGame:
		return domain.ResetGame{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, env.Type)
	}
}

func decodePayload[T domain.Action](env Envelope) (domain.Action, error) {
	var a T
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return a, nil
	}
	if err := json.Unmarshal(env.Payload, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, env.Type, err)
	}
	return a, nil
}

// Encode serializes an action into its envelope
func Encode(a domain.Action) ([]byte, error) {
	env, err := NewEnvelope(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// NewEnvelope wraps an action. Actions without fields carry no payload.
func NewEnvelope(a domain.Action) (Envelope, error) {
	if a == nil {
		return Envelope{}, ErrUnknownActionType
	}

	env := Envelope{Type: a.Kind()}
	switch a.(type) {
	case domain.OpenSetup, domain.AdvanceReveal, domain.EndRound, domain.SubmitDrawing,
		domain.NextRound, domain.CancelGame, domain.ResetGame:
		return env, nil
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return Envelope{}, err
	}
	env.Payload = payload
	return env, nil
}

// Error codes
const (
	ErrCodeInvalidMessage        = "INVALID_MESSAGE"
	ErrCodeUnknownAction         = "UNKNOWN_ACTION"
	ErrCodeTableNotFound         = "TABLE_NOT_FOUND"
	ErrCodeTooManyTables         = "TOO_MANY_TABLES"
	ErrCodeActionNotValidInPhase = "ACTION_NOT_VALID_IN_PHASE"
	ErrCodeInvalidPlayerCount    = "INVALID_PLAYER_COUNT"
	ErrCodeInvalidImpostorCount  = "INVALID_IMPOSTOR_COUNT"
	ErrCodeUnknownTarget         = "UNKNOWN_TARGET"
	ErrCodeNotYourTurn           = "NOT_YOUR_TURN"
	ErrCodeEmptyName             = "EMPTY_NAME"
	ErrCodeEmptyGuess            = "EMPTY_GUESS"
	ErrCodeSpyNotInPlay          = "SPY_NOT_IN_PLAY"
	ErrCodeRateLimited           = "RATE_LIMITED"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidPayload, ErrCodeInvalidMessage},
	{ErrUnknownActionType, ErrCodeUnknownAction},
	{app.ErrTableNotFound, ErrCodeTableNotFound},
	{app.ErrTooManyTables, ErrCodeTooManyTables},
	{domain.ErrActionNotValidInPhase, ErrCodeActionNotValidInPhase},
	{domain.ErrInvalidPlayerCount, ErrCodeInvalidPlayerCount},
	{domain.ErrInvalidImpostorCount, ErrCodeInvalidImpostorCount},
	{domain.ErrUnknownTarget, ErrCodeUnknownTarget},
	{domain.ErrNotYourTurn, ErrCodeNotYourTurn},
	{domain.ErrEmptyName, ErrCodeEmptyName},
	{domain.ErrEmptyGuess, ErrCodeEmptyGuess},
	{domain.ErrSpyNotInPlay, ErrCodeSpyNotInPlay},
}

// ErrorCode maps an error to the stable code clients switch on
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ErrCodeInternalError
}
