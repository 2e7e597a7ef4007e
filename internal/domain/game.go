package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	// MinPlayers is the smallest table a game can start with
	MinPlayers = 3

	// MinPlayersForSpecialRoles is the smallest table that may deal a spy or jester
	MinPlayersForSpecialRoles = 4
)

// errNoChange tells Apply to hand back the input state untouched
var errNoChange = errors.New("no change")

// Secret is what a word provider hands back for a game
type Secret struct {
	Word             string `json:"word"`
	CategoryName     string `json:"categoryName"`
	RealCategoryName string `json:"realCategoryName"`
}

// WordProvider resolves the secret word for a category, or wraps a custom word
type WordProvider interface {
	ResolveWord(categoryID, customWord string) Secret
}

// Option configures an Engine
type Option func(*Engine)

// WithRand sets the random source used to deal roles
func WithRand(rng Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithIDGenerator sets the function producing new player IDs
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithStrictRules makes Apply reject actions that are invalid for the
// current state instead of quietly ignoring them
func WithStrictRules() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// Engine is the rules of the game: it maps a state and an action to the next
// state. It holds no game state of its own and is safe for concurrent use as
// long as its Rand is.
type Engine struct {
	words  WordProvider
	rng    Rand
	newID  func() string
	strict bool
}

// NewEngine creates an engine that draws secret words from words
func NewEngine(words WordProvider, opts ...Option) *Engine {
	e := &Engine{
		words: words,
		rng:   FastRand{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strict reports whether the engine enforces strict rules
func (e *Engine) Strict() bool {
	return e.strict
}

// Apply computes the state that follows s after action a. s is never
// modified. On error the returned state is s itself. Unknown actions return
// s unchanged without error.
func (e *Engine) Apply(s State, a Action) (State, error) {
	if a == nil {
		return s, nil
	}

	if e.strict && !a.Kind().AllowedIn(s.Phase) {
		return s, ErrActionNotValidInPhase
	}

	next := s.Clone()
	var err error

	switch act := a.(type) {
	case OpenSetup:
		next.Phase = PhaseSetup
	case AddPlayer:
		err = e.addPlayer(&next, act)
	case RemovePlayer:
		err = e.removePlayer(&next, act)
	case SetImpostorCount:
		err = e.setImpostorCount(&next, act)
	case StartGame:
		err = e.startGame(&next, act)
	case AdvanceReveal:
		advanceReveal(&next)
	case EndRound:
		beginVoting(&next)
	case SubmitDrawing:
		err = e.submitDrawing(&next)
	case CastVote:
		err = e.castVote(&next, act)
	case CastDigitalVote:
		err = e.castDigitalVote(&next, act)
	case GuessWord:
		err = e.guessWord(&next, act.Guess)
	case SpyGuess:
		err = e.spyGuess(&next, act)
	case NextRound:
		next.Phase = PhaseRoundInProgress
		next.DrawingIndex = 0
	case CancelGame:
		cancelGame(&next)
	case ResetGame:
		next = resetGame(s)
	default:
		return s, nil
	}

	if errors.Is(err, errNoChange) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	return next, nil
}

func (e *Engine) addPlayer(s *State, a AddPlayer) error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		if e.strict {
			return ErrEmptyName
		}
		return nil
	}
	s.Players = append(s.Players, NewPlayer(e.newID(), name))
	return nil
}

func (e *Engine) removePlayer(s *State, a RemovePlayer) error {
	i := s.PlayerIndex(a.PlayerID)
	if i < 0 {
		if e.strict {
			return ErrUnknownTarget
		}
		return nil
	}
	s.Players = append(s.Players[:i], s.Players[i+1:]...)
	return nil
}

func (e *Engine) setImpostorCount(s *State, a SetImpostorCount) error {
	if e.strict && a.Count < 1 {
		return ErrInvalidImpostorCount
	}
	s.ImpostorCount = a.Count
	return nil
}

func (e *Engine) startGame(s *State, a StartGame) error {
	n := len(s.Players)
	roles := specialRoles(a.Roles)

	if e.strict {
		if n < MinPlayers {
			return ErrInvalidPlayerCount
		}
		if len(roles) > 0 && n < MinPlayersForSpecialRoles {
			return ErrInvalidPlayerCount
		}
		if s.ImpostorCount < 1 || s.ImpostorCount > n-2 {
			return ErrInvalidImpostorCount
		}
	}

	var secret Secret
	if e.words != nil {
		secret = e.words.ResolveWord(a.CategoryID, a.CustomWord)
	}

	dealt := dealRoles(e.rng, n, s.ImpostorCount, roles)
	for i := range s.Players {
		s.Players[i].ResetForNewGame()
		s.Players[i].Role = dealt[i]
	}

	mode := a.Mode
	if mode != ModeSilent {
		mode = ModeStandard
	}

	s.Phase = PhaseRoleReveal
	s.SecretWord = secret.Word
	s.CategoryID = a.CategoryID
	s.CategoryName = secret.CategoryName
	s.RealCategoryName = secret.RealCategoryName
	s.ImpostorKnowsCategory = a.ImpostorKnowsCategory
	s.UseDigitalVoting = a.UseDigitalVoting
	s.UseLastBreath = a.UseLastBreath
	s.Mode = mode
	s.Roles = roles
	s.RevealIndex = 0
	s.VotingIndex = 0
	s.DrawingIndex = 0
	s.LastEliminated = nil
	s.Winner = ""

	return nil
}

// specialRoles keeps the known optional roles from the request, in dealing order
func specialRoles(requested []Role) []Role {
	roles := make([]Role, 0, len(SpecialRoles))
	for _, r := range SpecialRoles {
		if hasRole(requested, r) {
			roles = append(roles, r)
		}
	}
	return roles
}

func advanceReveal(s *State) {
	if s.RevealIndex >= len(s.Players)-1 {
		s.Phase = PhaseRoundInProgress
		s.DrawingIndex = 0
		return
	}
	s.RevealIndex++
}

// beginVoting opens the vote chosen for this game and clears the tallies
func beginVoting(s *State) {
	if s.UseDigitalVoting {
		s.Phase = PhaseDigitalVoting
	} else {
		s.Phase = PhaseVoting
	}
	s.VotingIndex = 0
	for i := range s.Players {
		s.Players[i].VotesReceived = 0
	}
}

func (e *Engine) submitDrawing(s *State) error {
	if e.strict && s.Mode != ModeSilent {
		return ErrActionNotValidInPhase
	}
	alive := len(s.AlivePlayers())
	if s.DrawingIndex < alive-1 {
		s.DrawingIndex++
		return nil
	}
	beginVoting(s)
	return nil
}

func (e *Engine) castVote(s *State, a CastVote) error {
	i := s.PlayerIndex(a.TargetID)
	if i < 0 || (e.strict && !s.Players[i].IsAlive) {
		if e.strict {
			return ErrUnknownTarget
		}
		return errNoChange
	}
	s.Players[i].VotesReceived++
	eliminate(s, i)
	return nil
}

func (e *Engine) castDigitalVote(s *State, a CastDigitalVote) error {
	alive := s.AlivePlayers()

	if e.strict {
		voter, ok := s.CurrentVoter()
		if !ok || voter.ID != a.VoterID {
			return ErrNotYourTurn
		}
		if t := s.PlayerIndex(a.TargetID); t < 0 || !s.Players[t].IsAlive {
			return ErrUnknownTarget
		}
	}

	if t := s.PlayerIndex(a.TargetID); t >= 0 {
		s.Players[t].VotesReceived++
	}

	if s.VotingIndex < len(alive)-1 {
		s.VotingIndex++
		return nil
	}

	i := mostVoted(s.Players)
	if i < 0 {
		// All ballots tallied but nobody alive matched.
		return errNoChange
	}
	eliminate(s, i)
	return nil
}

func (e *Engine) guessWord(s *State, guess string) error {
	if e.strict && strings.TrimSpace(guess) == "" {
		return ErrEmptyGuess
	}
	s.Phase = PhaseResults
	if MatchesSecret(guess, s.SecretWord) {
		s.Winner = RoleImpostor
	} else {
		s.Winner = RoleCitizen
	}
	return nil
}

func (e *Engine) spyGuess(s *State, a SpyGuess) error {
	if e.strict && !s.HasRole(RoleSpy) {
		return ErrSpyNotInPlay
	}
	return e.guessWord(s, a.Guess)
}

func cancelGame(s *State) {
	s.Phase = PhaseSetup
	s.RevealIndex = 0
	s.VotingIndex = 0
	s.DrawingIndex = 0
	s.LastEliminated = nil
	s.Winner = ""
	for i := range s.Players {
		s.Players[i].ResetForNewGame()
	}
}

// resetGame returns a fresh state in setup. The roster, impostor count,
// category and impostor-knows-category flag carry over.
func resetGame(s State) State {
	next := NewState()
	next.Phase = PhaseSetup
	next.ImpostorCount = s.ImpostorCount
	next.CategoryID = s.CategoryID
	next.ImpostorKnowsCategory = s.ImpostorKnowsCategory
	next.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.ResetForNewGame()
		next.Players[i] = p
	}
	return next
}
