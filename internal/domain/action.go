package domain

// ActionKind names an action variant on the wire and in logs
type ActionKind string

const (
	KindOpenSetup        ActionKind = "open_setup"
	KindAddPlayer        ActionKind = "add_player"
	KindRemovePlayer     ActionKind = "remove_player"
	KindSetImpostorCount ActionKind = "set_impostor_count"
	KindStartGame        ActionKind = "start_game"
	KindAdvanceReveal    ActionKind = "advance_reveal"
	KindEndRound         ActionKind = "end_round"
	KindSubmitDrawing    ActionKind = "submit_drawing"
	KindCastVote         ActionKind = "cast_vote"
	KindCastDigitalVote  ActionKind = "cast_digital_vote"
	KindGuessWord        ActionKind = "guess_word"
	KindSpyGuess         ActionKind = "spy_guess"
	KindNextRound        ActionKind = "next_round"
	KindCancelGame       ActionKind = "cancel_game"
	KindResetGame        ActionKind = "reset_game"
)

// ActionKinds returns every action kind the engine understands
func ActionKinds() []ActionKind {
	return []ActionKind{
		KindOpenSetup,
		KindAddPlayer,
		KindRemovePlayer,
		KindSetImpostorCount,
		KindStartGame,
		KindAdvanceReveal,
		KindEndRound,
		KindSubmitDrawing,
		KindCastVote,
		KindCastDigitalVote,
		KindGuessWord,
		KindSpyGuess,
		KindNextRound,
		KindCancelGame,
		KindResetGame,
	}
}

// Action is a closed set of inputs to the engine. Only types in this package
// can implement it.
type Action interface {
	Kind() ActionKind
	action()
}

// OpenSetup leaves the welcome screen
type OpenSetup struct{}

// AddPlayer appends a player to the roster
type AddPlayer struct {
	Name string `json:"name"`
}

// RemovePlayer drops a player from the roster
type RemovePlayer struct {
	PlayerID string `json:"playerId"`
}

// SetImpostorCount stores how many impostors the next game deals
type SetImpostorCount struct {
	Count int `json:"count"`
}

// StartGame deals roles and picks the secret word
type StartGame struct {
	CategoryID            string   `json:"categoryId"`
	CustomWord            string   `json:"customWord,omitempty"`
	ImpostorKnowsCategory bool     `json:"impostorKnowsCategory"`
	UseDigitalVoting      bool     `json:"useDigitalVoting"`
	UseLastBreath         bool     `json:"useLastBreath"`
	Mode                  GameMode `json:"gameMode"`
	Roles                 []Role   `json:"selectedRoles"`
}

// AdvanceReveal hands the device to the next player
type AdvanceReveal struct{}

// EndRound stops discussion and opens the vote
type EndRound struct{}

// SubmitDrawing finishes the current drawer's turn in silent mode
type SubmitDrawing struct{}

// CastVote eliminates the player the group named out loud
type CastVote struct {
	TargetID string `json:"targetId"`
}

// CastDigitalVote is one secret ballot
type CastDigitalVote struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"`
}

// GuessWord is an eliminated impostor's last-breath guess
type GuessWord struct {
	Guess string `json:"guess"`
}

// SpyGuess is the spy's attempt to name the word
type SpyGuess struct {
	Guess string `json:"guess"`
}

// NextRound leaves the round results screen for another discussion round
type NextRound struct{}

// CancelGame abandons the running game
type CancelGame struct{}

// ResetGame clears the game but keeps the roster and sticky settings
type ResetGame struct{}

func (OpenSetup) Kind() ActionKind        { return KindOpenSetup }
func (AddPlayer) Kind() ActionKind        { return KindAddPlayer }
func (RemovePlayer) Kind() ActionKind     { return KindRemovePlayer }
func (SetImpostorCount) Kind() ActionKind { return KindSetImpostorCount }
func (StartGame) Kind() ActionKind        { return KindStartGame }
func (AdvanceReveal) Kind() ActionKind    { return KindAdvanceReveal }
func (EndRound) Kind() ActionKind         { return KindEndRound }
func (SubmitDrawing) Kind() ActionKind    { return KindSubmitDrawing }
func (CastVote) Kind() ActionKind         { return KindCastVote }
func (CastDigitalVote) Kind() ActionKind  { return KindCastDigitalVote }
func (GuessWord) Kind() ActionKind        { return KindGuessWord }
func (SpyGuess) Kind() ActionKind         { return KindSpyGuess }
func (NextRound) Kind() ActionKind        { return KindNextRound }
func (CancelGame) Kind() ActionKind       { return KindCancelGame }
func (ResetGame) Kind() ActionKind        { return KindResetGame }

func (OpenSetup) action()        {}
func (AddPlayer) action()        {}
func (RemovePlayer) action()     {}
func (SetImpostorCount) action() {}
func (StartGame) action()        {}
func (AdvanceReveal) action()    {}
func (EndRound) action()         {}
func (SubmitDrawing) action()    {}
func (CastVote) action()         {}
func (CastDigitalVote) action()  {}
func (GuessWord) action()        {}
func (SpyGuess) action()         {}
func (NextRound) action()        {}
func (CancelGame) action()       {}
func (ResetGame) action()        {}

// allowedPhases lists where each action makes sense. Only strict rules
// consult it.
var allowedPhases = map[ActionKind][]Phase{
	KindOpenSetup:        {PhaseWelcome},
	KindAddPlayer:        {PhaseSetup},
	KindRemovePlayer:     {PhaseSetup},
	KindSetImpostorCount: {PhaseSetup},
	KindStartGame:        {PhaseSetup},
	KindAdvanceReveal:    {PhaseRoleReveal},
	KindEndRound:         {PhaseRoundInProgress},
	KindSubmitDrawing:    {PhaseRoundInProgress},
	KindCastVote:         {PhaseVoting},
	KindCastDigitalVote:  {PhaseDigitalVoting},
	KindGuessWord:        {PhaseLastBreath},
	KindSpyGuess:         {PhaseRoundInProgress, PhaseVoting, PhaseDigitalVoting, PhaseRoundResults},
	KindNextRound:        {PhaseRoundResults},
	KindCancelGame:       {PhaseRoleReveal, PhaseRoundInProgress, PhaseVoting, PhaseDigitalVoting, PhaseLastBreath, PhaseRoundResults},
	KindResetGame:        Phases(),
}

// AllowedIn reports whether an action of the given kind is meaningful in phase p
func (k ActionKind) AllowedIn(p Phase) bool {
	for _, phase := range allowedPhases[k] {
		if phase == p {
			return true
		}
	}
	return false
}
