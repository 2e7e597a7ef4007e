package domain

// Phase represents the current phase of a game
type Phase string

const (
	PhaseWelcome         Phase = "WELCOME"           // Title screen
	PhaseSetup           Phase = "SETUP"             // Adding players, choosing options
	PhaseRoleReveal      Phase = "ROLE_REVEAL"       // Device passed around, one role at a time
	PhaseRoundInProgress Phase = "ROUND_IN_PROGRESS" // Discussion, or drawing turns in silent mode
	PhaseVoting          Phase = "VOTING"            // Group names one suspect out loud
	PhaseDigitalVoting   Phase = "DIGITAL_VOTING"    // Secret ballot, one alive voter at a time
	PhaseLastBreath      Phase = "LAST_BREATH"       // Eliminated impostor gets one word guess
	PhaseRoundResults    Phase = "ROUND_RESULTS"     // Elimination shown, game continues
	PhaseResults         Phase = "RESULTS"           // Winner declared
)

// Phases returns every phase in the order a game moves through them
func Phases() []Phase {
	return []Phase{
		PhaseWelcome,
		PhaseSetup,
		PhaseRoleReveal,
		PhaseRoundInProgress,
		PhaseVoting,
		PhaseDigitalVoting,
		PhaseLastBreath,
		PhaseRoundResults,
		PhaseResults,
	}
}

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// Valid reports whether p is a known phase
func (p Phase) Valid() bool {
	for _, phase := range Phases() {
		if phase == p {
			return true
		}
	}
	return false
}

// IsVoting returns true for both voting phases
func (p Phase) IsVoting() bool {
	return p == PhaseVoting || p == PhaseDigitalVoting
}

// InGame returns true while a game is running, i.e. a cancel is meaningful
func (p Phase) InGame() bool {
	switch p {
	case PhaseWelcome, PhaseSetup, PhaseResults:
		return false
	}
	return true
}

// GameMode selects how a round is played
type GameMode string

const (
	ModeStandard GameMode = "standard"
	ModeSilent   GameMode = "silent" // Players draw instead of talking
)

// String returns the string representation of the mode
func (m GameMode) String() string {
	return string(m)
}
