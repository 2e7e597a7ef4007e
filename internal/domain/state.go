package domain

// DefaultImpostorCount is the impostor count of a fresh state
const DefaultImpostorCount = 1

// State is the authoritative record of a game on one device. It is a plain
// value: the engine never mutates a State it is given, it returns a new one.
type State struct {
	Phase   Phase    `json:"phase"`
	Players []Player `json:"players"`

	ImpostorCount         int    `json:"impostorCount"`
	CategoryID            string `json:"categoryId"`
	CategoryName          string `json:"categoryName"`
	RealCategoryName      string `json:"realCategoryName"`
	ImpostorKnowsCategory bool   `json:"impostorKnowsCategory"`
	SecretWord            string `json:"secretWord"`

	RevealIndex  int `json:"revealIndex"`
	VotingIndex  int `json:"votingIndex"`
	DrawingIndex int `json:"drawingIndex"`

	UseDigitalVoting bool     `json:"useDigitalVoting"`
	UseLastBreath    bool     `json:"useLastBreath"`
	Mode             GameMode `json:"gameMode"`
	Roles            []Role   `json:"selectedRoles"`

	LastEliminated *Player `json:"lastEliminated,omitempty"`
	Winner         Role    `json:"winner,omitempty"`
}

// NewState returns the state a process starts with
func NewState() State {
	return State{
		Phase:         PhaseWelcome,
		Players:       []Player{},
		ImpostorCount: DefaultImpostorCount,
		Mode:          ModeStandard,
		Roles:         []Role{},
	}
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	c := s
	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)
	c.Roles = make([]Role, len(s.Roles))
	copy(c.Roles, s.Roles)
	if s.LastEliminated != nil {
		p := *s.LastEliminated
		c.LastEliminated = &p
	}
	return c
}

// HasRole reports whether a special role is enabled for the current game
func (s State) HasRole(r Role) bool {
	return hasRole(s.Roles, r)
}

// IsOver returns true once a winner has been declared
func (s State) IsOver() bool {
	return s.Phase == PhaseResults && s.Winner != ""
}

// ShowCancel reports whether the presentation should offer a cancel button
func (s State) ShowCancel() bool {
	return s.Phase.InGame()
}

// PlayerIndex returns the roster index of the player with the given ID, or -1
func (s State) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// GetPlayer returns a player by ID
func (s State) GetPlayer(id string) (Player, bool) {
	if i := s.PlayerIndex(id); i >= 0 {
		return s.Players[i], true
	}
	return Player{}, false
}

// AlivePlayers returns the players still in the game, in roster order
func (s State) AlivePlayers() []Player {
	alive := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsAlive {
			alive = append(alive, p)
		}
	}
	return alive
}

// CountAlive returns how many alive players match the predicate
func (s State) CountAlive(match func(Role) bool) int {
	n := 0
	for _, p := range s.Players {
		if p.IsAlive && match(p.Role) {
			n++
		}
	}
	return n
}

// PlayerInfoList returns a list of all players as PlayerInfo
func (s State) PlayerInfoList() []PlayerInfo {
	players := make([]PlayerInfo, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p.ToInfo())
	}
	return players
}
