package domain

// Player represents a player at the table
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	IsAlive       bool   `json:"isAlive"`
	VotesReceived int    `json:"votesReceived"`
}

// NewPlayer creates a new alive citizen with the given ID and name
func NewPlayer(id, name string) Player {
	return Player{
		ID:      id,
		Name:    name,
		Role:    RoleCitizen,
		IsAlive: true,
	}
}

// ResetForNewGame clears everything a game assigned to the player
func (p *Player) ResetForNewGame() {
	p.Role = RoleCitizen
	p.IsAlive = true
	p.VotesReceived = 0
}

// Eliminate marks the player as voted out
func (p *Player) Eliminate() {
	p.IsAlive = false
}

// PlayerInfo is a safe view of player data (hides role from onlookers)
type PlayerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAlive bool   `json:"isAlive"`
}

// ToInfo converts a Player to PlayerInfo (without role)
func (p Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:      p.ID,
		Name:    p.Name,
		IsAlive: p.IsAlive,
	}
}
