package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CurrentRevealPlayer returns the player who should be holding the device
// during role reveal
func (s State) CurrentRevealPlayer() (Player, bool) {
	if s.RevealIndex < 0 || s.RevealIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.RevealIndex], true
}

// CurrentDrawer returns the alive player whose drawing turn it is
func (s State) CurrentDrawer() (Player, bool) {
	return nthAlive(s, s.DrawingIndex)
}

// CurrentVoter returns the alive player whose secret ballot is next
func (s State) CurrentVoter() (Player, bool) {
	return nthAlive(s, s.VotingIndex)
}

func nthAlive(s State, n int) (Player, bool) {
	alive := s.AlivePlayers()
	if n < 0 || n >= len(alive) {
		return Player{}, false
	}
	return alive[n], true
}

// RoleCard is what the reveal screen shows to one player
type RoleCard struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	Role        Role   `json:"role"`
	Badge       string `json:"badge"`
	SecretWord  string `json:"secretWord,omitempty"`
	Category    string `json:"category,omitempty"`
	FirstLetter string `json:"firstLetter,omitempty"`
}

// RoleCard builds the reveal card for the player at roster index i.
// Citizens and jesters see the word. Impostors see the real category only
// when the table enabled it. Spies always see the real category and the
// word's first letter.
func (s State) RoleCard(i int) (RoleCard, bool) {
	if i < 0 || i >= len(s.Players) {
		return RoleCard{}, false
	}
	p := s.Players[i]
	card := RoleCard{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Role:       p.Role,
		Badge:      p.Role.Badge(),
	}

	switch p.Role {
	case RoleImpostor:
		if s.ImpostorKnowsCategory {
			card.Category = s.RealCategoryName
		}
	case RoleSpy:
		card.Category = s.RealCategoryName
		card.FirstLetter = firstLetter(s.SecretWord)
	default:
		card.SecretWord = s.SecretWord
	}

	return card, true
}

func firstLetter(word string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(word))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
