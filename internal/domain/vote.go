package domain

import (
	"strings"
)

// VoteResult is one row of the tally shown after voting
type VoteResult struct {
	PlayerID  string `json:"playerId"`
	Name      string `json:"name"`
	VoteCount int    `json:"voteCount"`
	IsAlive   bool   `json:"isAlive"`
}

// Tally returns the vote count of every player in roster order
func (s State) Tally() []VoteResult {
	results := make([]VoteResult, 0, len(s.Players))
	for _, p := range s.Players {
		results = append(results, VoteResult{
			PlayerID:  p.ID,
			Name:      p.Name,
			VoteCount: p.VotesReceived,
			IsAlive:   p.IsAlive,
		})
	}
	return results
}

// mostVoted returns the roster index of the alive player with the strictly
// highest tally. Ties go to the first such player in roster order. It
// returns -1 when no alive player received a vote.
func mostVoted(players []Player) int {
	best, bestVotes := -1, 0
	for i, p := range players {
		if !p.IsAlive {
			continue
		}
		if p.VotesReceived > bestVotes {
			best, bestVotes = i, p.VotesReceived
		}
	}
	return best
}

// MatchesSecret compares a guess with the secret word, ignoring case and
// surrounding whitespace
func MatchesSecret(guess, secret string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(secret))
}
