package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_RoleCard(t *testing.T) {
	t.Parallel()

	s := table(PhaseRoleReveal, RoleCitizen, RoleImpostor, RoleSpy, RoleJester)
	s.SecretWord = "ñandú"
	s.RealCategoryName = "Animals"

	citizen, ok := s.RoleCard(0)
	require.True(t, ok)
	assert.Equal(t, "ñandú", citizen.SecretWord)
	assert.Empty(t, citizen.Category)

	impostor, _ := s.RoleCard(1)
	assert.Empty(t, impostor.SecretWord)
	assert.Empty(t, impostor.Category)

	s.ImpostorKnowsCategory = true
	impostor, _ = s.RoleCard(1)
	assert.Equal(t, "Animals", impostor.Category)

	spy, _ := s.RoleCard(2)
	assert.Empty(t, spy.SecretWord)
	assert.Equal(t, "Animals", spy.Category)
	assert.Equal(t, "Ñ", spy.FirstLetter)

	jester, _ := s.RoleCard(3)
	assert.Equal(t, "ñandú", jester.SecretWord)
	assert.NotEmpty(t, jester.Badge)

	_, ok = s.RoleCard(4)
	assert.False(t, ok)
}

func TestState_Views(t *testing.T) {
	t.Parallel()

	s := table(PhaseDigitalVoting, RoleCitizen, RoleImpostor, RoleCitizen)
	s.Players[0].IsAlive = false
	s.Players[2].VotesReceived = 2
	s.VotingIndex = 1

	assert.Len(t, s.AlivePlayers(), 2)
	voter, ok := s.CurrentVoter()
	require.True(t, ok)
	assert.Equal(t, "p3", voter.ID)

	reveal, ok := s.CurrentRevealPlayer()
	require.True(t, ok)
	assert.Equal(t, "p1", reveal.ID)

	assert.Equal(t, []VoteResult{
		{PlayerID: "p1", Name: "Player 1", VoteCount: 0, IsAlive: false},
		{PlayerID: "p2", Name: "Player 2", VoteCount: 0, IsAlive: true},
		{PlayerID: "p3", Name: "Player 3", VoteCount: 2, IsAlive: true},
	}, s.Tally())

	assert.True(t, s.ShowCancel())
	assert.Equal(t, -1, s.PlayerIndex("ghost"))
	assert.Len(t, s.PlayerInfoList(), 3)
}

func TestMatchesSecret(t *testing.T) {
	t.Parallel()

	assert.True(t, MatchesSecret(" Mesa ", "mesa"))
	assert.True(t, MatchesSecret("MESA", "Mesa"))
	assert.False(t, MatchesSecret("mesas", "mesa"))
}

func TestDealRoles_NeverReusesAnIndex(t *testing.T) {
	t.Parallel()

	roles := dealRoles(FastRand{}, 4, 10, []Role{RoleSpy, RoleJester})
	assert.Equal(t, []Role{RoleImpostor, RoleImpostor, RoleImpostor, RoleImpostor}, roles)

	roles = dealRoles(FastRand{}, 6, 2, []Role{RoleSpy, RoleJester})
	counts := countRoles(toPlayers(roles))
	assert.Equal(t, map[Role]int{RoleImpostor: 2, RoleSpy: 1, RoleJester: 1, RoleCitizen: 2}, counts)
}

func toPlayers(roles []Role) []Player {
	players := make([]Player, len(roles))
	for i, r := range roles {
		players[i].Role = r
	}
	return players
}

func TestTransition(t *testing.T) {
	t.Parallel()

	prev := table(PhaseVoting, RoleImpostor, RoleCitizen, RoleCitizen)
	next := prev.Clone()
	next.Phase = PhaseResults
	next.Winner = RoleCitizen

	tr := Diff(prev, next)
	assert.True(t, tr.Changed())
	assert.Equal(t, EventGameOver, tr.EventType())
	assert.Equal(t, EventStateChanged, Diff(prev, prev).EventType())
}
