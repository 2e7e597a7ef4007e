package app

import (
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impostor/internal/domain"
	"impostor/internal/words"
)

type fakeClient struct {
	id     string
	mu     sync.Mutex
	events []*domain.GameEvent
	closed bool
}

func (c *fakeClient) Send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev, ok := message.(*domain.GameEvent); ok {
		c.events = append(c.events, ev)
	}
	return nil
}

func (c *fakeClient) GetClientID() string { return c.id }

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() []*domain.GameEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*domain.GameEvent(nil), c.events...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, opts ...domain.Option) *domain.Engine {
	t.Helper()
	provider, err := words.NewProvider(words.Builtin(), words.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	opts = append([]domain.Option{domain.WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return domain.NewEngine(provider, opts...)
}

func seatPlayers(t *testing.T, table *Table, names ...string) {
	t.Helper()
	_, err := table.Dispatch(domain.OpenSetup{})
	require.NoError(t, err)
	for _, name := range names {
		_, err := table.Dispatch(domain.AddPlayer{Name: name})
		require.NoError(t, err)
	}
}

func TestTable_DispatchUpdatesSnapshot(t *testing.T) {
	table := NewTable("ABC123", newTestEngine(t), discardLogger())
	defer table.Close()

	assert.Equal(t, domain.PhaseWelcome, table.Phase())

	seatPlayers(t, table, "Ana", "Beto", "Caro")
	assert.Equal(t, 3, table.PlayerCount())

	next, err := table.Dispatch(domain.StartGame{CategoryID: words.AllCategoryID})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseRoleReveal, next.Phase)
	assert.NotEmpty(t, next.SecretWord)

	snap := table.Snapshot()
	assert.Equal(t, next.Phase, snap.Phase)
	assert.Equal(t, next.SecretWord, snap.SecretWord)

	// Mutating a snapshot must not leak into the table
	snap.Players[0].Name = "changed"
	assert.NotEqual(t, "changed", table.Snapshot().Players[0].Name)
}

func TestTable_StrictRejectionKeepsState(t *testing.T) {
	table := NewTable("ABC123", newTestEngine(t, domain.WithStrictRules()), discardLogger())
	defer table.Close()

	before := table.LastActivity()
	got, err := table.Dispatch(domain.CastVote{TargetID: "nobody"})
	require.ErrorIs(t, err, domain.ErrActionNotValidInPhase)
	assert.Equal(t, domain.PhaseWelcome, got.Phase)
	assert.Equal(t, domain.PhaseWelcome, table.Phase())
	assert.Equal(t, before, table.LastActivity())
}

func TestTable_BroadcastsToClients(t *testing.T) {
	table := NewTable("ABC123", newTestEngine(t), discardLogger())
	defer table.Close()

	client := &fakeClient{id: "c1"}
	table.RegisterClient(client)
	assert.Equal(t, 1, table.ClientCount())

	// Registration pushes the current state right away
	first := client.received()
	require.Len(t, first, 1)
	assert.Equal(t, domain.EventStateChanged, first[0].Type)
	assert.Equal(t, domain.PhaseWelcome, first[0].State.Phase)

	_, err := table.Dispatch(domain.OpenSetup{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(client.received()) == 2
	}, time.Second, 10*time.Millisecond)

	ev := client.received()[1]
	assert.Equal(t, domain.KindOpenSetup, ev.Action)
	assert.Equal(t, "ABC123", ev.TableCode)
	assert.Equal(t, domain.PhaseSetup, ev.State.Phase)

	table.UnregisterClient("c1")
	assert.Equal(t, 0, table.ClientCount())
}

func TestTable_GameOverEvent(t *testing.T) {
	table := NewTable("ABC123", newTestEngine(t), discardLogger())
	defer table.Close()

	seatPlayers(t, table, "Ana", "Beto", "Caro")
	_, err := table.Dispatch(domain.StartGame{CategoryID: words.AllCategoryID})
	require.NoError(t, err)

	client := &fakeClient{id: "c1"}
	table.RegisterClient(client)

	for i := 0; i < 3; i++ {
		_, err = table.Dispatch(domain.AdvanceReveal{})
		require.NoError(t, err)
	}
	_, err = table.Dispatch(domain.EndRound{})
	require.NoError(t, err)

	var impostorID string
	for _, p := range table.Snapshot().Players {
		if p.Role == domain.RoleImpostor {
			impostorID = p.ID
		}
	}
	require.NotEmpty(t, impostorID)

	final, err := table.Dispatch(domain.CastVote{TargetID: impostorID})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseResults, final.Phase)
	assert.Equal(t, domain.RoleCitizen, final.Winner)

	require.Eventually(t, func() bool {
		events := client.received()
		return len(events) > 0 && events[len(events)-1].Type == domain.EventGameOver
	}, time.Second, 10*time.Millisecond)
}

func TestTable_CloseNotifiesClients(t *testing.T) {
	table := NewTable("ABC123", newTestEngine(t), discardLogger())

	client := &fakeClient{id: "c1"}
	table.RegisterClient(client)
	table.Close()
	table.Close()

	events := client.received()
	require.NotEmpty(t, events)
	assert.Equal(t, domain.EventTableClosed, events[len(events)-1].Type)
	assert.True(t, client.closed)
	assert.Equal(t, 0, table.ClientCount())
}
