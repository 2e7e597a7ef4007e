package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_CreateAndGetTable(t *testing.T) {
	hub := NewHub(newTestEngine(t), HubOptions{}, discardLogger())
	defer hub.Close()

	table, err := hub.CreateTable()
	require.NoError(t, err)
	require.Len(t, table.Code(), DefaultTableCodeLength)
	for _, ch := range table.Code() {
		assert.True(t, strings.ContainsRune(TableCodeChars, ch), "unexpected char %q", ch)
	}

	got, err := hub.GetTable(table.Code())
	require.NoError(t, err)
	assert.Same(t, table, got)

	_, err = hub.GetTable("NOPE00")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestHub_CodeLength(t *testing.T) {
	hub := NewHub(newTestEngine(t), HubOptions{CodeLength: 4}, discardLogger())
	defer hub.Close()

	table, err := hub.CreateTable()
	require.NoError(t, err)
	assert.Len(t, table.Code(), 4)
}

func TestHub_MaxTables(t *testing.T) {
	hub := NewHub(newTestEngine(t), HubOptions{MaxTables: 2}, discardLogger())
	defer hub.Close()

	for i := 0; i < 2; i++ {
		_, err := hub.CreateTable()
		require.NoError(t, err)
	}

	_, err := hub.CreateTable()
	assert.ErrorIs(t, err, ErrTooManyTables)
	assert.Equal(t, 2, hub.TableCount())
}

func TestHub_DeleteTable(t *testing.T) {
	hub := NewHub(newTestEngine(t), HubOptions{}, discardLogger())
	defer hub.Close()

	table, err := hub.CreateTable()
	require.NoError(t, err)
	seatPlayers(t, table, "Ana", "Beto")
	assert.Equal(t, 2, hub.TotalPlayerCount())

	hub.DeleteTable(table.Code())
	assert.Equal(t, 0, hub.TableCount())
	assert.Equal(t, 0, hub.TotalPlayerCount())

	// Deleting twice is harmless
	hub.DeleteTable(table.Code())
}

func TestHub_CleanupStaleTables(t *testing.T) {
	hub := NewHub(newTestEngine(t), HubOptions{StaleTimeout: time.Hour}, discardLogger())
	defer hub.Close()

	idle, err := hub.CreateTable()
	require.NoError(t, err)
	watched, err := hub.CreateTable()
	require.NoError(t, err)
	watched.RegisterClient(&fakeClient{id: "tv"})

	assert.Equal(t, 0, hub.CleanupStaleTables(time.Now()))

	removed := hub.CleanupStaleTables(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 1, removed)

	_, err = hub.GetTable(idle.Code())
	assert.ErrorIs(t, err, ErrTableNotFound)
	_, err = hub.GetTable(watched.Code())
	assert.NoError(t, err)
}

func TestHub_RunStopsWithContext(t *testing.T) {
	hub := NewHub(newTestEngine(t), HubOptions{CleanupInterval: 5 * time.Millisecond}, discardLogger())
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
