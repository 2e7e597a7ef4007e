package app

import (
	"log/slog"
	"sync"
	"time"

	"impostor/internal/domain"
)

// ClientConnection represents a connected presentation client
type ClientConnection interface {
	Send(message interface{}) error
	GetClientID() string
	Close() error
}

// Table owns the single writable game state of one device. Every change goes
// through Dispatch; subscribers receive a snapshot after each one.
type Table struct {
	code      string
	engine    *domain.Engine
	state     domain.State
	mu        sync.RWMutex
	clients   map[string]ClientConnection // clientID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	createdAt    time.Time
	lastActivity time.Time

	// Event channel for broadcasting
	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewTable creates a table in the welcome phase
func NewTable(code string, engine *domain.Engine, logger *slog.Logger) *Table {
	now := time.Now()
	t := &Table{
		code:         code,
		engine:       engine,
		state:        domain.NewState(),
		clients:      make(map[string]ClientConnection),
		logger:       logger.With("tableCode", code),
		createdAt:    now,
		lastActivity: now,
		events:       make(chan *domain.GameEvent, 100),
		done:         make(chan struct{}),
	}

	// Start event broadcaster
	go t.eventLoop()

	return t
}

// Code returns the table code
func (t *Table) Code() string {
	return t.code
}

// CreatedAt returns when the table was created
func (t *Table) CreatedAt() time.Time {
	return t.createdAt
}

// LastActivity returns when the last action was dispatched
func (t *Table) LastActivity() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastActivity
}

// Snapshot returns a copy of the current state
func (t *Table) Snapshot() domain.State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Clone()
}

// Phase returns the current game phase
func (t *Table) Phase() domain.Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Phase
}

// PlayerCount returns the number of players on the roster
func (t *Table) PlayerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.state.Players)
}

// Dispatch applies an action and publishes the resulting state. The caller
// gets the complete new state, or the old one and an error.
func (t *Table) Dispatch(action domain.Action) (domain.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.state
	next, err := t.engine.Apply(prev, action)
	if err != nil {
		t.logger.Debug("action rejected", "action", actionKind(action), "phase", prev.Phase, "error", err)
		return prev.Clone(), err
	}

	t.state = next
	t.lastActivity = time.Now()

	tr := domain.Diff(prev, next)
	if tr.Changed() {
		t.logger.Info("phase changed",
			"action", actionKind(action),
			"from", tr.From,
			"to", tr.To,
			"winner", tr.Winner,
		)
	} else {
		t.logger.Debug("action applied", "action", actionKind(action), "phase", next.Phase)
	}

	snapshot := next.Clone()
	t.queueEvent(domain.NewEvent(tr.EventType(), t.code, actionKind(action), &snapshot))

	return next.Clone(), nil
}

func actionKind(a domain.Action) domain.ActionKind {
	if a == nil {
		return ""
	}
	return a.Kind()
}

// RegisterClient registers a client and sends it the current state
func (t *Table) RegisterClient(client ClientConnection) {
	t.clientsMu.Lock()
	t.clients[client.GetClientID()] = client
	t.clientsMu.Unlock()

	snapshot := t.Snapshot()
	if err := client.Send(domain.NewEvent(domain.EventStateChanged, t.code, "", &snapshot)); err != nil {
		t.logger.Debug("failed to send to client", "clientID", client.GetClientID(), "error", err)
	}
}

// UnregisterClient removes a client connection
func (t *Table) UnregisterClient(clientID string) {
	t.clientsMu.Lock()
	defer t.clientsMu.Unlock()
	delete(t.clients, clientID)
}

// ClientCount returns the number of connected clients
func (t *Table) ClientCount() int {
	t.clientsMu.RLock()
	defer t.clientsMu.RUnlock()
	return len(t.clients)
}

// queueEvent adds an event to the broadcast queue
func (t *Table) queueEvent(event *domain.GameEvent) {
	select {
	case t.events <- event:
	default:
		t.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (t *Table) eventLoop() {
	for {
		select {
		case <-t.done:
			return
		case event := <-t.events:
			t.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to every client
func (t *Table) broadcastEvent(event *domain.GameEvent) {
	t.clientsMu.RLock()
	defer t.clientsMu.RUnlock()

	for clientID, client := range t.clients {
		if err := client.Send(event); err != nil {
			t.logger.Debug("failed to send to client", "clientID", clientID, "error", err)
		}
	}
}

// Close shuts down the table and its clients
func (t *Table) Close() {
	t.closeOnce.Do(func() {
		close(t.done)

		t.clientsMu.Lock()
		defer t.clientsMu.Unlock()

		closing := domain.NewEvent(domain.EventTableClosed, t.code, "", nil)
		for _, client := range t.clients {
			_ = client.Send(closing)
			client.Close()
		}
		t.clients = make(map[string]ClientConnection)
	})
}
