package domain

import "time"

// EventType represents the type of table event
type EventType string

const (
	EventStateChanged EventType = "STATE_CHANGED"
	EventGameOver     EventType = "GAME_OVER"
	EventTableClosed  EventType = "TABLE_CLOSED"
)

// GameEvent is pushed to presentation subscribers after a dispatch
type GameEvent struct {
	Type      EventType  `json:"type"`
	TableCode string     `json:"tableCode"`
	Action    ActionKind `json:"action,omitempty"`
	State     *State     `json:"state,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewEvent creates a new table event
func NewEvent(eventType EventType, tableCode string, action ActionKind, state *State) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		TableCode: tableCode,
		Action:    action,
		State:     state,
		Timestamp: time.Now(),
	}
}

// Transition summarises what a dispatch did, for logs and event types
type Transition struct {
	From   Phase
	To     Phase
	Winner Role
}

// Diff describes the move from prev to next
func Diff(prev, next State) Transition {
	return Transition{From: prev.Phase, To: next.Phase, Winner: next.Winner}
}

// Changed reports whether the phase moved
func (t Transition) Changed() bool {
	return t.From != t.To
}

// EventType picks the event to broadcast for this transition
func (t Transition) EventType() EventType {
	if t.To == PhaseResults && t.Winner != "" && t.Changed() {
		return EventGameOver
	}
	return EventStateChanged
}
