package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"impostor/internal/domain"
)

const (
	// DefaultTableCodeLength is the default length for table codes
	DefaultTableCodeLength = 6

	// DefaultStaleTableTimeout is how long an untouched table is kept
	DefaultStaleTableTimeout = 2 * time.Hour

	// DefaultCleanupInterval is how often stale tables are looked for
	DefaultCleanupInterval = 10 * time.Minute
)

// TableCodeChars are characters used for table codes (no ambiguous chars)
const TableCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HubOptions tunes a Hub
type HubOptions struct {
	CodeLength      int
	MaxTables       int
	StaleTimeout    time.Duration
	CleanupInterval time.Duration
}

// Hub manages the tables of every device using the server
type Hub struct {
	tables map[string]*Table
	mu     sync.RWMutex
	engine *domain.Engine
	opts   HubOptions
	logger *slog.Logger
}

// NewHub creates a new hub. Zero options take defaults.
func NewHub(engine *domain.Engine, opts HubOptions, logger *slog.Logger) *Hub {
	if opts.CodeLength <= 0 {
		opts.CodeLength = DefaultTableCodeLength
	}
	if opts.StaleTimeout <= 0 {
		opts.StaleTimeout = DefaultStaleTableTimeout
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = DefaultCleanupInterval
	}

	return &Hub{
		tables: make(map[string]*Table),
		engine: engine,
		opts:   opts,
		logger: logger,
	}
}

// CreateTable creates a new table with a unique code
func (h *Hub) CreateTable() (*Table, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.MaxTables > 0 && len(h.tables) >= h.opts.MaxTables {
		return nil, ErrTooManyTables
	}

	// Generate unique table code
	var code string
	for attempts := 0; attempts < 10; attempts++ {
		code = h.generateCode()
		if _, exists := h.tables[code]; !exists {
			break
		}
	}

	// Check if we found a unique code
	if _, exists := h.tables[code]; exists {
		return nil, fmt.Errorf("failed to generate unique table code")
	}

	table := NewTable(code, h.engine, h.logger)
	h.tables[code] = table

	h.logger.Info("table created", "tableCode", code)

	return table, nil
}

// GetTable returns a table by code
func (h *Hub) GetTable(code string) (*Table, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	table, ok := h.tables[code]
	if !ok {
		return nil, ErrTableNotFound
	}

	return table, nil
}

// DeleteTable removes a table
func (h *Hub) DeleteTable(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if table, ok := h.tables[code]; ok {
		table.Close()
		delete(h.tables, code)
		h.logger.Info("table deleted", "tableCode", code)
	}
}

// TableCount returns the number of active tables
func (h *Hub) TableCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tables)
}

// TotalPlayerCount returns the total number of players across all tables
func (h *Hub) TotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, table := range h.tables {
		total += table.PlayerCount()
	}
	return total
}

// Close shuts down every table
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, table := range h.tables {
		table.Close()
	}
	h.tables = make(map[string]*Table)
}

// Run removes stale tables until ctx is done
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.CleanupStaleTables(time.Now())
		}
	}
}

// CleanupStaleTables removes tables nobody touched for longer than the stale
// timeout and that have no connected client. It returns how many went.
func (h *Hub) CleanupStaleTables(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	stale := make([]string, 0)
	for code, table := range h.tables {
		if table.ClientCount() == 0 && now.Sub(table.LastActivity()) > h.opts.StaleTimeout {
			stale = append(stale, code)
		}
	}

	for _, code := range stale {
		if table, ok := h.tables[code]; ok {
			table.Close()
			delete(h.tables, code)
			h.logger.Info("stale table cleaned up", "tableCode", code)
		}
	}

	return len(stale)
}

// generateCode generates a random table code
func (h *Hub) generateCode() string {
	b := make([]byte, h.opts.CodeLength)
	rand.Read(b)

	code := make([]byte, h.opts.CodeLength)
	for i := range code {
		code[i] = TableCodeChars[int(b[i])%len(TableCodeChars)]
	}

	return string(code)
}
