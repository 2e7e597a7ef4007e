package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"impostor/internal/app"
)

// Handler handles WebSocket connections
type Handler struct {
	hub      *app.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Second screens on the local network come from any origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tableCode := strings.ToUpper(r.URL.Query().Get("tableCode"))
	if tableCode == "" {
		http.Error(w, "tableCode is required", http.StatusBadRequest)
		return
	}

	table, err := h.hub.GetTable(tableCode)
	if err != nil {
		if errors.Is(err, app.ErrTableNotFound) {
			http.Error(w, "Table not found", http.StatusNotFound)
		} else {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Upgrade connection to WebSocket
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	clientID := uuid.NewString()
	client := NewClient(conn, table, clientID, h.logger)

	client.sendConnected()
	table.RegisterClient(client)

	h.logger.Info("websocket connected",
		"tableCode", tableCode,
		"clientID", clientID,
	)

	client.Run()
}
