package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"impostor/internal/app"
	"impostor/internal/domain"
	"impostor/internal/transport/wire"
	"impostor/internal/words"
)

const (
	// maxActionBody caps a dispatched action envelope
	maxActionBody = 16 << 10

	// qrSize is the side of the table QR code in pixels
	qrSize = 320
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateTableResponse is the response for table creation
type CreateTableResponse struct {
	TableCode string `json:"tableCode"`
	Link      string `json:"link"`
	QRCodeURL string `json:"qrCodeUrl"`
}

// GetTableResponse is the response for getting table info
type GetTableResponse struct {
	TableCode   string `json:"tableCode"`
	PlayerCount int    `json:"playerCount"`
	Phase       string `json:"phase"`
	Clients     int    `json:"clients"`
}

// StateResponse carries the snapshot plus the views the current screen needs
type StateResponse struct {
	TableCode  string              `json:"tableCode"`
	State      domain.State        `json:"state"`
	ShowCancel bool                `json:"showCancel"`
	RevealCard *domain.RoleCard    `json:"revealCard,omitempty"`
	Drawer     *domain.PlayerInfo  `json:"drawer,omitempty"`
	Voter      *domain.PlayerInfo  `json:"voter,omitempty"`
	Tally      []domain.VoteResult `json:"tally,omitempty"`
}

// CategoriesResponse is the response for the categories endpoint
type CategoriesResponse struct {
	Categories []words.CategoryInfo `json:"categories"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	ActiveTables int `json:"activeTables"`
	TotalPlayers int `json:"totalPlayers"`
}

// NewStateResponse derives the screen views from a snapshot
func NewStateResponse(code string, s domain.State) *StateResponse {
	resp := &StateResponse{
		TableCode:  code,
		State:      s,
		ShowCancel: s.ShowCancel(),
	}

	switch s.Phase {
	case domain.PhaseRoleReveal:
		if card, ok := s.RoleCard(s.RevealIndex); ok {
			resp.RevealCard = &card
		}
	case domain.PhaseRoundInProgress:
		if s.Mode == domain.ModeSilent {
			if p, ok := s.CurrentDrawer(); ok {
				info := p.ToInfo()
				resp.Drawer = &info
			}
		}
	case domain.PhaseDigitalVoting:
		if p, ok := s.CurrentVoter(); ok {
			info := p.ToInfo()
			resp.Voter = &info
		}
	case domain.PhaseRoundResults, domain.PhaseLastBreath, domain.PhaseResults:
		resp.Tally = s.Tally()
	}

	return resp
}

// handleCreateTable handles POST /api/tables
func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	table, err := s.hub.CreateTable()
	if err != nil {
		if errors.Is(err, app.ErrTooManyTables) {
			s.sendError(w, http.StatusServiceUnavailable, wire.ErrCodeTooManyTables, "Too many active tables")
		} else {
			s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create table")
		}
		return
	}

	s.sendSuccess(w, &CreateTableResponse{
		TableCode: table.Code(),
		Link:      tableLink(r, table.Code()),
		QRCodeURL: "/api/tables/" + table.Code() + "/qr",
	})
}

// handleGetTable handles GET /api/tables/{tableCode}
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	s.sendSuccess(w, &GetTableResponse{
		TableCode:   table.Code(),
		PlayerCount: table.PlayerCount(),
		Phase:       string(table.Phase()),
		Clients:     table.ClientCount(),
	})
}

// handleDeleteTable handles DELETE /api/tables/{tableCode}
func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	s.hub.DeleteTable(table.Code())
	w.WriteHeader(http.StatusNoContent)
}

// handleGetState handles GET /api/tables/{tableCode}/state
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	s.sendSuccess(w, NewStateResponse(table.Code(), table.Snapshot()))
}

// handleDispatch handles POST /api/tables/{tableCode}/actions
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxActionBody))
	if err != nil {
		s.sendError(w, http.StatusRequestEntityTooLarge, wire.ErrCodeInvalidMessage, "Action body too large")
		return
	}

	action, err := wire.Decode(body)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, wire.ErrorCode(err), err.Error())
		return
	}

	next, err := table.Dispatch(action)
	if err != nil {
		s.sendError(w, http.StatusConflict, wire.ErrorCode(err), err.Error())
		return
	}

	s.sendSuccess(w, NewStateResponse(table.Code(), next))
}

// handleQRCode handles GET /api/tables/{tableCode}/qr
func (s *Server) handleQRCode(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(tableLink(r, table.Code()), qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Error("failed to encode qr code", "tableCode", table.Code(), "error", err)
		s.sendError(w, http.StatusInternalServerError, wire.ErrCodeInternalError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// handleCategories handles GET /api/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &CategoriesResponse{
		Categories: s.categories.Categories(),
	})
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveTables: s.hub.TableCount(),
		TotalPlayers: s.hub.TotalPlayerCount(),
	})
}

// handleStatic serves static files
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	// Strip /static/ prefix
	path := strings.TrimPrefix(r.URL.Path, "/static/")

	file, err := s.webFS.Open("static/" + path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		http.NotFound(w, r)
		return
	}

	rs, ok := file.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}

	http.ServeContent(w, r, stat.Name(), stat.ModTime(), rs)
}

// handleSPA serves the single-page application
func (s *Server) handleSPA(w http.ResponseWriter, r *http.Request) {
	// Everything else renders index.html so links like /t/ABC123 work
	file, err := s.webFS.Open("index.html")
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	rs, ok := file.(io.ReadSeeker)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", stat.ModTime(), rs)
}

// lookupTable resolves the table named in the path or writes a 404
func (s *Server) lookupTable(w http.ResponseWriter, r *http.Request) (*app.Table, bool) {
	code := strings.ToUpper(r.PathValue("tableCode"))
	if code == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_TABLE_CODE", "Table code is required")
		return nil, false
	}

	table, err := s.hub.GetTable(code)
	if err != nil {
		if errors.Is(err, app.ErrTableNotFound) {
			s.sendError(w, http.StatusNotFound, wire.ErrCodeTableNotFound, "Table not found")
		} else {
			s.sendError(w, http.StatusInternalServerError, wire.ErrCodeInternalError, "Internal server error")
		}
		return nil, false
	}

	return table, true
}

// tableLink builds the URL a second screen opens to follow a table
func tableLink(r *http.Request, code string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/t/" + code
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
