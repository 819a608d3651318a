// Package httpapi exposes the chat service over HTTP and WebSocket.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/chat"
	"github.com/ChamsBouzaiene/campus/internal/session"
)

const (
	// AppName is reported by the health endpoint.
	AppName = "campus"

	maxBodyBytes = 1 << 20

	errOnlyPost = "Only POST allowed"
)

// ChatService handles one turn.
type ChatService interface {
	Handle(ctx context.Context, req chat.Request) (*chat.Reply, error)
}

// HistorySource reads stored session items.
type HistorySource interface {
	Items(ctx context.Context, sessionID string, limit int) ([]session.Item, error)
}

type handler struct {
	logger  *zap.Logger
	svc     ChatService
	history HistorySource
	now     func() time.Time
}

// NewServer returns an http.Server serving the API on addr.
func NewServer(logger *zap.Logger, addr string, svc ChatService, history HistorySource) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(logger, svc, history),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewHandler builds the route table. history may be nil, in which case the
// transcript route is not registered.
func NewHandler(logger *zap.Logger, svc ChatService, history HistorySource) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{logger: logger, svc: svc, history: history, now: time.Now}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", h.handleChat)
	mux.HandleFunc("/api/chat-sdk", h.handleChat)
	mux.HandleFunc("/api/health", h.handleHealth)
	mux.HandleFunc("/ws/chat", h.handleWebSocket)
	if history != nil {
		mux.HandleFunc("GET /api/sessions/{id}/transcript", h.handleTranscript)
	}
	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   h.now().UTC().Format(time.RFC3339),
		"app":    AppName,
	})
}

func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errOnlyPost)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, chat.ErrorMessage(chat.ErrInvalidJSON))
		return
	}
	req, err := chat.DecodeRequest(body)
	if err == nil {
		var reply *chat.Reply
		if reply, err = h.svc.Handle(r.Context(), req); err == nil {
			writeJSON(w, http.StatusOK, reply)
			return
		}
	}

	if chat.IsClientError(err) {
		writeError(w, http.StatusBadRequest, chat.ErrorMessage(err))
		return
	}
	h.logger.Error("chat request failed", zap.String("session_id", req.SessionID), zap.Error(err))
	writeError(w, http.StatusBadGateway, chat.ErrorMessage(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
