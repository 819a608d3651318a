package httpapi

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/session"
)

func (h *handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	items, err := h.history.Items(r.Context(), id, 0)
	if err != nil {
		h.logger.Error("load transcript", zap.String("session_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Could not load session")
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	md := TranscriptMarkdown(id, items)
	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(md))
		return
	}

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		h.logger.Error("render transcript", zap.String("session_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Could not render session")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>Session %s</title></head><body>\n%s</body></html>\n",
		html.EscapeString(id), body.String())
}

// TranscriptMarkdown renders stored items as a markdown document, one
// section per item in insertion order.
func TranscriptMarkdown(sessionID string, items []session.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session %s\n", sessionID)
	for _, it := range items {
		speaker := it.Agent
		if speaker == "" {
			speaker = "unknown"
		}
		fmt.Fprintf(&b, "\n## %s (%s)\n\n", speaker, it.Role)
		if !it.CreatedAt.IsZero() {
			fmt.Fprintf(&b, "_%s_\n\n", it.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		}
		b.WriteString(strings.TrimSpace(it.Content))
		b.WriteString("\n")
	}
	return b.String()
}
