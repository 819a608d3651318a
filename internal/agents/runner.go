package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/engine"
	"github.com/ChamsBouzaiene/campus/internal/session"
)

// Runner executes one responder on a prompt within a session: stored
// history goes in ahead of the prompt, and the prompt plus the reply are
// written back afterwards.
type Runner struct {
	registry *Registry
	store    session.Store
	logger   *zap.Logger

	// HistoryLimit caps how many stored items are replayed; 0 replays all.
	HistoryLimit int
}

// NewRunner wires a registry to a session store.
func NewRunner(registry *Registry, store session.Store, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registry: registry, store: store, logger: logger}
}

// Run returns the responder's trimmed final text, which may be empty.
func (r *Runner) Run(ctx context.Context, key Key, prompt, sessionID string) (string, error) {
	agent, err := r.registry.Agent(key)
	if err != nil {
		return "", err
	}

	items, err := r.store.Items(ctx, sessionID, r.HistoryLimit)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}

	start := time.Now()
	st, err := agent.Run(ctx, toMessages(items), prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", agent.Name(), err)
	}
	text := strings.TrimSpace(st.FinalText())

	r.logger.Debug("responder finished",
		zap.String("session_id", sessionID),
		zap.String("agent", agent.Name()),
		zap.Int("steps", st.Step),
		zap.Int("tokens", st.Totals.Total),
		zap.Duration("duration", time.Since(start)),
	)

	written := []session.Item{{Role: session.RoleUser, Content: prompt, Agent: agent.Name()}}
	if text != "" {
		written = append(written, session.Item{Role: session.RoleAssistant, Content: text, Agent: agent.Name()})
	}
	if err := r.store.Append(ctx, sessionID, written...); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return text, nil
}

func toMessages(items []session.Item) []engine.ChatMessage {
	out := make([]engine.ChatMessage, 0, len(items))
	for _, it := range items {
		role := engine.RoleUser
		if it.Role == session.RoleAssistant {
			role = engine.RoleAssistant
		}
		out = append(out, engine.ChatMessage{Role: role, Content: it.Content})
	}
	return out
}
