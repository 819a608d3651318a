// Package orchestrator turns one message into an ordered run of
// specialists and collects their replies.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChamsBouzaiene/campus/internal/agents"
	"github.com/ChamsBouzaiene/campus/internal/intent"
)

// NoReply stands in for a specialist that produced no text.
const NoReply = "No reply produced."

// ForcedStart opens the handoff chain of a forced turn.
const ForcedStart = "Forced"

// Runner runs one responder on a prompt within a session and returns its
// text. Failures are returned as is; the orchestrator does not retry.
type Runner interface {
	Run(ctx context.Context, key agents.Key, prompt, sessionID string) (string, error)
}

// Segment is one specialist's reply.
type Segment struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
}

// Result is everything a turn produced.
type Result struct {
	Label     string        // raw router output; empty when forced
	Plan      []agents.Key
	Forced    bool
	Segments  []Segment
	Handoff   []string
	AgentKey  agents.Key
	AgentName string
	Text      string // see Combine; a forced turn carries the bare reply
}

// Orchestrator runs plans against a Runner.
type Orchestrator struct {
	runner Runner
}

// New returns an orchestrator backed by runner.
func New(runner Runner) *Orchestrator {
	return &Orchestrator{runner: runner}
}

// Dispatch handles one message. When force names a specialist, the router
// and plan are skipped and that specialist gets the raw message. An
// unrecognized force value is ignored.
func (o *Orchestrator) Dispatch(ctx context.Context, message, sessionID, force string) (*Result, error) {
	if k, ok := agents.ParseSpecialist(force); ok {
		return o.dispatchForced(ctx, k, message, sessionID)
	}

	label, err := o.runner.Run(ctx, agents.Triage, message, sessionID)
	if err != nil {
		return nil, fmt.Errorf("route message: %w", err)
	}

	sig := intent.Detect(message)
	res := &Result{
		Label:   label,
		Plan:    BuildPlan(label, sig),
		Handoff: []string{agents.TriageName},
	}

	for _, k := range res.Plan {
		text, err := o.runner.Run(ctx, k, PromptFor(k, message, sig), sessionID)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", agents.DisplayName(k), err)
		}
		res.add(k, text)
	}

	res.finish()
	return res, nil
}

func (o *Orchestrator) dispatchForced(ctx context.Context, k agents.Key, message, sessionID string) (*Result, error) {
	text, err := o.runner.Run(ctx, k, message, sessionID)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", agents.DisplayName(k), err)
	}
	res := &Result{
		Plan:    []agents.Key{k},
		Forced:  true,
		Handoff: []string{ForcedStart},
	}
	res.add(k, text)
	res.finish()
	// A forced turn has a single speaker, so the text is not labelled.
	res.Text = res.Segments[0].Text
	return res, nil
}

func (r *Result) add(k agents.Key, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = NoReply
	}
	name := agents.DisplayName(k)
	r.Segments = append(r.Segments, Segment{Agent: name, Text: text})
	r.Handoff = append(r.Handoff, name)
}

func (r *Result) finish() {
	r.AgentKey, r.AgentName = agents.Advisor, agents.AdvisorName
	if n := len(r.Segments); n > 0 {
		last := r.Segments[n-1].Agent
		if k, ok := agents.KeyForName(last); ok {
			r.AgentKey, r.AgentName = k, last
		}
	}
	r.Text = Combine(r.Segments)
}

// Combine joins segments as "Agent: text" separated by blank lines.
func Combine(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Agent + ": " + s.Text
	}
	return strings.Join(parts, "\n\n")
}
