// Package enginetest provides a scripted LLM client for tests.
package enginetest

import (
	"context"
	"errors"
	"sync"

	"github.com/ChamsBouzaiene/campus/internal/engine"
)

// Call records one Chat invocation.
type Call struct {
	Model    string
	Messages []engine.ChatMessage
	Tools    []engine.ToolSchema
	Opts     engine.ChatOptions
}

// Reply is one scripted outcome. A non-nil Err is returned instead of Response.
type Reply struct {
	Response engine.LLMResponse
	Err      error
}

// ScriptedLLM returns replies in order and records every call. It is safe
// for concurrent use.
type ScriptedLLM struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Call
}

// New returns a client that plays back replies.
func New(replies ...Reply) *ScriptedLLM {
	return &ScriptedLLM{replies: replies}
}

// Text is a final assistant answer with no tool calls.
func Text(content string) Reply {
	return Reply{Response: engine.LLMResponse{
		Assistant:    engine.ChatMessage{Role: engine.RoleAssistant, Content: content},
		FinishReason: "stop",
	}}
}

// Tools is an assistant turn that requests tool calls.
func Tools(calls ...engine.ToolCall) Reply {
	return Reply{Response: engine.LLMResponse{
		Assistant:    engine.ChatMessage{Role: engine.RoleAssistant},
		ToolCalls:    calls,
		FinishReason: "tool_calls",
	}}
}

// Fail is a reply that returns err.
func Fail(err error) Reply { return Reply{Err: err} }

// ErrExhausted is returned once the script runs out.
var ErrExhausted = errors.New("scripted llm: no replies left")

func (s *ScriptedLLM) Chat(_ context.Context, model string, messages []engine.ChatMessage, tools []engine.ToolSchema, opts engine.ChatOptions) (engine.LLMResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{
		Model:    model,
		Messages: append([]engine.ChatMessage(nil), messages...),
		Tools:    tools,
		Opts:     opts,
	})
	if len(s.replies) == 0 {
		return engine.LLMResponse{}, ErrExhausted
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r.Response, r.Err
}

// Calls returns a copy of the recorded calls.
func (s *ScriptedLLM) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}
