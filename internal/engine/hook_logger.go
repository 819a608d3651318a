package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const previewLen = 100

// LoggerHook writes engine events to a zap logger.
type LoggerHook struct{ L *zap.Logger }

func (h LoggerHook) OnStepStart(_ context.Context, st *State) {
	h.L.Debug("step start", zap.String("agent", st.Agent), zap.Int("step", st.Step))
}

func (h LoggerHook) OnBeforeLLM(_ context.Context, st *State, msgs []ChatMessage, toolSchemas []ToolSchema) {
	h.L.Debug("llm request",
		zap.String("agent", st.Agent),
		zap.String("model", st.Model),
		zap.Int("messages", len(msgs)),
		zap.Int("tools", len(toolSchemas)),
	)
}

func (h LoggerHook) OnAfterLLM(_ context.Context, st *State, r LLMResponse) {
	h.L.Debug("llm response",
		zap.String("agent", st.Agent),
		zap.String("finish", r.FinishReason),
		zap.Int("tool_calls", len(r.ToolCalls)),
		zap.Int("prompt_tokens", r.Usage.Prompt),
		zap.Int("completion_tokens", r.Usage.Completion),
		zap.Int("cumulative_tokens", st.Totals.Total),
	)
}

func (h LoggerHook) OnToolCall(_ context.Context, st *State, c ToolCall) {
	h.L.Info("tool call", zap.String("agent", st.Agent), zap.String("tool", c.Name), zap.Any("args", c.Args))
}

func (h LoggerHook) OnToolResult(_ context.Context, st *State, c ToolCall, result string, err error) {
	if err != nil {
		h.L.Warn("tool failed", zap.String("agent", st.Agent), zap.String("tool", c.Name), zap.Error(err))
		return
	}
	if len(result) > previewLen {
		result = result[:previewLen] + "..."
	}
	h.L.Debug("tool result", zap.String("agent", st.Agent), zap.String("tool", c.Name), zap.String("result", result))
}

func (h LoggerHook) OnDone(_ context.Context, st *State) {
	h.L.Info("agent done", zap.String("agent", st.Agent), zap.Int("steps", st.Step), zap.Int("tokens", st.Totals.Total))
}

func (h LoggerHook) OnRetryAttempt(_ context.Context, st *State, attempt int, maxAttempts int, delay time.Duration, err error) {
	st.Retries++
	h.L.Warn("retrying",
		zap.String("agent", st.Agent),
		zap.Int("attempt", attempt),
		zap.Int("max_attempts", maxAttempts),
		zap.Duration("delay", delay),
		zap.Error(err),
	)
}

func (h LoggerHook) OnRetryExhausted(_ context.Context, st *State, err error) {
	h.L.Error("retries exhausted", zap.String("agent", st.Agent), zap.Error(err))
}
