package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// getRetryConfig returns the retry configuration, using defaults if not provided.
func getRetryConfig(opts ChatOptions) *RetryConfig {
	if opts.RetryConfig != nil {
		return opts.RetryConfig
	}
	defaultConfig := DefaultRetryConfig()
	return &defaultConfig
}

// toolResult represents the result of executing a tool call.
type toolResult struct {
	content string
	err     error
	call    ToolCall
}

// executeToolsWithRetry runs tool calls in parallel and returns results in
// call order. Hook callbacks are serialized.
func executeToolsWithRetry(ctx context.Context, calls []ToolCall, reg ToolRegistry, retryConfig *RetryConfig, hooks Hooks, st *State) []toolResult {
	var (
		wg     sync.WaitGroup
		hookMu sync.Mutex
	)
	results := make([]toolResult, len(calls))

	for i, call := range calls {
		wg.Add(1)
		go func(i int, c ToolCall) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[i] = toolResult{err: err, call: c}
				return
			}
			if c.Error != "" {
				results[i] = toolResult{err: fmt.Errorf("invalid tool call: %s", c.Error), call: c}
				return
			}

			hookMu.Lock()
			hooks.OnToolCall(ctx, st, c)
			hookMu.Unlock()

			res, err := RetryToolCall(ctx, retryConfig.ToolPolicy, c, reg,
				func(attempt int, delay time.Duration, retryErr error) {
					hookMu.Lock()
					defer hookMu.Unlock()
					hooks.OnRetryAttempt(ctx, st, attempt, retryConfig.ToolPolicy.MaxRetries, delay, retryErr)
				},
			)
			if IsRetryExhausted(err) {
				hookMu.Lock()
				hooks.OnRetryExhausted(ctx, st, err)
				hookMu.Unlock()
			}
			results[i] = toolResult{content: res, err: err, call: c}
		}(i, call)
	}

	wg.Wait()
	return results
}

func executeTool(ctx context.Context, call ToolCall, reg ToolRegistry) (string, error) {
	t, ok := reg[call.Name]
	if !ok {
		return "", fmt.Errorf("tool not found: %s (available tools: %v)", call.Name, reg.Names())
	}
	if err := t.ValidateArgs(call.Args); err != nil {
		return "", fmt.Errorf("validation failed for tool %s: %w", call.Name, err)
	}
	result, err := t.Fn(ctx, call.Args)
	if err != nil {
		return "", fmt.Errorf("execution failed for tool %s: %w", call.Name, err)
	}
	return result, nil
}

// callLLMWithRetry calls the LLM with retry logic and returns the response.
func callLLMWithRetry(ctx context.Context, llm LLMClient, msgs []ChatMessage, schemas []ToolSchema, opts ChatOptions, retryConfig *RetryConfig, hooks Hooks, st *State) (LLMResponse, error) {
	resp, err := RetryLLMCall(ctx, retryConfig.LLMPolicy, llm, st.Model, msgs, schemas, opts,
		func(attempt int, delay time.Duration, retryErr error) {
			hooks.OnRetryAttempt(ctx, st, attempt, retryConfig.LLMPolicy.MaxRetries, delay, retryErr)
		},
	)
	if err != nil {
		if IsRetryExhausted(err) {
			hooks.OnRetryExhausted(ctx, st, err)
		}
		return LLMResponse{}, err
	}
	return resp, nil
}

// processLLMResponse appends the assistant message and tracks usage.
func processLLMResponse(ctx context.Context, resp LLMResponse, st *State, hooks Hooks) {
	st.Totals.Prompt += resp.Usage.Prompt
	st.Totals.Completion += resp.Usage.Completion
	st.Totals.Total += resp.Usage.Total
	hooks.OnAfterLLM(ctx, st, resp)

	assistantMsg := resp.Assistant
	assistantMsg.Role = RoleAssistant
	assistantMsg.ToolCalls = resp.ToolCalls
	st.Append(assistantMsg)
}

// executeToolCalls executes tool calls and appends results to history.
// A failed tool becomes an "ERROR: ..." result the model can react to.
func executeToolCalls(ctx context.Context, calls []ToolCall, reg ToolRegistry, retryConfig *RetryConfig, hooks Hooks, st *State) {
	for _, o := range executeToolsWithRetry(ctx, calls, reg, retryConfig, hooks, st) {
		if o.err != nil {
			o.content = "ERROR: " + o.err.Error()
		}
		// Providers match tool messages to calls by ID.
		toolCallID := o.call.ID
		if toolCallID == "" {
			toolCallID = o.call.Name
		}
		st.Append(ChatMessage{Role: RoleTool, Name: toolCallID, Content: o.content})
		hooks.OnToolResult(ctx, st, o.call, o.content, o.err)
	}
}

func stepOnce(ctx context.Context, llm LLMClient, reg ToolRegistry, st *State, hooks Hooks, opts ChatOptions) error {
	hooks.OnStepStart(ctx, st)

	retryConfig := getRetryConfig(opts)
	msgs := append([]ChatMessage(nil), st.History...)
	toolSchemas := reg.Schemas()
	hooks.OnBeforeLLM(ctx, st, msgs, toolSchemas)

	resp, err := callLLMWithRetry(ctx, llm, msgs, toolSchemas, opts, retryConfig, hooks, st)
	if err != nil {
		return wrapStep(err, st, "llm_call")
	}
	processLLMResponse(ctx, resp, st, hooks)

	if len(resp.ToolCalls) == 0 {
		st.Done = true
		return nil
	}

	executeToolCalls(ctx, resp.ToolCalls, reg, retryConfig, hooks, st)
	if err := ctx.Err(); err != nil {
		return wrapStep(err, st, "tool_execution")
	}
	return nil
}
