package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/engine"
	"github.com/ChamsBouzaiene/campus/internal/engine/enginetest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func echoTool() engine.Tool {
	return engine.Tool{
		Name:       "echo",
		SchemaJSON: `{"type":"object","properties":{"text":{"type":"string"}},"required":["text"]}`,
		Fn: func(_ context.Context, args map[string]any) (string, error) {
			return "echo: " + args["text"].(string), nil
		},
	}
}

func TestAgentRunAnswersDirectly(t *testing.T) {
	llm := enginetest.New(enginetest.Text("Hello there."))
	agent, err := engine.NewAgent(engine.AgentConfig{Name: "Triage", Temperature: 0}, llm, "be brief", nil, engine.Hooks{engine.LoggerHook{L: zap.NewNop()}})
	require.NoError(t, err)

	history := []engine.ChatMessage{
		{Role: engine.RoleUser, Content: "earlier question"},
		{Role: engine.RoleAssistant, Content: "earlier answer"},
	}
	st, err := agent.Run(context.Background(), history, "hi")
	require.NoError(t, err)
	assert.True(t, st.Done)
	assert.Equal(t, "Hello there.", st.FinalText())

	calls := llm.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, engine.DefaultModel, calls[0].Model)
	assert.Equal(t, float32(0), calls[0].Opts.Temperature)
	require.Len(t, calls[0].Messages, 4)
	assert.Equal(t, engine.ChatMessage{Role: engine.RoleSystem, Content: "be brief"}, calls[0].Messages[0])
	assert.Equal(t, "hi", calls[0].Messages[3].Content)
}

func TestAgentRunExecutesTools(t *testing.T) {
	llm := enginetest.New(
		enginetest.Tools(engine.ToolCall{ID: "call_1", Name: "echo", Args: map[string]any{"text": "ping"}}),
		enginetest.Text("done"),
	)
	agent, err := engine.NewAgent(engine.AgentConfig{Name: "CourseAdvisor", Temperature: 0.4}, llm, "", engine.NewToolRegistry(echoTool()), nil)
	require.NoError(t, err)

	st, err := agent.Run(context.Background(), nil, "say ping")
	require.NoError(t, err)
	assert.Equal(t, "done", st.FinalText())
	assert.Equal(t, 2, st.Step)

	calls := llm.Calls()
	require.Len(t, calls, 2)
	require.Len(t, calls[0].Tools, 1)
	second := calls[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, engine.RoleTool, last.Role)
	assert.Equal(t, "call_1", last.Name)
	assert.Equal(t, "echo: ping", last.Content)
	assert.Equal(t, float32(0.4), calls[1].Opts.Temperature)
}

func TestAgentRunStopsAtMaxSteps(t *testing.T) {
	loop := enginetest.Tools(engine.ToolCall{ID: "c", Name: "echo", Args: map[string]any{"text": "x"}})
	llm := enginetest.New(loop, loop, loop)
	agent, err := engine.NewAgent(engine.AgentConfig{Name: "Loop", MaxSteps: 2}, llm, "", engine.NewToolRegistry(echoTool()), nil)
	require.NoError(t, err)

	_, err = agent.Run(context.Background(), nil, "go")
	assert.ErrorIs(t, err, engine.ErrMaxSteps)
	assert.Len(t, llm.Calls(), 2)
}

func TestAgentRunRetriesTransientLLMErrors(t *testing.T) {
	llm := enginetest.New(
		enginetest.Fail(errors.New("503 service unavailable")),
		enginetest.Text("recovered"),
	)
	cfg := engine.AgentConfig{
		Name: "Poet",
		RetryConfig: &engine.RetryConfig{
			LLMPolicy: engine.RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
		},
	}
	agent, err := engine.NewAgent(cfg, llm, "", nil, engine.Hooks{engine.LoggerHook{L: zap.NewNop()}})
	require.NoError(t, err)

	st, err := agent.Run(context.Background(), nil, "poem")
	require.NoError(t, err)
	assert.Equal(t, "recovered", st.FinalText())
	assert.Equal(t, 1, st.Retries)
}

func TestAgentRunSurfacesFatalLLMErrors(t *testing.T) {
	llm := enginetest.New(enginetest.Fail(errors.New("401 unauthorized")))
	agent, err := engine.NewAgent(engine.AgentConfig{Name: "Scheduler"}, llm, "", nil, nil)
	require.NoError(t, err)

	_, err = agent.Run(context.Background(), nil, "when?")
	var stepErr *engine.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "Scheduler", stepErr.Agent)
	assert.Equal(t, "llm_call", stepErr.Operation)
}

func TestNewAgentRequiresClient(t *testing.T) {
	_, err := engine.NewAgent(engine.DefaultAgentConfig(), nil, "", nil, nil)
	assert.Error(t, err)
}
