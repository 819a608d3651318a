package engine

import (
	"context"
	"errors"
)

// Agent binds instructions, tools and a model. It keeps no conversation
// state: callers pass prior turns on every Run.
type Agent struct {
	llm          LLMClient
	tools        ToolRegistry
	config       AgentConfig
	hooks        Hooks
	instructions string
}

// NewAgent validates cfg and returns an agent.
func NewAgent(cfg AgentConfig, llm LLMClient, instructions string, tools ToolRegistry, hooks Hooks) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("agent requires an LLM client")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if tools == nil {
		tools = ToolRegistry{}
	}
	return &Agent{
		llm:          llm,
		tools:        tools,
		config:       cfg,
		hooks:        hooks,
		instructions: instructions,
	}, nil
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.config.Name }

// Config returns a copy of the agent configuration.
func (a *Agent) Config() AgentConfig { return a.config }

// Run sends the instructions, history and userMessage through the tool
// loop. The returned state holds the full exchange even on error.
func (a *Agent) Run(ctx context.Context, history []ChatMessage, userMessage string) (*State, error) {
	st := &State{
		Agent:    a.config.Name,
		History:  make([]ChatMessage, 0, len(history)+2),
		Model:    a.config.Model,
		MaxSteps: a.config.MaxSteps,
	}
	if a.instructions != "" {
		st.Append(ChatMessage{Role: RoleSystem, Content: a.instructions})
	}
	st.History = append(st.History, history...)
	st.Append(ChatMessage{Role: RoleUser, Content: userMessage})

	opts := ChatOptions{
		Temperature:     a.config.Temperature,
		MaxOutputTokens: a.config.MaxOutputTokens,
		RetryConfig:     a.config.RetryConfig,
	}
	err := Run(ctx, a.llm, a.tools, st, a.hooks, opts)
	return st, err
}
