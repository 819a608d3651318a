package agents

import (
	"fmt"
	"sync"

	"github.com/ChamsBouzaiene/campus/internal/engine"
	"github.com/ChamsBouzaiene/campus/internal/prompts"
	"github.com/ChamsBouzaiene/campus/internal/tools"
)

// Config tunes every responder built by a Registry.
type Config struct {
	Model      string // engine.DefaultModel when empty
	MaxSteps   int    // engine.DefaultMaxSteps when <= 0
	LLMRetries int    // < 0 disables retries; 0 keeps the engine default
}

// Registry builds the engine agents for every table row on first use and
// then serves them for the life of the process.
type Registry struct {
	llm   engine.LLMClient
	deps  tools.Deps
	cfg   Config
	hooks engine.Hooks

	once   sync.Once
	agents map[Key]*engine.Agent
	err    error
}

// NewRegistry returns a registry; nothing is built until Agent is called.
func NewRegistry(llm engine.LLMClient, deps tools.Deps, cfg Config, hooks engine.Hooks) *Registry {
	return &Registry{llm: llm, deps: deps, cfg: cfg, hooks: hooks}
}

// Agent returns the engine agent for k.
func (r *Registry) Agent(k Key) (*engine.Agent, error) {
	r.once.Do(func() { r.agents, r.err = r.build() })
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.agents[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecialist, k)
	}
	return a, nil
}

func (r *Registry) retryConfig() *engine.RetryConfig {
	rc := engine.DefaultRetryConfig()
	switch {
	case r.cfg.LLMRetries < 0:
		rc.LLMPolicy.MaxRetries = 0
	case r.cfg.LLMRetries > 0:
		rc.LLMPolicy.MaxRetries = r.cfg.LLMRetries
	}
	return &rc
}

func (r *Registry) build() (map[Key]*engine.Agent, error) {
	out := make(map[Key]*engine.Agent, len(specs))
	retry := r.retryConfig()

	for _, s := range specs {
		instructions, err := prompts.Instructions(s.PromptID)
		if err != nil {
			return nil, fmt.Errorf("instructions for %s: %w", s.Name, err)
		}
		reg, err := tools.NewToolRegistry(r.deps, s.Tools)
		if err != nil {
			return nil, fmt.Errorf("tools for %s: %w", s.Name, err)
		}

		cfg := engine.DefaultAgentConfig()
		cfg.Name = s.Name
		cfg.Temperature = s.Temperature
		cfg.RetryConfig = retry
		if r.cfg.Model != "" {
			cfg.Model = r.cfg.Model
		}
		if r.cfg.MaxSteps > 0 {
			cfg.MaxSteps = r.cfg.MaxSteps
		}

		a, err := engine.NewAgent(cfg, r.llm, instructions, reg, r.hooks)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", s.Name, err)
		}
		out[s.Key] = a
	}
	return out, nil
}
