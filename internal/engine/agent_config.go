package engine

// AgentConfig holds configuration for an agent instance.
type AgentConfig struct {
	Name            string
	Model           string
	Temperature     float32
	MaxSteps        int
	MaxOutputTokens int // 0 = DefaultMaxOutputTokens
	RetryConfig     *RetryConfig
}

const (
	DefaultModel           = "gpt-4o-mini"
	DefaultMaxSteps        = 8
	DefaultMaxOutputTokens = 1024
)

// DefaultAgentConfig returns a default agent configuration.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Model:           DefaultModel,
		MaxSteps:        DefaultMaxSteps,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}
