package prompts

// PromptVersion represents a version identifier for prompts.
type PromptVersion string

const (
	// PromptV1 is the first version of prompts.
	PromptV1 PromptVersion = "1.0.0"
)

// Prompt represents a versioned prompt with metadata.
type Prompt struct {
	ID          string        // e.g. "advisor", "turn.scheduler.fields"
	Version     PromptVersion
	Content     string
	Description string
	Tags        []string
}
