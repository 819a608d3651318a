package prompts

import (
	"fmt"
	"strings"
)

// PromptBuilder fills the {{key}} variables of a registered prompt.
type PromptBuilder struct {
	basePrompt *Prompt
	variables  map[string]string
}

// NewPromptBuilder creates a new prompt builder based on a registered prompt.
func NewPromptBuilder(registry *PromptRegistry, id string, version PromptVersion) (*PromptBuilder, error) {
	basePrompt, err := registry.Get(id, version)
	if err != nil {
		return nil, fmt.Errorf("failed to get base prompt: %w", err)
	}

	return &PromptBuilder{
		basePrompt: basePrompt,
		variables:  make(map[string]string),
	}, nil
}

// SetVariable sets a variable for template substitution.
func (b *PromptBuilder) SetVariable(key, value string) *PromptBuilder {
	b.variables[key] = value
	return b
}

// Build constructs the final prompt string. Substitution is a single pass,
// so values that contain "{{...}}" are left as written.
func (b *PromptBuilder) Build() string {
	result := b.basePrompt.Content
	if len(b.variables) == 0 {
		return result
	}
	pairs := make([]string, 0, 2*len(b.variables))
	for key, value := range b.variables {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(result)
}
