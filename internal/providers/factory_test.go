package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		env  map[string]string
		want Config
	}{
		{
			name: "defaults to openai",
			env:  map[string]string{"OPENAI_API_KEY": "sk-1"},
			want: Config{Provider: "openai", APIKey: "sk-1"},
		},
		{
			name: "explicit key wins",
			cfg:  Config{Provider: "OpenAI", APIKey: "sk-flag"},
			env:  map[string]string{"OPENAI_API_KEY": "sk-env", "OPENAI_BASE_URL": "http://proxy"},
			want: Config{Provider: "openai", APIKey: "sk-flag", BaseURL: "http://proxy"},
		},
		{
			name: "compatible provider gets its endpoint",
			cfg:  Config{Provider: "groq"},
			env:  map[string]string{"GROQ_API_KEY": "gk"},
			want: Config{Provider: "groq", APIKey: "gk", BaseURL: "https://api.groq.com/openai/v1"},
		},
		{
			name: "local server needs no key",
			cfg:  Config{Provider: "ollama"},
			want: Config{Provider: "ollama", APIKey: "ollama", BaseURL: "http://localhost:11434/v1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.cfg, envOf(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveUnknownProvider(t *testing.T) {
	_, err := Resolve(Config{Provider: "mystery"}, envOf(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic")
}

func TestMissingCredential(t *testing.T) {
	cfg, err := Resolve(Config{Provider: "anthropic"}, envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "ANTHROPIC_API_KEY", MissingCredential(cfg))

	_, err = New(cfg)
	assert.EqualError(t, err, "ANTHROPIC_API_KEY not set")

	cfg.APIKey = "k"
	assert.Empty(t, MissingCredential(cfg))
	client, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, client)
}

func TestExtractErrorMetadata(t *testing.T) {
	status, retryAfter := extractErrorMetadata(errors.New("status 429: rate limited, Retry-After: 12"))
	assert.Equal(t, 429, status)
	assert.Equal(t, "12", retryAfter)

	status, retryAfter = extractErrorMetadata(errors.New("503 service unavailable"))
	assert.Equal(t, 503, status)
	assert.Empty(t, retryAfter)

	status, _ = extractErrorMetadata(nil)
	assert.Zero(t, status)
}
