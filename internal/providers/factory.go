package providers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ChamsBouzaiene/campus/internal/engine"
)

// Config selects a provider and its credentials.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
}

type wireFormat int

const (
	wireOpenAI wireFormat = iota
	wireAnthropic
)

// Spec describes how to reach one provider.
type Spec struct {
	Name       string
	KeyEnv     string // environment variable holding the API key
	BaseURLEnv string
	BaseURL    string // default endpoint, empty for the SDK default
	DefaultKey string // local servers accept any key
	wire       wireFormat
}

var specs = map[string]Spec{
	"openai":    {Name: "openai", KeyEnv: "OPENAI_API_KEY", BaseURLEnv: "OPENAI_BASE_URL"},
	"anthropic": {Name: "anthropic", KeyEnv: "ANTHROPIC_API_KEY", BaseURLEnv: "ANTHROPIC_BASE_URL", wire: wireAnthropic},
	"kimi":      {Name: "kimi", KeyEnv: "KIMI_API_KEY", BaseURLEnv: "KIMI_BASE_URL", BaseURL: "https://ark.ap-southeast.bytepluses.com/api/v3"},
	"gemini":    {Name: "gemini", KeyEnv: "GEMINI_API_KEY", BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai"},
	"deepseek":  {Name: "deepseek", KeyEnv: "DEEPSEEK_API_KEY", BaseURL: "https://api.deepseek.com/v1"},
	"groq":      {Name: "groq", KeyEnv: "GROQ_API_KEY", BaseURL: "https://api.groq.com/openai/v1"},
	"lmstudio":  {Name: "lmstudio", KeyEnv: "LMSTUDIO_API_KEY", BaseURLEnv: "LMSTUDIO_BASE_URL", BaseURL: "http://localhost:1234/v1", DefaultKey: "lm-studio"},
	"ollama":    {Name: "ollama", KeyEnv: "OLLAMA_API_KEY", BaseURLEnv: "OLLAMA_BASE_URL", BaseURL: "http://localhost:11434/v1", DefaultKey: "ollama"},
}

// Lookup returns the spec for a provider name.
func Lookup(provider string) (Spec, error) {
	s, ok := specs[strings.ToLower(provider)]
	if !ok {
		return Spec{}, fmt.Errorf("unknown LLM provider %q (supported: %s)", provider, strings.Join(Supported(), ", "))
	}
	return s, nil
}

// Supported lists the provider names, sorted.
func Supported() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve fills APIKey and BaseURL from the environment when cfg leaves
// them empty. getenv is usually os.Getenv.
func Resolve(cfg Config, getenv func(string) string) (Config, error) {
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	s, err := Lookup(cfg.Provider)
	if err != nil {
		return cfg, err
	}
	cfg.Provider = s.Name
	if cfg.APIKey == "" {
		cfg.APIKey = getenv(s.KeyEnv)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = s.DefaultKey
	}
	if cfg.BaseURL == "" && s.BaseURLEnv != "" {
		cfg.BaseURL = getenv(s.BaseURLEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = s.BaseURL
	}
	return cfg, nil
}

// MissingCredential returns the environment variable the provider needs
// when no key is configured, or "" when the config is usable.
func MissingCredential(cfg Config) string {
	s, err := Lookup(cfg.Provider)
	if err != nil || cfg.APIKey != "" {
		return ""
	}
	return s.KeyEnv
}

// New builds an engine.LLMClient for a resolved config.
func New(cfg Config) (engine.LLMClient, error) {
	s, err := Lookup(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s not set", s.KeyEnv)
	}
	switch s.wire {
	case wireAnthropic:
		return NewAnthropicClient(cfg.APIKey, cfg.BaseURL), nil
	default:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL), nil
	}
}
