// Package config loads campus settings from flags, environment, an
// optional campus.yaml and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ChamsBouzaiene/campus/internal/providers"
	"github.com/ChamsBouzaiene/campus/internal/session"
)

const (
	configName = "campus"
	configType = "yaml"
	envPrefix  = "CAMPUS"
	dirName    = "campus"
)

// Keys, also used as flag names by the CLI.
const (
	KeyProvider      = "llm_provider"
	KeyAPIKey        = "api_key"
	KeyModel         = "model"
	KeySummaryModel  = "summary_model"
	KeyBaseURL       = "base_url"
	KeyHTTPAddr      = "http.addr"
	KeySessionDriver = "session.driver"
	KeySessionDSN    = "session.dsn"
	KeyCatalogFile   = "catalog.file"
	KeyMaxSteps      = "engine.max_steps"
	KeyLLMRetries    = "engine.llm_retries"
	KeyLogLevel      = "log.level"
)

var defaults = map[string]any{
	KeyProvider:      "openai",
	KeyAPIKey:        "",
	KeyModel:         "gpt-4o-mini",
	KeySummaryModel:  "gpt-4.1-mini",
	KeyBaseURL:       "",
	KeyHTTPAddr:      ":8000",
	KeySessionDriver: session.DriverSQLite,
	KeySessionDSN:    session.DefaultDSN,
	KeyCatalogFile:   "",
	KeyMaxSteps:      8,
	KeyLLMRetries:    3,
	KeyLogLevel:      "info",
}

// Config is the resolved runtime configuration.
type Config struct {
	LLMProvider  string        `mapstructure:"llm_provider" yaml:"llm_provider"`
	APIKey       string        `mapstructure:"api_key" yaml:"api_key,omitempty"` // falls back to the provider's env var
	Model        string        `mapstructure:"model" yaml:"model"`
	SummaryModel string        `mapstructure:"summary_model" yaml:"summary_model"`
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	HTTP         HTTPConfig    `mapstructure:"http" yaml:"http"`
	Session      SessionConfig `mapstructure:"session" yaml:"session"`
	Catalog      CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Engine       EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Log          LogConfig     `mapstructure:"log" yaml:"log"`

	getenv func(string) string
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type SessionConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

type CatalogConfig struct {
	File string `mapstructure:"file" yaml:"file,omitempty"`
}

type EngineConfig struct {
	MaxSteps   int `mapstructure:"max_steps" yaml:"max_steps"`
	LLMRetries int `mapstructure:"llm_retries" yaml:"llm_retries"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Provider resolves the provider settings, filling the key and base URL
// from the environment when the config leaves them empty.
func (c *Config) Provider() (providers.Config, error) {
	getenv := c.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return providers.Resolve(providers.Config{
		Provider: c.LLMProvider,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}, getenv)
}

// MissingCredential names the environment variable the selected provider
// still needs, or returns "" when a key is available.
func (c *Config) MissingCredential() string {
	pc, err := c.Provider()
	if err != nil {
		return ""
	}
	return providers.MissingCredential(pc)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := providers.Lookup(c.LLMProvider); err != nil {
		return err
	}
	switch c.Session.Driver {
	case session.DriverSQLite, session.DriverPostgres, session.DriverFile, session.DriverMemory:
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}
	if c.Engine.MaxSteps <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyMaxSteps, c.Engine.MaxSteps)
	}
	return nil
}

// Manager reads and writes campus configuration.
type Manager struct {
	v         *viper.Viper
	configDir string
}

// Option configures a Manager.
type Option func(*Manager)

// WithDir overrides the per-user config directory.
func WithDir(dir string) Option {
	return func(m *Manager) { m.configDir = dir }
}

// NewManager prepares v with campus defaults, search paths and
// environment bindings. A nil v gets a fresh instance.
func NewManager(v *viper.Viper, opts ...Option) (*Manager, error) {
	if v == nil {
		v = viper.New()
	}
	m := &Manager{v: v}
	for _, opt := range opts {
		opt(m)
	}
	if m.configDir == "" {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		m.configDir = filepath.Join(userDir, dirName)
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(m.configDir)
	v.AddConfigPath(".")
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyProvider, envPrefix+"_LLM_PROVIDER", "LLM_PROVIDER"); err != nil {
		return nil, fmt.Errorf("bind %s: %w", KeyProvider, err)
	}
	return m, nil
}

// Viper exposes the underlying instance so the CLI can bind flags.
func (m *Manager) Viper() *viper.Viper { return m.v }

// ConfigPath is the file Save writes to.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.configDir, configName+"."+configType)
}

// Load merges all sources. A missing config file is not an error.
func (m *Manager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.Session.Driver = strings.ToLower(strings.TrimSpace(cfg.Session.Driver))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to ConfigPath with owner-only permissions.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(m.ConfigPath(), data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Exists reports whether ConfigPath has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.ConfigPath())
	return err == nil
}
