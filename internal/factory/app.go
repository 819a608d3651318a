// Package factory assembles the campus components from configuration.
package factory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/agents"
	"github.com/ChamsBouzaiene/campus/internal/catalog"
	"github.com/ChamsBouzaiene/campus/internal/chat"
	"github.com/ChamsBouzaiene/campus/internal/config"
	"github.com/ChamsBouzaiene/campus/internal/engine"
	"github.com/ChamsBouzaiene/campus/internal/orchestrator"
	"github.com/ChamsBouzaiene/campus/internal/providers"
	"github.com/ChamsBouzaiene/campus/internal/session"
	"github.com/ChamsBouzaiene/campus/internal/summary"
	"github.com/ChamsBouzaiene/campus/internal/tools"
)

// App holds the wired components for one process.
type App struct {
	Chat    *chat.Service
	Store   session.Store
	Catalog catalog.Source

	closers []io.Closer
}

type options struct {
	llm        engine.LLMClient
	summarizer summary.Summarizer
}

// Option overrides a component Build would otherwise create.
type Option func(*options)

// WithLLM replaces the provider client.
func WithLLM(llm engine.LLMClient) Option {
	return func(o *options) { o.llm = llm }
}

// WithSummarizer replaces the summarization capability.
func WithSummarizer(s summary.Summarizer) Option {
	return func(o *options) { o.summarizer = s }
}

// Build wires the session store, catalog, responders and chat service.
// When the provider credential is missing and no LLM override is given,
// the chat service answers every turn with the configuration message.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{}
	store, err := session.Open(ctx, cfg.Session.Driver, cfg.Session.DSN, logger)
	if err != nil {
		return nil, err
	}
	app.Store = store
	app.closers = append(app.closers, store)

	src, err := buildCatalog(cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Catalog = src
	if c, ok := src.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	if o.llm == nil {
		if env := cfg.MissingCredential(); env != "" {
			logger.Warn("provider credential missing, serving configuration notice", zap.String("env", env))
			app.Chat = chat.NewService(nil, logger, chat.WithMissingCredential(env))
			return app, nil
		}
	}

	pc, err := cfg.Provider()
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	llm := o.llm
	if llm == nil {
		if llm, err = providers.New(pc); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("create %s client: %w", pc.Provider, err)
		}
	}
	summarizer := o.summarizer
	if summarizer == nil {
		if summarizer, err = buildSummarizer(cfg, pc, llm); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	deps := tools.Deps{Catalog: src, Summarizer: summarizer, Logger: logger}
	registry := agents.NewRegistry(llm, deps, agents.Config{
		Model:      cfg.Model,
		MaxSteps:   cfg.Engine.MaxSteps,
		LLMRetries: cfg.Engine.LLMRetries,
	}, engine.Hooks{engine.LoggerHook{L: logger.Named("engine")}})
	runner := agents.NewRunner(registry, store, logger)

	app.Chat = chat.NewService(orchestrator.New(runner), logger)
	logger.Info("campus assistant ready",
		zap.String("provider", pc.Provider),
		zap.String("model", cfg.Model),
		zap.String("session_driver", cfg.Session.Driver),
	)
	return app, nil
}

func buildCatalog(cfg *config.Config, logger *zap.Logger) (catalog.Source, error) {
	if cfg.Catalog.File != "" {
		w, err := catalog.NewWatcher(cfg.Catalog.File, logger)
		if err != nil {
			return nil, fmt.Errorf("watch catalog: %w", err)
		}
		return w, nil
	}
	c, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	return catalog.Static{C: c}, nil
}

// buildSummarizer prefers the OpenAI SDK for the openai provider; other
// providers summarize through their own chat client.
func buildSummarizer(cfg *config.Config, pc providers.Config, llm engine.LLMClient) (summary.Summarizer, error) {
	if pc.Provider == "openai" {
		return summary.NewOpenAISummarizer(pc.APIKey, pc.BaseURL, cfg.SummaryModel)
	}
	model := cfg.SummaryModel
	if model == "" || model == summary.DefaultModel {
		model = cfg.Model
	}
	return summary.NewLLMSummarizer(llm, model), nil
}

// Close releases the store and catalog watcher.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
