package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ChamsBouzaiene/campus/internal/chat"
	"github.com/ChamsBouzaiene/campus/internal/config"
)

// chatHandler is the part of chat.Service the commands drive.
type chatHandler interface {
	Handle(ctx context.Context, req chat.Request) (*chat.Reply, error)
}

type cli struct {
	v         *viper.Viper
	debug     bool
	configDir string

	mgr    *config.Manager
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:               "campus",
		Short:             "Campus assistant: routes student questions to advising, scheduling and poetry specialists",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&c.debug, "debug", false, "enable development logging at debug level")
	pf.StringVar(&c.configDir, "config-dir", "", "directory holding campus.yaml (default: user config dir)")
	pf.String("provider", "", "LLM provider (openai, anthropic, ollama, ...)")
	pf.String("model", "", "model used by every specialist")
	pf.String("session-driver", "", "session store: sqlite, postgres, file or memory")
	pf.String("session-dsn", "", "session store location or connection string")
	pf.String("catalog", "", "course catalog YAML file, reloaded on change")
	c.bind(root, map[string]string{
		"provider":       config.KeyProvider,
		"model":          config.KeyModel,
		"session-driver": config.KeySessionDriver,
		"session-dsn":    config.KeySessionDSN,
		"catalog":        config.KeyCatalogFile,
	}, true)

	root.AddCommand(
		newServeCmd(c),
		newChatCmd(c),
		newAskCmd(c),
		newStdioCmd(c),
		newConfigCmd(c),
	)
	return root
}

// bind maps flag names to config keys.
func (c *cli) bind(cmd *cobra.Command, flags map[string]string, persistent bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	for flag, key := range flags {
		if err := c.v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	var opts []config.Option
	if c.configDir != "" {
		opts = append(opts, config.WithDir(c.configDir))
	}
	mgr, err := config.NewManager(c.v, opts...)
	if err != nil {
		return err
	}
	cfg, err := mgr.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(c.debug, cfg.Log.Level)
	if err != nil {
		return err
	}
	c.mgr, c.cfg, c.logger = mgr, cfg, logger
	return nil
}

func newLogger(debug bool, level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc = zap.NewDevelopmentConfig()
	} else if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}
