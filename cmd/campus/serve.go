package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ChamsBouzaiene/campus/internal/config"
	"github.com/ChamsBouzaiene/campus/internal/factory"
	"github.com/ChamsBouzaiene/campus/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat API over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8000)")
	c.bind(cmd, map[string]string{"addr": config.KeyHTTPAddr}, false)
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	app, err := factory.Build(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := httpapi.NewServer(c.logger.Named("http"), c.cfg.HTTP.Addr, app.Chat, app.Store)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
