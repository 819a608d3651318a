package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/chat"
	"github.com/ChamsBouzaiene/campus/internal/factory"
)

func newStdioCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve chat turns as newline-delimited JSON on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := factory.Build(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.Close()
			return runStdio(cmd.Context(), app.Chat, cmd.InOrStdin(), cmd.OutOrStdout(), c.logger)
		},
	}
}

type stdioEvent struct {
	Type string `json:"type"`
	*chat.Reply
	Error string `json:"error,omitempty"`
}

// runStdio answers each request line with exactly one event line, in
// input order. A "ready" event is written first.
func runStdio(ctx context.Context, svc chatHandler, in io.Reader, out io.Writer, logger *zap.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)

	emit := func(ev stdioEvent) error {
		if err := enc.Encode(ev); err != nil {
			return err
		}
		return w.Flush()
	}

	if err := emit(stdioEvent{Type: "ready"}); err != nil {
		return err
	}
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ev := stdioEvent{Type: "reply"}
		req, err := chat.DecodeRequest([]byte(line))
		if err == nil {
			ev.Reply, err = svc.Handle(ctx, req)
		}
		if err != nil {
			if !chat.IsClientError(err) {
				logger.Error("stdio turn failed", zap.String("session_id", req.SessionID), zap.Error(err))
			}
			ev = stdioEvent{Type: "error", Error: chat.ErrorMessage(err)}
		}
		if err := emit(ev); err != nil {
			return err
		}
	}
	return scanner.Err()
}
