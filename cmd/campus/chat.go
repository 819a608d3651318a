package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/campus/internal/chat"
	"github.com/ChamsBouzaiene/campus/internal/factory"
)

func newChatCmd(c *cli) *cobra.Command {
	var sessionID, force string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := factory.Build(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.Close()
			return runREPL(cmd.Context(), app.Chat, cmd.InOrStdin(), cmd.OutOrStdout(), sessionID, force)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "continue an existing session")
	cmd.Flags().StringVar(&force, "force", "", "send every message to one specialist (advisor, scheduler, poet)")
	return cmd
}

func newAskCmd(c *cli) *cobra.Command {
	var sessionID, force string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory.Build(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.Close()
			req := chat.Request{Message: strings.Join(args, " "), SessionID: sessionID, Force: force}
			return ask(cmd.Context(), app.Chat, cmd.OutOrStdout(), req, asJSON)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id to continue")
	cmd.Flags().StringVar(&force, "force", "", "skip routing and ask one specialist (advisor, scheduler, poet)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full reply as JSON")
	return cmd
}

func ask(ctx context.Context, svc chatHandler, out io.Writer, req chat.Request, asJSON bool) error {
	reply, err := svc.Handle(ctx, req)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reply)
	}
	printReply(out, reply)
	return nil
}

// runREPL reads one message per line until EOF or /exit. The session id
// returned by the first turn is reused for the rest.
func runREPL(ctx context.Context, svc chatHandler, in io.Reader, out io.Writer, sessionID, force string) error {
	s := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if line == "/exit" || line == "/quit" {
			break
		}

		reply, err := svc.Handle(ctx, chat.Request{Message: line, SessionID: sessionID, Force: force})
		if err != nil {
			fmt.Fprintf(out, "error: %v\n\n", err)
			continue
		}
		sessionID = reply.SessionID
		printReply(out, reply)
	}
	fmt.Fprintln(out)
	return s.Err()
}

func printReply(out io.Writer, reply *chat.Reply) {
	trace := reply.Agent
	if reply.Handoff != nil {
		trace = *reply.Handoff
	}
	fmt.Fprintf(out, "[%s]\n%s\n\n", trace, reply.Response)
}
