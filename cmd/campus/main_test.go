package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/chat"
)

type echoChat struct {
	seen []chat.Request
	err  error
}

func (e *echoChat) Handle(_ context.Context, req chat.Request) (*chat.Reply, error) {
	e.seen = append(e.seen, req)
	if e.err != nil {
		return nil, e.err
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, chat.ErrEmptyMessage
	}
	id := req.SessionID
	if id == "" {
		id = "new-session"
	}
	handoff := "Triage -> CourseAdvisor"
	return &chat.Reply{
		SessionID: id,
		Agent:     "CourseAdvisor",
		Handoff:   &handoff,
		Response:  "CourseAdvisor: echo " + req.Message,
	}, nil
}

func TestREPLReusesSession(t *testing.T) {
	svc := &echoChat{}
	in := strings.NewReader("first\n\n  second  \n/exit\nignored\n")
	var out bytes.Buffer

	require.NoError(t, runREPL(context.Background(), svc, in, &out, "", "poet"))

	require.Len(t, svc.seen, 2)
	assert.Equal(t, chat.Request{Message: "first", Force: "poet"}, svc.seen[0])
	assert.Equal(t, chat.Request{Message: "second", SessionID: "new-session", Force: "poet"}, svc.seen[1])
	assert.Contains(t, out.String(), "you> ")
	assert.Contains(t, out.String(), "[Triage -> CourseAdvisor]\nCourseAdvisor: echo second\n")
}

func TestREPLKeepsGoingAfterError(t *testing.T) {
	svc := &echoChat{err: errors.New("provider down")}
	var out bytes.Buffer

	require.NoError(t, runREPL(context.Background(), svc, strings.NewReader("a\nb\n"), &out, "s", ""))
	assert.Len(t, svc.seen, 2)
	assert.Equal(t, 2, strings.Count(out.String(), "error: provider down"))
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	req := chat.Request{Message: "hi", SessionID: "s1"}
	require.NoError(t, ask(context.Background(), &echoChat{}, &out, req, false))
	assert.Equal(t, "[Triage -> CourseAdvisor]\nCourseAdvisor: echo hi\n\n", out.String())

	out.Reset()
	require.NoError(t, ask(context.Background(), &echoChat{}, &out, req, true))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "s1", decoded["session_id"])
}

func stdioEvents(t *testing.T, svc chatHandler, input string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, runStdio(context.Background(), svc, strings.NewReader(input), &out, zap.NewNop()))

	var events []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &ev), l)
		events = append(events, ev)
	}
	return events
}

func TestStdioAnswersEachLine(t *testing.T) {
	svc := &echoChat{}
	events := stdioEvents(t, svc, `{"message":"one","session_id":"x"}
not json

{"message":"  "}
["hi"]
{"message":"two"}
`)

	require.Len(t, events, 6)
	assert.Equal(t, "ready", events[0]["type"])
	assert.Equal(t, "reply", events[1]["type"])
	assert.Equal(t, "x", events[1]["session_id"])
	assert.Equal(t, "Invalid JSON", events[2]["error"])
	assert.Equal(t, "Field 'message' is required", events[3]["error"])
	assert.Equal(t, "Invalid JSON object", events[4]["error"])
	assert.Equal(t, "CourseAdvisor: echo two", events[5]["response"])
	assert.Len(t, svc.seen, 2)
}

func TestStdioHidesServiceErrors(t *testing.T) {
	svc := &echoChat{err: errors.New("dial tcp 10.0.0.7:443: connection refused")}
	events := stdioEvents(t, svc, `{"message":"hi"}`+"\n")

	require.Len(t, events, 2)
	assert.Equal(t, "error", events[1]["type"])
	assert.Equal(t, chat.UpstreamFailure, events[1]["error"])
	assert.NotContains(t, events[1]["error"], "10.0.0.7")
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "")

	out, err := runRoot(t, "--config-dir", dir, "--model", "gpt-4o", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "campus.yaml"))

	data, err := os.ReadFile(filepath.Join(dir, "campus.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "model: gpt-4o")

	_, err = runRoot(t, "--config-dir", dir, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = runRoot(t, "--config-dir", dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "model: gpt-4o")
	assert.Contains(t, out, "warning: OPENAI_API_KEY is not set")
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	_, err := runRoot(t, "--config-dir", t.TempDir(), "--session-driver", "redis", "config", "show")
	assert.ErrorContains(t, err, "unknown session driver")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(false, "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))

	l, err = newLogger(true, "error")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger(false, "loud")
	assert.Error(t, err)
}
