// Package chat is the turn-level entry point shared by the HTTP, WebSocket
// and CLI surfaces.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/normalize"
	"github.com/ChamsBouzaiene/campus/internal/orchestrator"
)

// ErrEmptyMessage is returned for a blank message.
var ErrEmptyMessage = errors.New("message is empty")

// SystemAgent is the agent reported when no responder ran.
const SystemAgent = "system"

// Request is one inbound turn.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Force     string `json:"force,omitempty"`
}

// Reply is the outbound payload for one turn.
type Reply struct {
	SessionID       string                 `json:"session_id"`
	AgentRoutedFrom string                 `json:"agent_routed_from"`
	Handoff         *string                `json:"handoff"`
	Agent           string                 `json:"agent"`
	Segments        []orchestrator.Segment `json:"segments"`
	Response        string                 `json:"response"`
	History         []string               `json:"history"` // always null
}

// Dispatcher runs one message through the responders.
type Dispatcher interface {
	Dispatch(ctx context.Context, message, sessionID, force string) (*orchestrator.Result, error)
}

// Service validates turns, serializes them per session and shapes replies.
type Service struct {
	dispatcher Dispatcher
	logger     *zap.Logger
	locks      *sessionLocks

	missingCredential string
	newID             func() string
}

// Option configures a Service.
type Option func(*Service)

// WithMissingCredential puts the service in configuration-failure mode:
// every turn is answered with a fixed message naming envVar.
func WithMissingCredential(envVar string) Option {
	return func(s *Service) { s.missingCredential = envVar }
}

// WithIDGenerator replaces the UUIDv4 session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService returns a Service. d may be nil only in configuration-failure mode.
func NewService(d Dispatcher, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		dispatcher: d,
		logger:     logger,
		locks:      newSessionLocks(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConfigurationMessage is the reply text when a credential is missing.
func ConfigurationMessage(envVar string) string {
	return fmt.Sprintf("Configuration issue: set %s in your environment and restart the server.", envVar)
}

// Handle runs one turn. Responder failures are returned to the caller.
func (s *Service) Handle(ctx context.Context, req Request) (*Reply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = s.newID()
	}

	if s.missingCredential != "" {
		return &Reply{
			SessionID:       sessionID,
			AgentRoutedFrom: SystemAgent,
			Agent:           SystemAgent,
			Segments:        []orchestrator.Segment{},
			Response:        ConfigurationMessage(s.missingCredential),
		}, nil
	}
	if s.dispatcher == nil {
		return nil, errors.New("chat service has no dispatcher")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	start := time.Now()
	res, err := s.dispatcher.Dispatch(ctx, message, sessionID, strings.TrimSpace(req.Force))
	if err != nil {
		s.logger.Error("turn failed",
			zap.String("session_id", sessionID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	reply := buildReply(sessionID, res)
	s.logger.Info("turn",
		zap.String("session_id", sessionID),
		zap.Any("plan", res.Plan),
		zap.Bool("forced", res.Forced),
		zap.String("handoff", *reply.Handoff),
		zap.String("agent", reply.Agent),
		zap.Duration("duration", time.Since(start)),
	)
	return reply, nil
}

func buildReply(sessionID string, res *orchestrator.Result) *Reply {
	segments := make([]orchestrator.Segment, len(res.Segments))
	for i, seg := range res.Segments {
		segments[i] = orchestrator.Segment{Agent: seg.Agent, Text: normalize.ForAgent(seg.Agent, seg.Text)}
	}

	handoff := strings.Join(res.Handoff, " -> ")
	reply := &Reply{
		SessionID: sessionID,
		Handoff:   &handoff,
		Agent:     res.AgentName,
		Segments:  segments,
		Response:  normalize.ForAgent(res.AgentName, res.Text),
	}
	if len(segments) > 0 {
		reply.Agent = segments[len(segments)-1].Agent
		reply.AgentRoutedFrom = segments[0].Agent
		reply.Response = orchestrator.Combine(segments)
		if res.Forced {
			reply.Response = segments[0].Text
		}
	} else {
		reply.AgentRoutedFrom = reply.Agent
	}
	return reply
}
