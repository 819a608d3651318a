package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RetryClass indicates whether an error should be retried.
type RetryClass string

const (
	RetryClassRetryable    RetryClass = "retryable"     // definitely retry
	RetryClassMaybe        RetryClass = "maybe"         // retry a bounded number of times
	RetryClassNonRetryable RetryClass = "non_retryable" // never retry
)

// EngineError wraps errors with classification metadata.
type EngineError struct {
	Err         error
	Class       RetryClass
	HTTPStatus  int
	RetryAfter  string // Retry-After header value, if any
	IsRateLimit bool
	IsTimeout   bool
	IsNetwork   bool
	IsAuth      bool
	IsQuota     bool
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("engine error: %s", e.Class)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError with classification.
func NewEngineError(err error, class RetryClass) *EngineError {
	return &EngineError{Err: err, Class: class}
}

type errorRule struct {
	class   RetryClass
	needles []string
}

// Order matters: the first rule with a matching needle wins.
var llmErrorRules = []errorRule{
	{RetryClassRetryable, []string{"429", "rate limit", "too many requests"}},
	{RetryClassRetryable, []string{"500", "502", "503", "504", "internal server error", "bad gateway", "service unavailable", "gateway timeout", "overloaded"}},
	{RetryClassMaybe, []string{"context deadline exceeded", "deadline exceeded"}},
	{RetryClassRetryable, []string{"timeout", "connection reset", "connection refused", "no such host", "network", "dns", "temporary failure", "eof"}},
	{RetryClassNonRetryable, []string{"401", "403", "unauthorized", "forbidden", "invalid api key", "authentication failed"}},
	{RetryClassNonRetryable, []string{"400", "bad request", "invalid request", "malformed"}},
	{RetryClassNonRetryable, []string{"402", "quota", "billing", "payment required"}},
	{RetryClassNonRetryable, []string{"content filter", "safety", "guardrail", "policy violation"}},
}

var toolErrorRules = []errorRule{
	{RetryClassNonRetryable, []string{"validation failed", "invalid input", "not found", "permission denied"}},
	{RetryClassRetryable, []string{"timeout", "connection reset", "connection refused", "network", "temporary failure"}},
	{RetryClassRetryable, []string{"500", "502", "503", "504", "internal server error", "service unavailable"}},
	{RetryClassRetryable, []string{"database is locked", "resource temporarily unavailable", "deadlock"}},
}

func classify(err error, rules []errorRule) RetryClass {
	msg := strings.ToLower(err.Error())
	for _, rule := range rules {
		for _, needle := range rule.needles {
			if strings.Contains(msg, needle) {
				return rule.class
			}
		}
	}
	return RetryClassNonRetryable
}

// ClassifyLLMError classifies an error from an LLM provider call. Unknown
// errors are not retried.
func ClassifyLLMError(err error) RetryClass {
	if err == nil {
		return RetryClassNonRetryable
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Class
	}
	return classify(err, llmErrorRules)
}

// ClassifyToolError classifies an error from a tool execution.
func ClassifyToolError(err error, toolRetryable bool) RetryClass {
	if err == nil || !toolRetryable {
		return RetryClassNonRetryable
	}
	return classify(err, toolErrorRules)
}

// ExtractRetryAfter extracts the Retry-After delay from an error, or 0.
func ExtractRetryAfter(err error) time.Duration {
	var engineErr *EngineError
	if errors.As(err, &engineErr) && engineErr.RetryAfter != "" {
		var seconds int
		if _, err := fmt.Sscanf(engineErr.RetryAfter, "%d", &seconds); err == nil {
			return time.Duration(seconds) * time.Second
		}
		if t, err := http.ParseTime(engineErr.RetryAfter); err == nil {
			if d := time.Until(t); d > 0 {
				return d
			}
		}
	}
	return 0
}

// WrapLLMError wraps an LLM provider error with classification metadata.
// An HTTP status, when known, takes precedence over message matching.
func WrapLLMError(err error, httpStatus int, retryAfter string) error {
	if err == nil {
		return nil
	}

	class := classify(err, llmErrorRules)
	switch {
	case httpStatus == http.StatusTooManyRequests || httpStatus >= 500:
		class = RetryClassRetryable
	case httpStatus >= 400:
		class = RetryClassNonRetryable
	}

	return &EngineError{
		Err:         err,
		Class:       class,
		HTTPStatus:  httpStatus,
		RetryAfter:  retryAfter,
		IsRateLimit: httpStatus == http.StatusTooManyRequests,
		IsTimeout:   httpStatus == http.StatusGatewayTimeout || httpStatus == http.StatusRequestTimeout,
		IsNetwork:   httpStatus == 0 || httpStatus >= 500,
		IsAuth:      httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden,
		IsQuota:     httpStatus == http.StatusPaymentRequired,
	}
}

// RetryExhaustedError indicates that all retry attempts have been exhausted.
type RetryExhaustedError struct {
	Err         error
	Attempts    int
	MaxAttempts int
	IsGuarded   bool // true for RetryClassMaybe errors with bounded retries
}

func (e *RetryExhaustedError) Error() string {
	if e.IsGuarded {
		return fmt.Sprintf("guarded retries exhausted after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// NewRetryExhaustedError creates a new RetryExhaustedError.
func NewRetryExhaustedError(err error, attempts, maxAttempts int, isGuarded bool) *RetryExhaustedError {
	return &RetryExhaustedError{
		Err:         err,
		Attempts:    attempts,
		MaxAttempts: maxAttempts,
		IsGuarded:   isGuarded,
	}
}

// IsRetryExhausted checks if an error is a RetryExhaustedError.
func IsRetryExhausted(err error) bool {
	var retryExhausted *RetryExhaustedError
	return errors.As(err, &retryExhausted)
}

// ToolValidationError indicates that tool arguments failed JSON schema validation.
type ToolValidationError struct {
	ToolName string
	Errors   []string
}

func (e *ToolValidationError) Error() string {
	return fmt.Sprintf("tool %s validation failed: %s", e.ToolName, strings.Join(e.Errors, "; "))
}

// StepError records where in a run an error happened.
type StepError struct {
	Err       error
	Agent     string
	Step      int
	Operation string // "llm_call" | "tool_execution"
}

func (e *StepError) Error() string {
	return fmt.Sprintf("[agent=%s step=%d op=%s] %v", e.Agent, e.Step, e.Operation, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func wrapStep(err error, st *State, operation string) error {
	if err == nil {
		return nil
	}
	return &StepError{Err: err, Agent: st.Agent, Step: st.Step, Operation: operation}
}
