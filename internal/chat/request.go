package chat

import (
	"encoding/json"
	"errors"
	"strings"
)

// Client-side request errors, shared by every transport.
var (
	ErrInvalidJSON   = errors.New("invalid json")
	ErrInvalidObject = errors.New("request body is not a json object")
)

// UpstreamFailure is shown to clients when a responder fails; the
// underlying error is only logged.
const UpstreamFailure = "The assistant could not complete this request. Please try again."

// DecodeRequest parses one JSON request body. The body must be an object;
// fields of the wrong type are treated as absent.
func DecodeRequest(data []byte) (Request, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Request{}, ErrInvalidJSON
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Request{}, ErrInvalidObject
	}

	req := Request{
		Message:   stringField(obj, "message"),
		SessionID: stringField(obj, "session_id"),
		Force:     stringField(obj, "force"),
	}
	if strings.TrimSpace(req.Message) == "" {
		return Request{}, ErrEmptyMessage
	}
	return req, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidJSON) || errors.Is(err, ErrInvalidObject) || errors.Is(err, ErrEmptyMessage)
}

// ErrorMessage is the text a transport sends for err.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidJSON):
		return "Invalid JSON"
	case errors.Is(err, ErrInvalidObject):
		return "Invalid JSON object"
	case errors.Is(err, ErrEmptyMessage):
		return "Field 'message' is required"
	default:
		return UpstreamFailure
	}
}
