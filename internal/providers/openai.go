package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/ChamsBouzaiene/campus/internal/engine"
)

// OpenAIClient implements engine.LLMClient against any OpenAI-compatible
// chat completions endpoint.
type OpenAIClient struct {
	client  *openai.Client
	baseURL string
}

// NewOpenAIClient creates a new OpenAI client. An empty baseURL uses api.openai.com.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(config),
		baseURL: baseURL,
	}
}

func toOpenAIMessages(messages []engine.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	// Tool results are only valid right after an assistant turn with tool calls.
	var openToolCalls bool

	for _, msg := range messages {
		switch msg.Role {
		case engine.RoleSystem:
			out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: msg.Content})
			openToolCalls = false
		case engine.RoleUser:
			out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: msg.Content})
			openToolCalls = false
		case engine.RoleAssistant:
			content := msg.Content
			if content == "" {
				// The SDK serializes "" as null, which the API rejects.
				content = " "
			}
			var toolCalls []openai.ToolCall
			for _, tc := range msg.ToolCalls {
				argsJSON, _ := json.Marshal(tc.Args)
				toolCalls = append(toolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(argsJSON),
					},
				})
			}
			out = append(out, openai.ChatCompletionMessage{
				Role:      openai.ChatMessageRoleAssistant,
				Content:   content,
				ToolCalls: toolCalls,
			})
			openToolCalls = len(toolCalls) > 0
		case engine.RoleTool:
			if !openToolCalls {
				continue
			}
			content := msg.Content
			if content == "" {
				content = "{}"
			}
			out = append(out, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: msg.Name,
				Content:    content,
			})
		}
	}
	return out
}

func toOpenAITools(schemas []engine.ToolSchema) ([]openai.Tool, error) {
	var tools []openai.Tool
	for _, ts := range schemas {
		var params map[string]any
		if err := json.Unmarshal([]byte(ts.JSONSchema), &params); err != nil {
			return nil, fmt.Errorf("invalid tool schema JSON for %s: %w", ts.Name, err)
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ts.Name,
				Description: ts.Description,
				Parameters:  params,
			},
		})
	}
	return tools, nil
}

// Chat implements engine.LLMClient.
func (c *OpenAIClient) Chat(ctx context.Context, modelName string, messages []engine.ChatMessage, toolSchemas []engine.ToolSchema, opts engine.ChatOptions) (engine.LLMResponse, error) {
	tools, err := toOpenAITools(toolSchemas)
	if err != nil {
		return engine.LLMResponse{}, err
	}

	temperature := opts.Temperature
	req := openai.ChatCompletionRequest{
		Model:       modelName,
		Messages:    toOpenAIMessages(messages),
		Temperature: &temperature,
	}
	if len(tools) > 0 {
		req.Tools = tools
		req.ToolChoice = "auto"
	}
	if opts.MaxOutputTokens > 0 {
		req.MaxTokens = opts.MaxOutputTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		httpStatus, retryAfter := extractErrorMetadata(err)
		return engine.LLMResponse{}, engine.WrapLLMError(err, httpStatus, retryAfter)
	}
	if len(resp.Choices) == 0 {
		return engine.LLMResponse{}, engine.NewEngineError(errors.New("empty response from OpenAI"), engine.RetryClassMaybe)
	}

	choice := resp.Choices[0]
	var toolCalls []engine.ToolCall
	for _, tc := range choice.Message.ToolCalls {
		call := engine.ToolCall{ID: tc.ID, Name: tc.Function.Name, Args: map[string]any{}}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &call.Args); err != nil {
				call.Error = fmt.Sprintf("arguments are not valid JSON: %v", err)
			}
		}
		toolCalls = append(toolCalls, call)
	}

	finishReason := "stop"
	switch {
	case len(toolCalls) > 0:
		finishReason = "tool_calls"
	case choice.FinishReason == openai.FinishReasonLength:
		finishReason = "length"
	case choice.FinishReason == openai.FinishReasonContentFilter:
		finishReason = "content_filter"
	}

	return engine.LLMResponse{
		Assistant: engine.ChatMessage{
			Role:      engine.RoleAssistant,
			Content:   choice.Message.Content,
			ToolCalls: toolCalls,
		},
		ToolCalls: toolCalls,
		Usage: engine.Usage{
			Prompt:     resp.Usage.PromptTokens,
			Completion: resp.Usage.CompletionTokens,
			Total:      resp.Usage.TotalTokens,
		},
		FinishReason: finishReason,
	}, nil
}

var statusNeedles = []struct {
	needle string
	status int
}{
	{"429", http.StatusTooManyRequests},
	{"500", http.StatusInternalServerError},
	{"502", http.StatusBadGateway},
	{"503", http.StatusServiceUnavailable},
	{"504", http.StatusGatewayTimeout},
	{"529", http.StatusServiceUnavailable}, // anthropic "overloaded"
	{"401", http.StatusUnauthorized},
	{"403", http.StatusForbidden},
	{"400", http.StatusBadRequest},
	{"402", http.StatusPaymentRequired},
}

// extractErrorMetadata pulls the HTTP status and Retry-After value out of a
// provider error. Typed OpenAI errors are read directly, anything else falls
// back to scanning the message.
func extractErrorMetadata(err error) (int, string) {
	if err == nil {
		return 0, ""
	}

	var httpStatus int
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		httpStatus = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		httpStatus = reqErr.HTTPStatusCode
	}

	errStr := err.Error()
	if httpStatus == 0 {
		for _, s := range statusNeedles {
			if strings.Contains(errStr, s.needle) {
				httpStatus = s.status
				break
			}
		}
	}

	lower := strings.ToLower(errStr)
	for _, marker := range []string{"retry-after", "retry after"} {
		if idx := strings.Index(lower, marker); idx != -1 {
			rest := strings.TrimLeft(errStr[idx+len(marker):], ": ")
			if parts := strings.Fields(rest); len(parts) > 0 {
				return httpStatus, parts[0]
			}
		}
	}
	return httpStatus, ""
}
