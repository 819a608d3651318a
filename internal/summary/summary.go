// Package summary implements the one-sentence summarization capability
// behind the summarize_text tool.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ChamsBouzaiene/campus/internal/engine"
)

// Placeholder is returned when the model produces no text.
const Placeholder = "No summary produced."

// DefaultModel is the summary model when none is configured.
const DefaultModel = "gpt-4.1-mini"

// Summarizer compresses text to one sentence.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Prompt is the instruction sent with every summarization request.
func Prompt(text string) string {
	return "Summarize in one concise sentence:\n\n" + text
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return Placeholder
	}
	return s
}

// OpenAISummarizer calls the OpenAI chat completions API through the
// official SDK.
type OpenAISummarizer struct {
	client openai.Client
	model  string
}

// NewOpenAISummarizer builds a summarizer. Extra request options are
// appended after the key and base URL.
func NewOpenAISummarizer(apiKey, baseURL, model string, extra ...option.RequestOption) (*OpenAISummarizer, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, extra...)
	return &OpenAISummarizer{client: openai.NewClient(opts...), model: model}, nil
}

// Summarize implements Summarizer.
func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(Prompt(text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Placeholder, nil
	}
	return orPlaceholder(resp.Choices[0].Message.Content), nil
}

// LLMSummarizer summarizes through any engine.LLMClient, for providers
// other than OpenAI.
type LLMSummarizer struct {
	llm   engine.LLMClient
	model string
}

// NewLLMSummarizer creates a summarizer on top of an engine client.
func NewLLMSummarizer(llm engine.LLMClient, model string) *LLMSummarizer {
	return &LLMSummarizer{llm: llm, model: model}
}

// Summarize implements Summarizer.
func (s *LLMSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	msgs := []engine.ChatMessage{{Role: engine.RoleUser, Content: Prompt(text)}}
	resp, err := s.llm.Chat(ctx, s.model, msgs, nil, engine.ChatOptions{
		MaxOutputTokens: 200,
		Temperature:     0.1,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return orPlaceholder(resp.Assistant.Content), nil
}
