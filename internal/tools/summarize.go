package tools

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/engine"
	"github.com/ChamsBouzaiene/campus/internal/summary"
)

const SummarizeTextName = "summarize_text"

// NewSummarizeTextTool compresses text to one sentence. A failed or empty
// summarization yields summary.Placeholder rather than a tool error.
func NewSummarizeTextTool(s summary.Summarizer, logger *zap.Logger) engine.Tool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return engine.Tool{
		Name:        SummarizeTextName,
		Description: "Summarize text to one concise sentence.",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "Text to summarize"}
			},
			"required": ["text"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			text, ok := args["text"].(string)
			if !ok {
				return "", fmt.Errorf("text must be a string")
			}
			out, err := s.Summarize(ctx, text)
			if err != nil {
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
				logger.Warn("summarize_text failed", zap.Error(err))
				return summary.Placeholder, nil
			}
			if out = strings.TrimSpace(out); out == "" {
				return summary.Placeholder, nil
			}
			return out, nil
		},
		Metadata: engine.ToolMetadata{Version: "1", Category: "summary"},
	}
}
