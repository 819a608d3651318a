package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ChamsBouzaiene/campus/internal/catalog"
	"github.com/ChamsBouzaiene/campus/internal/engine"
)

const (
	RecommendCoursesName = "recommend_courses"
	LookupScheduleName   = "lookup_schedule"
)

// NewRecommendCoursesTool returns catalog recommendations for an interest
// as a JSON array of course records.
func NewRecommendCoursesTool(src catalog.Source) engine.Tool {
	return engine.Tool{
		Name: RecommendCoursesName,
		Description: `Return a JSON list of recommended courses for an interest.

Optional filters:
  - type_filter: "elective" or "core"
  - level: "UG" or "PG"`,
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"interest": {"type": "string", "description": "Interest area, e.g. 'data science', 'ML', 'cloud'"},
				"limit": {"type": ["integer", "null"], "description": "Maximum number of courses (1-10, default 4)"},
				"type_filter": {"type": ["string", "null"], "description": "elective or core"},
				"level": {"type": ["string", "null"], "description": "UG or PG"}
			},
			"required": ["interest"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			interest, ok := args["interest"].(string)
			if !ok {
				return "", fmt.Errorf("interest must be a string")
			}
			limit, err := intArg(args, "limit", catalog.DefaultLimit)
			if err != nil {
				return "", err
			}
			typeFilter, _ := args["type_filter"].(string)
			level, _ := args["level"].(string)

			courses, err := src.Current().Recommend(catalog.Query{
				Interest: interest,
				Limit:    limit,
				Type:     strings.TrimSpace(typeFilter),
				Level:    strings.TrimSpace(level),
			})
			if err != nil {
				return "", err
			}
			return encodeJSON(courses)
		},
		Metadata: engine.ToolMetadata{Version: "1", Category: "catalog", Tags: []string{"courses", "advising"}},
	}
}

// NewLookupScheduleTool returns the academic calendar as "field: value"
// lines in calendar order.
func NewLookupScheduleTool(src catalog.Source) engine.Tool {
	return engine.Tool{
		Name:        LookupScheduleName,
		Description: "Return academic schedule as 'key: value' lines in stable order.",
		SchemaJSON:  `{"type": "object", "properties": {}}`,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			return src.Current().ScheduleText(), nil
		},
		Metadata: engine.ToolMetadata{Version: "1", Category: "catalog", Tags: []string{"schedule"}},
	}
}

// intArg reads an optional integer argument. JSON numbers arrive as float64.
func intArg(args map[string]any, key string, def int) (int, error) {
	switch v := args[key].(type) {
	case nil:
		return def, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

// encodeJSON keeps "&" and friends literal so titles read naturally.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
