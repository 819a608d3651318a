package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChamsBouzaiene/campus/internal/catalog"
	"github.com/ChamsBouzaiene/campus/internal/summary"
)

func staticCatalog(t *testing.T) catalog.Source {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return catalog.Static{C: c}
}

func decodeCodes(t *testing.T, out string) []string {
	t.Helper()
	var courses []catalog.Course
	require.NoError(t, json.Unmarshal([]byte(out), &courses))
	codes := make([]string, len(courses))
	for i, c := range courses {
		codes[i] = c.Code
	}
	return codes
}

func TestRecommendCoursesTool(t *testing.T) {
	tool := NewRecommendCoursesTool(staticCatalog(t))
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{
			name: "default limit",
			args: map[string]any{"interest": "ML"},
			want: []string{"DS101", "DS201", "DS230", "DS310"},
		},
		{
			name: "null optionals",
			args: map[string]any{"interest": "machine learning", "limit": nil, "type_filter": nil, "level": nil},
			want: []string{"DS101", "DS201", "DS230", "DS310"},
		},
		{
			name: "filters",
			args: map[string]any{"interest": "cybersecurity", "limit": float64(4), "type_filter": "elective", "level": "PG"},
			want: []string{"CY330", "CY410"},
		},
		{
			name: "explicit zero clamps to one",
			args: map[string]any{"interest": "web", "limit": float64(0)},
			want: []string{"CS120"},
		},
		{
			name: "unknown interest",
			args: map[string]any{"interest": "astronomy"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tool.ValidateArgs(tt.args))
			out, err := tool.Fn(ctx, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decodeCodes(t, out))
		})
	}
}

func TestRecommendCoursesToolKeepsAmpersands(t *testing.T) {
	tool := NewRecommendCoursesTool(staticCatalog(t))
	out, err := tool.Fn(context.Background(), map[string]any{"interest": "data science", "limit": float64(10)})
	require.NoError(t, err)
	assert.Contains(t, out, `"Responsible & Ethical AI"`)
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRecommendCoursesToolRejectsBadArgs(t *testing.T) {
	tool := NewRecommendCoursesTool(staticCatalog(t))

	assert.Error(t, tool.ValidateArgs(map[string]any{}))
	assert.Error(t, tool.ValidateArgs(map[string]any{"interest": "ai", "limit": "four"}))

	_, err := tool.Fn(context.Background(), map[string]any{"interest": "ai", "limit": 2.5})
	assert.ErrorContains(t, err, "limit must be an integer")
	_, err = tool.Fn(context.Background(), map[string]any{"interest": 7})
	assert.Error(t, err)
}

func TestLookupScheduleTool(t *testing.T) {
	tool := NewLookupScheduleTool(staticCatalog(t))
	require.NoError(t, tool.ValidateArgs(nil))

	out, err := tool.Fn(context.Background(), nil)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "term_start: 2025-09-01", lines[0])
	assert.Equal(t, "finals_window: 2025-12-10 to 2025-12-19", lines[3])
	assert.True(t, strings.HasPrefix(lines[5], "class_times: UG: Mon–Fri"))
}

type fakeSummarizer struct {
	out  string
	err  error
	seen []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.seen = append(f.seen, text)
	return f.out, f.err
}

func TestSummarizeTextTool(t *testing.T) {
	ctx := context.Background()

	ok := &fakeSummarizer{out: "  Start with DS101 and DS230.  "}
	out, err := NewSummarizeTextTool(ok, nil).Fn(ctx, map[string]any{"text": "DS101, DS230"})
	require.NoError(t, err)
	assert.Equal(t, "Start with DS101 and DS230.", out)
	assert.Equal(t, []string{"DS101, DS230"}, ok.seen)

	empty := &fakeSummarizer{out: "   "}
	out, err = NewSummarizeTextTool(empty, nil).Fn(ctx, map[string]any{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, summary.Placeholder, out)

	failing := &fakeSummarizer{err: errors.New("upstream 503")}
	out, err = NewSummarizeTextTool(failing, nil).Fn(ctx, map[string]any{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, summary.Placeholder, out)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewSummarizeTextTool(failing, nil).Fn(cancelled, map[string]any{"text": "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewToolRegistry(t *testing.T) {
	deps := Deps{Catalog: staticCatalog(t), Summarizer: &fakeSummarizer{out: "ok"}}

	reg, err := NewToolRegistry(deps, Set{Recommend: true, Summarize: true})
	require.NoError(t, err)
	assert.Equal(t, []string{RecommendCoursesName, SummarizeTextName}, reg.Names())

	reg, err = NewToolRegistry(deps, Set{Schedule: true})
	require.NoError(t, err)
	assert.Equal(t, []string{LookupScheduleName}, reg.Names())

	reg, err = NewToolRegistry(Deps{}, Set{})
	require.NoError(t, err)
	assert.Empty(t, reg)

	_, err = NewToolRegistry(Deps{}, Set{Schedule: true})
	assert.Error(t, err)
	_, err = NewToolRegistry(Deps{Catalog: deps.Catalog}, Set{Summarize: true})
	assert.Error(t, err)
}
