package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduler(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain sentence", "Midterms run 2025-10-20 to 2025-10-31.", "Midterms run 2025-10-20 to 2025-10-31."},
		{
			"bold labels",
			"- **Term start**: 2025-09-01\n- **Finals window**: 2025-12-10 to 2025-12-19",
			"Term start: 2025-09-01\nFinals window: 2025-12-10 to 2025-12-19",
		},
		{"bare bullets", "  - one\n- two", "one\ntwo"},
		{"stacked bullets", "- - nested", "nested"},
		{"dashes", "Mon–Fri 09:00—17:00", "Mon-Fri 09:00-17:00"},
		{"surrounding space", "\n\n  Finals start 2025-12-10.  \n", "Finals start 2025-12-10."},
		{"inline hyphen kept", "add-drop ends 2025-09-12", "add-drop ends 2025-09-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scheduler(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Scheduler(got), "not idempotent")
		})
	}
}

func TestAdvisor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bold", "Take **DS101** and **DS230**.", "Take DS101 and DS230."},
		{"fence", "```json\n[\"DS101\"]\n```", "[\"DS101\"]"},
		{"indented fence", "Options:\n  ```\nDS101\n  ```\nDone.", "Options:\n\nDS101\n\nDone."},
		{"triple stars", "***x***", "*x*"},
		{"unpaired bold", "**dangling", "**dangling"},
		{"bullets untouched", "- DS101\n- DS230", "- DS101\n- DS230"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advisor(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Advisor(got), "not idempotent")
		})
	}
}

func TestIdempotenceOnAwkwardInput(t *testing.T) {
	inputs := []string{
		"- **a**: - **b**: c",
		"-\n- x",
		"** **x** **",
		"````\n```\n**``` **",
		"—\n–\n- — -",
		"   \n\t",
	}
	for _, in := range inputs {
		s := Scheduler(in)
		assert.Equal(t, s, Scheduler(s), "scheduler %q", in)
		a := Advisor(in)
		assert.Equal(t, a, Advisor(a), "advisor %q", in)
	}
}

func TestForAgent(t *testing.T) {
	poem := "**Lamps** hum in the stacks\n- highlighters bleed\n```"
	assert.Equal(t, poem, ForAgent("UniversityPoet", poem))
	assert.Equal(t, "Lamps hum in the stacks\n- highlighters bleed", ForAgent("CourseAdvisor", poem))
	assert.Equal(t, "**Lamps** hum in the stacks\nhighlighters bleed\n```", ForAgent("SchedulingAssistant", poem))
	assert.Equal(t, "x", ForAgent("system", "x"))
}
