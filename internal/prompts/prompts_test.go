package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChamsBouzaiene/campus/internal/intent"
)

func TestRegistryVersions(t *testing.T) {
	r := NewPromptRegistry()
	r.Register(&Prompt{ID: "x", Version: "1.0.0", Content: "old"})
	r.Register(&Prompt{ID: "x", Version: "1.1.0", Content: "new"})
	r.Register(&Prompt{ID: "x", Version: "1.0.1", Content: "patch"})
	r.Register(nil)

	p, err := r.GetLatest("x")
	require.NoError(t, err)
	assert.Equal(t, "new", p.Content)

	p, err = r.Get("x", "1.0.1")
	require.NoError(t, err)
	assert.Equal(t, "patch", p.Content)

	_, err = r.Get("x", "9.9.9")
	assert.Error(t, err)

	_, err = r.GetLatest("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, []string{"x"}, r.List())
}

func TestBuilderSinglePassSubstitution(t *testing.T) {
	r := NewPromptRegistry()
	r.Register(&Prompt{ID: "t", Version: PromptV1, Content: "a={{a}} b={{b}}"})

	b, err := NewPromptBuilder(r, "t", PromptV1)
	require.NoError(t, err)
	got := b.SetVariable("a", "{{b}}").SetVariable("b", "2").Build()
	assert.Equal(t, "a={{b}} b=2", got)

	_, err = NewPromptBuilder(r, "nope", PromptV1)
	assert.Error(t, err)
}

func TestSpecialistInstructionsRegistered(t *testing.T) {
	for _, id := range []string{TriageID, AdvisorID, SchedulerID, PoetID} {
		text, err := Instructions(id)
		require.NoError(t, err, id)
		assert.NotEmpty(t, text, id)
	}

	triage, _ := Instructions(TriageID)
	assert.True(t, strings.HasSuffix(triage, "advisor | scheduler | poet"))

	advisor, _ := Instructions(AdvisorID)
	assert.Contains(t, advisor, `"`+AdvisorOutOfScope+`"`)
	assert.Contains(t, advisor, "`recommend_courses`")

	scheduler, _ := Instructions(SchedulerID)
	assert.Contains(t, scheduler, `"`+SchedulerOutOfScope+`"`)

	poet, _ := Instructions(PoetID)
	assert.True(t, strings.HasSuffix(poet, `"`+PoetOutOfScope+`"`))

	_, err := Instructions("librarian")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPoetTurn(t *testing.T) {
	got := Poet("haiku about the quad")
	assert.True(t, strings.HasPrefix(got, "Write a haiku about campus or student social life"))
	assert.True(t, strings.HasSuffix(got, "\nUser message: haiku about the quad"))
	assert.Equal(t, 4, strings.Count(got, "\n")+1)
}

func TestSchedulerTurn(t *testing.T) {
	t.Run("specific item", func(t *testing.T) {
		got := Scheduler(intent.Detect("What is the class schedule for DS201 tomorrow?"))
		assert.True(t, strings.HasSuffix(got, "\n\""+SpecificScheduleUnavailable+"\""))
	})

	t.Run("named fields", func(t *testing.T) {
		got := Scheduler(intent.Signals{ScheduleFields: []string{intent.FieldMidtermsWindow, intent.FieldFinalsWindow}})
		assert.Equal(t, "Use ONLY the schedule tool and answer strictly from its result. "+
			"Write concise, factual SENTENCES for exactly these fields: midterms_window, finals_window. "+
			"Use 'YYYY-MM-DD' for dates and 'to' for ranges. One sentence per field. Do NOT include any other fields.", got)
	})

	t.Run("default fields", func(t *testing.T) {
		got := Scheduler(intent.Signals{})
		assert.Equal(t, "Use ONLY the schedule tool and answer strictly from its result. "+
			"Write concise, factual SENTENCES for: term_start, add_drop_deadline, midterms_window, finals_window, graduation_ceremony. "+
			"Use 'YYYY-MM-DD' for dates and 'to' for ranges. One sentence per field.", got)
	})
}

func TestAdvisorTurn(t *testing.T) {
	standard := Advisor("electives for {{fields}}?", false)
	assert.True(t, strings.HasPrefix(standard, "You are the CourseAdvisor. Focus ONLY on course advising"))
	assert.True(t, strings.HasSuffix(standard, "User message: electives for {{fields}}?"))
	assert.NotContains(t, standard, "summarize_text")

	summary := Advisor("summarize ML electives in one sentence", true)
	assert.Contains(t, summary, "ONE-SENTENCE SUMMARY")
	assert.Contains(t, summary, "`summarize_text`")
	assert.True(t, strings.HasSuffix(summary, "User message: summarize ML electives in one sentence"))
}
