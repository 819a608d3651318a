package intent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "when do midterms start?", Normalize("  When   do\tMIDTERMS\nstart? "))
	assert.Equal(t, "", Normalize("   "))
}

func TestTokenDetectors(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		course   bool
		schedule bool
		poem     bool
		campus   bool
		summary  bool
	}{
		{name: "course planning", message: "Which electives count toward my major?", course: true},
		{name: "prerequisites", message: "What are the PREREQS for DS310", course: true},
		{name: "schedule question", message: "When do midterms start?", schedule: true, campus: true},
		{name: "add drop", message: "Last day for add/drop", schedule: true},
		{name: "campus haiku", message: "Write a haiku about the library at night", poem: true, campus: true},
		{name: "off campus poem", message: "write a poem about the ocean", poem: true},
		{name: "summary", message: "Summarise that in one sentence please", summary: true},
		{name: "weather", message: "What's the weather today?"},
		{name: "whitespace collapse", message: "give me a short\n\n  summary", summary: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.course, HasCourse(tt.message), "course")
			assert.Equal(t, tt.schedule, HasSchedule(tt.message), "schedule")
			assert.Equal(t, tt.poem, HasPoem(tt.message), "poem")
			assert.Equal(t, tt.campus, PoemIsCampus(tt.message), "campus")
			assert.Equal(t, tt.summary, HasSummary(tt.message), "summary")
		})
	}
}

func TestScheduleFields(t *testing.T) {
	tests := []struct {
		message string
		want    []string
	}{
		{"When do midterms start?", []string{FieldMidtermsWindow}},
		{"When are finals and exams?", []string{FieldFinalsWindow}},
		{"exam dates and the add-drop deadline", []string{FieldFinalsWindow, FieldAddDropDeadline}},
		{"When does the term start?", []string{FieldTermStart}},
		{"start of the term please", []string{FieldTermStart}},
		{"When is convocation?", []string{FieldGraduationCeremony}},
		{"What are the class timings?", []string{FieldClassTimes}},
		{"Ceremony, midterm and final dates", []string{FieldMidtermsWindow, FieldFinalsWindow, FieldGraduationCeremony}},
		{"What is the schedule?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ScheduleFields(tt.message)); diff != "" {
				t.Errorf("ScheduleFields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExplicitScheduleAsk(t *testing.T) {
	assert.True(t, ExplicitScheduleAsk("When do midterms start?"))
	assert.True(t, ExplicitScheduleAsk("midterms?"))
	assert.True(t, ExplicitScheduleAsk("what's the timetable"))
	assert.False(t, ExplicitScheduleAsk("Write a haiku about finals week"))
	assert.False(t, ExplicitScheduleAsk("a poem about exam stress"))
}

func TestWantsSpecificScheduleItem(t *testing.T) {
	assert.True(t, WantsSpecificScheduleItem("What classes do I have today?"))
	assert.True(t, WantsSpecificScheduleItem("Any exams Tomorrow?"))
	assert.True(t, WantsSpecificScheduleItem("what happens on 2025-10-21"))
	assert.True(t, WantsSpecificScheduleItem("When is the DS201 final?"))
	assert.True(t, WantsSpecificScheduleItem("show me the class schedule"))
	assert.False(t, WantsSpecificScheduleItem("When is the ds201 final?"), "course codes are case sensitive")
	assert.False(t, WantsSpecificScheduleItem("When do midterms start?"))
}

func TestHasAdvisingAction(t *testing.T) {
	assert.True(t, HasAdvisingAction("Which courses have finals?"))
	assert.True(t, HasAdvisingAction("Can you recommend something"))
	assert.True(t, HasAdvisingAction("help with my degree plan"))
	assert.False(t, HasAdvisingAction("When are finals?"))
}

func TestDetect(t *testing.T) {
	got := Detect("Write a haiku about finals week")
	want := Signals{
		Schedule:       true,
		Poem:           true,
		CampusTopic:    true,
		ScheduleFields: []string{FieldFinalsWindow},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Detect mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, got.CampusPoem())
}
