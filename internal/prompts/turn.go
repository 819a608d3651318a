package prompts

import (
	"strings"

	"github.com/ChamsBouzaiene/campus/internal/intent"
)

// Per-turn prompt IDs. These are the user input handed to a specialist,
// not its system instructions.
const (
	TurnPoetID              = "turn.poet"
	TurnSchedulerSpecificID = "turn.scheduler.specific"
	TurnSchedulerFieldsID   = "turn.scheduler.fields"
	TurnSchedulerDefaultID  = "turn.scheduler.default"
	TurnAdvisorID           = "turn.advisor"
	TurnAdvisorSummaryID    = "turn.advisor.summary"
)

// SpecificScheduleUnavailable is the one-line reply for per-day or
// per-course schedule requests.
const SpecificScheduleUnavailable = "Details for that specific schedule are not available in the current data."

const turnPoet = "Write a haiku about campus or student social life based on the user's message.\n" +
	"FORMAT: exactly three lines (5-7-5). No title, no extra text.\n" +
	"Do not include any dates or scheduling details (like exact days or ranges).\n" +
	"User message: {{message}}"

const turnSchedulerSpecific = "If the user asks for a per-day or per-course class schedule (e.g., \"today\", \"tomorrow\", a specific date, " +
	"or a course code like DS201), reply exactly with one line:\n" +
	"\"" + SpecificScheduleUnavailable + "\""

const turnSchedulerFields = "Use ONLY the schedule tool and answer strictly from its result. " +
	"Write concise, factual SENTENCES for exactly these fields: " +
	"{{fields}}. Use 'YYYY-MM-DD' for dates and 'to' for ranges. " +
	"One sentence per field. Do NOT include any other fields."

const turnSchedulerDefault = "Use ONLY the schedule tool and answer strictly from its result. " +
	"Write concise, factual SENTENCES for: " +
	"{{fields}}. " +
	"Use 'YYYY-MM-DD' for dates and 'to' for ranges. One sentence per field."

const turnAdvisorSummary = "You are the CourseAdvisor. The user asked for a ONE-SENTENCE SUMMARY.\n" +
	"Rules:\n" +
	"1) Identify the user's interest area from this turn or prior session context.\n" +
	"2) If recommendations for that interest are not already explicit in this turn, " +
	"you MUST call `recommend_courses` to obtain ~3–4 items.\n" +
	"3) Then you MUST call `summarize_text` on the recommendations to produce " +
	"exactly one concise sentence. Do not include dates or poetry.\n" +
	"If the user asks what they asked previously or to recap the last recommendations, " +
	"respond with one concise sentence summarizing that prior request/recommendations using session context.\n" +
	"User message: {{message}}"

const turnAdvisor = "You are the CourseAdvisor. Focus ONLY on course advising (credits, requirements, prerequisites, eligibility, recommendations). " +
	"Do NOT include any dates or schedule info.\n" +
	"Conversation meta (allowed): If the user asks what they asked previously, or to recap/clarify earlier recommendations, " +
	"briefly paraphrase the relevant prior request or your last recommendations. This is in scope and must NOT trigger the out-of-scope guard.\n" +
	"Out-of-scope guard: If the message is unrelated to academics (e.g., weather, politics, sports, stock prices, exchange rates, news, " +
	"general facts), reply exactly with: " +
	"\"" + AdvisorOutOfScope + "\" " +
	"Do NOT call any tools in that case.\n" +
	"Instructions:\n" +
	"1) Extract any interest area mentioned by the user (e.g., 'data science', 'AI', 'web', 'cloud'; include aliases like 'ML').\n" +
	"2) If an interest area is present OR was previously discussed in session, you MUST call the `recommend_courses` tool with that interest " +
	"and suggest ~3–4 options.\n" +
	"3) If no clear interest area is present, ask ONE focused clarifying question and still call `recommend_courses` with the best guess.\n" +
	"Keep to 2–4 concise sentences.\n" +
	"User message: {{message}}"

func init() {
	r := DefaultRegistry()
	for id, content := range map[string]string{
		TurnPoetID:              turnPoet,
		TurnSchedulerSpecificID: turnSchedulerSpecific,
		TurnSchedulerFieldsID:   turnSchedulerFields,
		TurnSchedulerDefaultID:  turnSchedulerDefault,
		TurnAdvisorID:           turnAdvisor,
		TurnAdvisorSummaryID:    turnAdvisorSummary,
	} {
		r.Register(&Prompt{ID: id, Version: PromptV1, Content: content, Tags: []string{"turn"}})
	}
}

func buildTurn(id string, vars map[string]string) string {
	b, err := NewPromptBuilder(DefaultRegistry(), id, PromptV1)
	if err != nil {
		// Turn prompts are registered in init; a miss is a programming error.
		panic(err)
	}
	for k, v := range vars {
		b.SetVariable(k, v)
	}
	return b.Build()
}

// Poet builds the haiku request for a campus poem turn.
func Poet(message string) string {
	return buildTurn(TurnPoetID, map[string]string{"message": message})
}

// Scheduler builds the scheduling request. Per-day and per-course asks get
// the fixed refusal, named fields are answered exclusively, and anything
// else gets the default five calendar fields.
func Scheduler(sig intent.Signals) string {
	switch {
	case sig.SpecificScheduleItem:
		return buildTurn(TurnSchedulerSpecificID, nil)
	case len(sig.ScheduleFields) > 0:
		return buildTurn(TurnSchedulerFieldsID, map[string]string{"fields": strings.Join(sig.ScheduleFields, ", ")})
	default:
		return buildTurn(TurnSchedulerDefaultID, map[string]string{"fields": strings.Join(intent.DefaultScheduleFields, ", ")})
	}
}

// Advisor builds the advising request. summary selects the one-sentence
// variant that chains recommend_courses into summarize_text.
func Advisor(message string, summary bool) string {
	id := TurnAdvisorID
	if summary {
		id = TurnAdvisorSummaryID
	}
	return buildTurn(id, map[string]string{"message": message})
}
