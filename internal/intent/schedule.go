package intent

import "regexp"

// Canonical schedule field names.
const (
	FieldTermStart          = "term_start"
	FieldAddDropDeadline    = "add_drop_deadline"
	FieldMidtermsWindow     = "midterms_window"
	FieldFinalsWindow       = "finals_window"
	FieldGraduationCeremony = "graduation_ceremony"
	FieldClassTimes         = "class_times"
)

// DefaultScheduleFields are answered when a schedule question names no field.
var DefaultScheduleFields = []string{
	FieldTermStart,
	FieldAddDropDeadline,
	FieldMidtermsWindow,
	FieldFinalsWindow,
	FieldGraduationCeremony,
}

type fieldPattern struct {
	re    *regexp.Regexp
	field string
}

// Evaluated in order; the first pattern that yields a field fixes its position.
var fieldPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)\b(midterm|midterms)\b`), FieldMidtermsWindow},
	{regexp.MustCompile(`(?i)\b(final|finals)\b`), FieldFinalsWindow},
	{regexp.MustCompile(`(?i)\bexam(s)?\b`), FieldFinalsWindow},
	{regexp.MustCompile(`(?i)\badd\s*/?\s*drop\b|add[- ]drop\b|adddrop\b`), FieldAddDropDeadline},
	{regexp.MustCompile(`(?i)\b(term\s*start|term\b.*\bstart|start\b.*\bterm)\b`), FieldTermStart},
	{regexp.MustCompile(`(?i)\b(graduation\s+ceremony|convocation|ceremony)\b`), FieldGraduationCeremony},
	{regexp.MustCompile(`(?i)\bclass\s*times?\b|\bclass\s*timings?\b|\bclass\s*hours?\b`), FieldClassTimes},
}

var (
	specificDay         = regexp.MustCompile(`(?i)\b(today|tomorrow|day after tomorrow|\d{4}-\d{2}-\d{2})\b`)
	courseCode          = regexp.MustCompile(`\b[A-Z]{2,4}\d{3}\b`)
	classSchedulePhrase = regexp.MustCompile(`(?i)\bclass schedule\b|\bschedule for\b`)

	explicitTimeAsk = regexp.MustCompile(`(?i)\b(when|what time|what times|what date|what dates|date|dates|time|times|schedules?|` +
		`deadline|deadlines|window|windows|period|periods|timetable|calendar|add/?\s*drop|` +
		`census date|start of term|term start)\b`)
	fieldQuestion = regexp.MustCompile(`(?i)\b(midterms?|finals?|exam(?:s)?)\s*\?`)

	adviseWords = regexp.MustCompile(`(?i)\b(elective|electives|prereq|prereqs|prerequisite|prerequisites|` +
		`credit|credits|unit|units|requirement|requirements|eligibility|` +
		`recommend|recommendation|advisor|advise|suggest)\b`)
)

// ScheduleFields returns the canonical fields a message asks about, in
// pattern order. Aliases of one field collapse into a single entry.
func ScheduleFields(message string) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, p := range fieldPatterns {
		if seen[p.field] || !p.re.MatchString(message) {
			continue
		}
		seen[p.field] = true
		fields = append(fields, p.field)
	}
	return fields
}

// ExplicitScheduleAsk separates a real schedule question from an incidental
// mention of a schedule word, e.g. "a haiku about finals week".
func ExplicitScheduleAsk(message string) bool {
	return explicitTimeAsk.MatchString(message) || fieldQuestion.MatchString(message)
}

// WantsSpecificScheduleItem reports a per-day or per-course schedule request.
// The schedule table has no such granularity.
func WantsSpecificScheduleItem(message string) bool {
	return specificDay.MatchString(message) ||
		courseCode.MatchString(message) ||
		classSchedulePhrase.MatchString(message)
}
