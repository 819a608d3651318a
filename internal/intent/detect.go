// Package intent holds the deterministic keyword and pattern detectors used
// to route a chat message. Every detector is a pure function of the message.
package intent

import "strings"

// Normalize lowercases text and collapses whitespace runs to single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func matchesAny(tokens []string, text string) bool {
	t := Normalize(text)
	for _, tok := range tokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

// HasSummary reports an explicit request for a short or one-sentence summary.
func HasSummary(text string) bool { return matchesAny(summaryTokens, text) }

// HasCourse reports a course planning or advising request.
func HasCourse(text string) bool { return matchesAny(courseTokens, text) }

// HasSchedule reports a question about dates, times or academic milestones.
func HasSchedule(text string) bool { return matchesAny(scheduleTokens, text) }

// HasPoem reports a request for a poem of any topic.
func HasPoem(text string) bool { return matchesAny(poemTokens, text) }

// PoemIsCampus reports whether the message mentions campus or student social life.
func PoemIsCampus(text string) bool { return matchesAny(campusMarkers, text) }

// HasAdvisingAction reports explicit advising wording. It separates "which
// courses have finals" style questions from pure schedule questions.
func HasAdvisingAction(text string) bool {
	t := strings.ToLower(text)
	for _, p := range advisingPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return adviseWords.MatchString(t)
}
