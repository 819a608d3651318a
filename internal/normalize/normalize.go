// Package normalize cleans specialist replies for display. The poet's
// text is never touched; its line structure is the answer.
package normalize

import (
	"regexp"
	"strings"

	"github.com/ChamsBouzaiene/campus/internal/agents"
)

var (
	schedLabel   = regexp.MustCompile(`(?m)^\s*-\s*\*\*(.+?)\*\*:\s*`)
	schedBullets = regexp.MustCompile(`(?m)^\s*(?:-\s*)+`)
	dashes       = strings.NewReplacer("\u2013", "-", "\u2014", "-")

	advisorFence = regexp.MustCompile("(?m)^\\s*`{3,}.*?$|`{3,}\\s*$")
	advisorBold  = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// maxPasses bounds fixpoint iteration; real replies settle in one or two.
const maxPasses = 8

func fixpoint(text string, pass func(string) string) string {
	for i := 0; i < maxPasses; i++ {
		next := pass(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

// Scheduler turns "- **label**: value" lines into "label: value", drops
// leftover bullet markers and maps en and em dashes to "-".
func Scheduler(text string) string {
	if text == "" {
		return text
	}
	return fixpoint(text, func(s string) string {
		s = schedLabel.ReplaceAllString(s, "${1}: ")
		s = schedBullets.ReplaceAllString(s, "")
		s = dashes.Replace(s)
		return strings.TrimSpace(s)
	})
}

// Advisor removes code fence lines and unwraps **bold** spans.
func Advisor(text string) string {
	if text == "" {
		return text
	}
	return fixpoint(text, func(s string) string {
		s = advisorFence.ReplaceAllString(s, "")
		s = advisorBold.ReplaceAllString(s, "${1}")
		return strings.TrimSpace(s)
	})
}

// ForAgent applies the normalizer that belongs to the named responder.
func ForAgent(name, text string) string {
	switch name {
	case agents.SchedulerName:
		return Scheduler(text)
	case agents.AdvisorName:
		return Advisor(text)
	default:
		return text
	}
}
