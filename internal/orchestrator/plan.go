package orchestrator

import (
	"slices"

	"github.com/ChamsBouzaiene/campus/internal/agents"
	"github.com/ChamsBouzaiene/campus/internal/intent"
	"github.com/ChamsBouzaiene/campus/internal/prompts"
)

// BuildPlan returns the specialists to run for one message. The result is
// never empty, holds each key at most once and is ordered poet, scheduler,
// advisor. label is the router's raw output; anything that is not a
// specialist key is ignored.
func BuildPlan(label string, sig intent.Signals) []agents.Key {
	var plan []agents.Key
	if k, ok := agents.ParseSpecialist(label); ok {
		plan = append(plan, k)
	}

	if sig.CampusPoem() {
		plan = append(plan, agents.Poet)
	}

	// A campus poem with no explicit schedule question stays poem-only.
	if sig.Schedule && sig.ExplicitScheduleAsk {
		plan = append(plan, agents.Scheduler)
	}

	if (sig.Course && (!sig.Schedule || sig.AdvisingAction)) || len(plan) == 0 {
		plan = append(plan, agents.Advisor)
	}

	return orderPlan(plan)
}

// orderPlan drops repeats, keeping first occurrences, then sorts by the
// fixed specialist priority.
func orderPlan(plan []agents.Key) []agents.Key {
	seen := make(map[agents.Key]bool, len(plan))
	out := make([]agents.Key, 0, len(plan))
	for _, k := range plan {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	slices.SortStableFunc(out, func(a, b agents.Key) int {
		return agents.Priority(a) - agents.Priority(b)
	})
	return out
}

// PromptFor builds the turn prompt handed to specialist k.
func PromptFor(k agents.Key, message string, sig intent.Signals) string {
	switch k {
	case agents.Poet:
		return prompts.Poet(message)
	case agents.Scheduler:
		return prompts.Scheduler(sig)
	default:
		return prompts.Advisor(message, sig.Summary)
	}
}
