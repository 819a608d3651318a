// Package agents defines the router and specialist responders and runs
// them against session memory.
package agents

import (
	"errors"
	"strings"

	"github.com/ChamsBouzaiene/campus/internal/prompts"
	"github.com/ChamsBouzaiene/campus/internal/tools"
)

// Key identifies a responder.
type Key string

const (
	Triage    Key = "triage"
	Poet      Key = "poet"
	Scheduler Key = "scheduler"
	Advisor   Key = "advisor"
)

// Display names, as they appear in segments and handoff chains.
const (
	TriageName    = "Triage"
	PoetName      = "UniversityPoet"
	SchedulerName = "SchedulingAssistant"
	AdvisorName   = "CourseAdvisor"
)

// ErrUnknownSpecialist is returned for keys outside the table.
var ErrUnknownSpecialist = errors.New("unknown specialist")

// Spec is one row of the responder table.
type Spec struct {
	Key         Key
	Name        string
	PromptID    string
	Temperature float32
	Tools       tools.Set
	// Priority orders specialists within a turn; lower runs first.
	// The router has none.
	Priority int
}

var specs = []Spec{
	{Key: Triage, Name: TriageName, PromptID: prompts.TriageID, Temperature: 0.0, Priority: -1},
	{Key: Poet, Name: PoetName, PromptID: prompts.PoetID, Temperature: 0.4, Priority: 0},
	{Key: Scheduler, Name: SchedulerName, PromptID: prompts.SchedulerID, Temperature: 0.3,
		Tools: tools.Set{Schedule: true}, Priority: 1},
	{Key: Advisor, Name: AdvisorName, PromptID: prompts.AdvisorID, Temperature: 0.4,
		Tools: tools.Set{Recommend: true, Summarize: true}, Priority: 2},
}

// Lookup returns the table row for k.
func Lookup(k Key) (Spec, bool) {
	for _, s := range specs {
		if s.Key == k {
			return s, true
		}
	}
	return Spec{}, false
}

// Specialists returns the specialist keys in priority order.
func Specialists() []Key {
	return []Key{Poet, Scheduler, Advisor}
}

// IsSpecialist reports whether k names a specialist (not the router).
func IsSpecialist(k Key) bool {
	s, ok := Lookup(k)
	return ok && s.Priority >= 0
}

// ParseSpecialist maps free text such as a router label or a force
// parameter onto a specialist key. Surrounding space and case are ignored.
func ParseSpecialist(label string) (Key, bool) {
	k := Key(strings.ToLower(strings.TrimSpace(label)))
	if !IsSpecialist(k) {
		return "", false
	}
	return k, true
}

// DisplayName returns the name shown for k, or "" when unknown.
func DisplayName(k Key) string {
	s, _ := Lookup(k)
	return s.Name
}

// KeyForName is the inverse of DisplayName.
func KeyForName(name string) (Key, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s.Key, true
		}
	}
	return "", false
}

// Priority returns the run order of a specialist; unknown keys sort last.
func Priority(k Key) int {
	if s, ok := Lookup(k); ok && s.Priority >= 0 {
		return s.Priority
	}
	return 99
}
