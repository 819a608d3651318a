package intent

// Signals is the per-message set of detector outputs. It is recomputed for
// every turn and never cached.
type Signals struct {
	Course               bool     `json:"course"`
	Schedule             bool     `json:"schedule"`
	Poem                 bool     `json:"poem"`
	CampusTopic          bool     `json:"campus_topic"`
	Summary              bool     `json:"summary"`
	ScheduleFields       []string `json:"schedule_fields,omitempty"`
	SpecificScheduleItem bool     `json:"specific_schedule_item"`
	ExplicitScheduleAsk  bool     `json:"explicit_schedule_ask"`
	AdvisingAction       bool     `json:"advising_action"`
}

// Detect runs every detector over message.
func Detect(message string) Signals {
	return Signals{
		Course:               HasCourse(message),
		Schedule:             HasSchedule(message),
		Poem:                 HasPoem(message),
		CampusTopic:          PoemIsCampus(message),
		Summary:              HasSummary(message),
		ScheduleFields:       ScheduleFields(message),
		SpecificScheduleItem: WantsSpecificScheduleItem(message),
		ExplicitScheduleAsk:  ExplicitScheduleAsk(message),
		AdvisingAction:       HasAdvisingAction(message),
	}
}

// CampusPoem reports a poem request whose topic is in scope for the poet.
func (s Signals) CampusPoem() bool { return s.Poem && s.CampusTopic }
