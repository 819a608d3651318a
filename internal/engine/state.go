package engine

// State is the working memory of one Run.
type State struct {
	Agent    string        // name of the agent driving this run
	History  []ChatMessage // conversation history
	Step     int           // increments only on success
	Retries  int           // retry attempts, tracked separately from steps
	Done     bool          // true once the model answers without tool calls
	Model    string
	MaxSteps int
	Totals   Usage
}

func (s *State) Append(msg ChatMessage) { s.History = append(s.History, msg) }

// FinalText returns the content of the last assistant message.
func (s *State) FinalText() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAssistant {
			return s.History[i].Content
		}
	}
	return ""
}
