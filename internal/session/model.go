package session

import "time"

// Item roles. Only user prompts and assistant replies are stored; tool
// traffic stays inside a single specialist run.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Item is one stored conversation entry.
type Item struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Agent     string    `json:"agent,omitempty"` // display name of the responder that ran
	CreatedAt time.Time `json:"created_at"`
}

// fileSession is the on-disk document used by FileStore.
type fileSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Items     []Item    `json:"items"`
}
