package session

import "time"

// DeletedMarker is the file name segment that marks a soft-deleted session log.
const DeletedMarker = ".deleted."

// SessionFileRef identifies a candidate session log for an agent.
type SessionFileRef struct {
	FileName   string    `json:"fileName"`
	Path       string    `json:"path"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Deleted    bool      `json:"deleted"`
}

// ModifiedMillis returns the file modification time in epoch milliseconds.
func (r SessionFileRef) ModifiedMillis() int64 {
	return r.ModifiedAt.UnixMilli()
}

// AgentMessage is one message record found in an agent's session logs.
type AgentMessage struct {
	Agent     string         `json:"agent"`
	Timestamp *int64         `json:"timestamp"`
	Type      string         `json:"type"`
	Model     string         `json:"model,omitempty"`
	Role      string         `json:"role,omitempty"`
	Usage     map[string]any `json:"usage"`
	Data      map[string]any `json:"data"`
	File      string         `json:"file"`
}
