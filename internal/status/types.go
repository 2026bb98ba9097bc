// Package status infers the operational state of agents from their session logs.
package status

import (
	"maps"
	"time"
)

// State is the inferred operational state of an agent.
type State string

const (
	// StateActive means the agent logged a message within the active threshold.
	StateActive State = "active"

	// StateIdle means the last message is older than the active threshold but
	// within the idle threshold.
	StateIdle State = "idle"

	// StateOffline means there is no recent message, or no session at all.
	StateOffline State = "offline"

	// StateError means the latest session log could not be read.
	StateError State = "error"
)

// AgentStatus is the computed status of one roster agent.
type AgentStatus struct {
	Name           string         `json:"name"`
	Status         State          `json:"status"`
	LastActivity   *int64         `json:"lastActivity"`
	Model          *string        `json:"model"`
	SessionModel   string         `json:"sessionModel,omitempty"`
	Usage          map[string]any `json:"usage"`
	SessionFile    string         `json:"sessionFile,omitempty"`
	FileModified   *int64         `json:"fileModified,omitempty"`
	SessionDeleted bool           `json:"sessionDeleted,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// LastActivityTime returns LastActivity as a time, or the zero time when unset.
func (s AgentStatus) LastActivityTime() time.Time {
	if s.LastActivity == nil {
		return time.Time{}
	}
	return time.UnixMilli(*s.LastActivity)
}

func (s AgentStatus) clone() AgentStatus {
	c := s
	if s.LastActivity != nil {
		v := *s.LastActivity
		c.LastActivity = &v
	}
	if s.FileModified != nil {
		v := *s.FileModified
		c.FileModified = &v
	}
	if s.Model != nil {
		v := *s.Model
		c.Model = &v
	}
	c.Usage = maps.Clone(s.Usage)
	return c
}

func cloneStatuses(in []AgentStatus) []AgentStatus {
	if in == nil {
		return nil
	}
	out := make([]AgentStatus, len(in))
	for i, s := range in {
		out[i] = s.clone()
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }

func modelPtr(m string) *string {
	if m == "" {
		return nil
	}
	return &m
}
