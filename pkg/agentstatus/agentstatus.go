// Package agentstatus exposes agent status inference for embedding in other
// programs, such as an HTTP dashboard.
package agentstatus

import (
	"time"

	"github.com/grovetools/agentstatus/config"
	"github.com/grovetools/agentstatus/internal/status"
)

// AgentStatus is the computed status of one agent.
type AgentStatus = status.AgentStatus

// State is an agent's operational state.
type State = status.State

const (
	StateActive  = status.StateActive
	StateIdle    = status.StateIdle
	StateOffline = status.StateOffline
	StateError   = status.StateError
)

// Thresholds bound the active and idle states.
type Thresholds = status.Thresholds

// Option configures a Service.
type Option = status.Option

var (
	WithRosterPath = status.WithRosterPath
	WithThresholds = status.WithThresholds
	WithTTL        = status.WithTTL
	WithClock      = status.WithClock
)

// Service wraps the internal status service
type Service struct {
	*status.Service
}

// New creates a status service for the openclaw root directory root.
func New(root string, opts ...Option) *Service {
	return &Service{
		Service: status.NewService(root, opts...),
	}
}

// NewFromConfig creates a status service from loaded configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) *Service {
	base := []Option{
		WithRosterPath(cfg.RosterPath()),
		WithTTL(cfg.CacheTTL()),
		WithThresholds(Thresholds{
			Active: cfg.ActiveThreshold(),
			Idle:   cfg.IdleThreshold(),
		}),
	}
	return New(cfg.RootDir, append(base, opts...)...)
}

// CacheAge reports how long ago the cached status list was computed.
func (s *Service) CacheAge(now time.Time) (time.Duration, bool) {
	at, ok := s.Cache().ComputedAt()
	if !ok {
		return 0, false
	}
	return now.Sub(at), true
}
