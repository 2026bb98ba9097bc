package status

import (
	"context"
	"path/filepath"
	"time"

	"github.com/grovetools/agentstatus/internal/roster"
	"github.com/grovetools/agentstatus/internal/session"
	"github.com/grovetools/agentstatus/internal/transcript"
	"github.com/grovetools/core/logging"
	"github.com/sirupsen/logrus"
)

// DefaultRosterFile is the roster document name under the root directory.
const DefaultRosterFile = "openclaw.json"

// Service computes agent statuses for a root directory laid out as
// <root>/<roster file> and <root>/agents/<id>/sessions/.
type Service struct {
	rootDir    string
	rosterPath string
	thresholds Thresholds
	ttl        time.Duration
	now        func() time.Time

	locator   *session.Locator
	parser    *transcript.Parser
	collector *session.Collector
	cache     *Cache
	logger    *logrus.Entry
}

// Option configures a Service.
type Option func(*Service)

// WithRosterPath overrides the roster document location.
func WithRosterPath(path string) Option {
	return func(s *Service) { s.rosterPath = path }
}

// WithThresholds overrides the classification thresholds.
func WithThresholds(th Thresholds) Option {
	return func(s *Service) { s.thresholds = th }
}

// WithTTL overrides the cache time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock injects the wall clock used for classification and caching.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a status service rooted at rootDir.
func NewService(rootDir string, opts ...Option) *Service {
	s := &Service{
		rootDir:    rootDir,
		rosterPath: filepath.Join(rootDir, DefaultRosterFile),
		thresholds: DefaultThresholds,
		ttl:        DefaultTTL,
		now:        time.Now,
		parser:     transcript.NewParser(),
		logger:     logging.NewLogger("agstatus.status"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.locator = session.NewLocator(rootDir)
	s.collector = session.NewCollector(s.locator)
	s.cache = NewCache(s.ttl, s.now)
	return s
}

// Locator returns the session locator used by the service.
func (s *Service) Locator() *session.Locator {
	return s.locator
}

// Cache returns the service's result cache.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Roster reads the agent roster. It is never cached.
func (s *Service) Roster() []roster.AgentConfig {
	return roster.Load(s.rosterPath)
}

// Agents returns the status of every roster agent, served from the cache
// while it is fresh.
func (s *Service) Agents(ctx context.Context) []AgentStatus {
	return s.cache.Get(func() ([]AgentStatus, bool) {
		statuses := s.Compute(ctx)
		return statuses, ctx.Err() == nil
	})
}

// Compute re-reads the roster and every agent's latest session, bypassing
// the cache. On cancellation it returns the statuses computed so far.
func (s *Service) Compute(ctx context.Context) []AgentStatus {
	agents := s.Roster()
	statuses := make([]AgentStatus, 0, len(agents))
	for _, agent := range agents {
		if ctx.Err() != nil {
			break
		}
		statuses = append(statuses, s.AgentStatus(agent))
	}

	s.logger.WithFields(logrus.Fields{
		"agents":   len(agents),
		"computed": len(statuses),
	}).Debug("Computed agent statuses")
	return statuses
}

// AgentStatus computes the status of a single agent from its latest session log.
func (s *Service) AgentStatus(agent roster.AgentConfig) AgentStatus {
	ref := s.locator.Latest(agent.ID)
	if ref == nil {
		return AgentStatus{
			Name:   agent.ID,
			Status: StateOffline,
			Model:  modelPtr(agent.Model),
		}
	}

	result, err := s.parser.ScanFile(ref.Path)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"agent": agent.ID,
			"file":  ref.Path,
		}).Warn("Failed to parse session")
		return AgentStatus{
			Name:   agent.ID,
			Status: StateError,
			Model:  modelPtr(agent.Model),
			Error:  err.Error(),
		}
	}

	model := agent.Model
	if model == "" {
		model = result.Model
	}

	fileModified := ref.ModifiedMillis()
	if result.Last == nil {
		// The file's existence still counts as evidence of activity.
		return AgentStatus{
			Name:         agent.ID,
			Status:       StateOffline,
			LastActivity: int64Ptr(fileModified),
			Model:        modelPtr(model),
		}
	}

	timestamp := transcript.NormalizeTimestamp(result.Last.Timestamp, fileModified)
	return AgentStatus{
		Name:           agent.ID,
		Status:         Classify(s.now(), timestamp, s.thresholds),
		LastActivity:   int64Ptr(timestamp),
		Model:          modelPtr(model),
		SessionModel:   result.Model,
		Usage:          result.Last.Usage,
		SessionFile:    ref.FileName,
		FileModified:   int64Ptr(fileModified),
		SessionDeleted: ref.Deleted,
	}
}

// Messages returns every message record across all roster agents and all of
// their active session logs. It is not cached.
func (s *Service) Messages(ctx context.Context) []session.AgentMessage {
	agents := s.Roster()
	ids := make([]string, 0, len(agents))
	for _, a := range agents {
		ids = append(ids, a.ID)
	}
	return s.collector.All(ctx, ids)
}
