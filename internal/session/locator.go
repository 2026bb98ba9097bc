package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/core/logging"
	"github.com/sirupsen/logrus"
)

const (
	activePattern  = "*.jsonl"
	deletedPattern = "*.jsonl" + DeletedMarker + "*"
)

// Locator finds session logs under <root>/agents/<id>/sessions.
type Locator struct {
	agentsDir string
	logger    *logrus.Entry
}

// NewLocator creates a locator rooted at rootDir.
func NewLocator(rootDir string) *Locator {
	return &Locator{
		agentsDir: filepath.Join(rootDir, "agents"),
		logger:    logging.NewLogger("agstatus.session"),
	}
}

// SessionsDir returns the session directory for an agent.
func (l *Locator) SessionsDir(agentID string) string {
	return filepath.Join(l.agentsDir, agentID, "sessions")
}

// List returns every active and soft-deleted session log for the agent,
// newest first. A missing directory yields no files and no error.
func (l *Locator) List(agentID string) ([]SessionFileRef, error) {
	if !validAgentID(agentID) {
		return nil, fmt.Errorf("invalid agent id %q", agentID)
	}

	dir := l.SessionsDir(agentID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sessions dir: %w", err)
	}

	var refs []SessionFileRef
	for _, pattern := range []string{activePattern, deletedPattern} {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if ok, _ := filepath.Match(pattern, e.Name()); !ok {
				continue
			}
			info, err := e.Info()
			if err != nil {
				l.logger.WithError(err).WithField("file", e.Name()).Debug("Failed to stat session file")
				continue
			}
			refs = append(refs, SessionFileRef{
				FileName:   e.Name(),
				Path:       filepath.Join(dir, e.Name()),
				ModifiedAt: info.ModTime(),
				Deleted:    strings.Contains(e.Name(), DeletedMarker),
			})
		}
	}

	// Sort by modification time, most recent first
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].ModifiedAt.After(refs[j].ModifiedAt)
	})
	return refs, nil
}

// Latest returns the most recently modified session log for the agent, or
// nil when there is none. I/O failures are logged and reported as nil.
func (l *Locator) Latest(agentID string) *SessionFileRef {
	refs, err := l.List(agentID)
	if err != nil {
		l.logger.WithError(err).WithField("agent", agentID).Warn("Failed to find session file")
		return nil
	}
	if len(refs) == 0 {
		return nil
	}
	latest := refs[0]
	return &latest
}

// IsSessionFile reports whether name is an active or soft-deleted session log.
func IsSessionFile(name string) bool {
	for _, pattern := range []string{activePattern, deletedPattern} {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func validAgentID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
