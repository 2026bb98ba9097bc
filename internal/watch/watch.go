// Package watch reports changes to agent session logs as they happen.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/agentstatus/internal/session"
	"github.com/grovetools/core/logging"
)

var logger = logging.NewLogger("agstatus.watch")

// DefaultDebounce coalesces bursts of writes to the same log.
const DefaultDebounce = 200 * time.Millisecond

// Event names the agent and session log that last changed within a
// debounce window.
type Event struct {
	Agent string
	File  string
	Op    fsnotify.Op
}

// Sessions watches the session directories of the given agents until ctx is
// done. Agents without a session directory are not watched. The returned
// channel is closed when watching stops.
func Sessions(ctx context.Context, locator *session.Locator, agentIDs []string, debounce time.Duration) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	agents := make(map[string]string, len(agentIDs))
	for _, id := range agentIDs {
		dir := locator.SessionsDir(id)
		if err := watcher.Add(dir); err != nil {
			logger.WithError(err).WithField("agent", id).Debug("Not watching sessions dir")
			continue
		}
		agents[dir] = id
	}

	events := make(chan Event, 32)
	go func() {
		defer watcher.Close()
		defer close(events)

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}
		var pending *Event

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !session.IsSessionFile(filepath.Base(ev.Name)) {
					continue
				}
				pending = &Event{
					Agent: agents[filepath.Dir(ev.Name)],
					File:  filepath.Base(ev.Name),
					Op:    ev.Op,
				}
				timer.Reset(debounce)

			case <-timer.C:
				if pending == nil {
					continue
				}
				select {
				case events <- *pending:
				default:
					// Receiver is behind; it will re-read everything anyway.
				}
				pending = nil

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithError(err).Warn("Session watcher error")
			}
		}
	}()

	return events, nil
}
