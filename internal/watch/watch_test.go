package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/agentstatus/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_ReportsSessionWrites(t *testing.T) {
	root := t.TempDir()
	locator := session.NewLocator(root)
	dir := locator.SessionsDir("main")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := Sessions(ctx, locator, []string{"main", "absent"}, 20*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.jsonl"), []byte("{}\n"), 0o644))

	select {
	case ev := <-events:
		assert.Equal(t, "main", ev.Agent)
		assert.Equal(t, "s.jsonl", ev.File)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for session event")
	}

	cancel()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
