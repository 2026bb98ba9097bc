package agentstatus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/agentstatus/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoot(t *testing.T, now time.Time) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "roster.json"),
		[]byte(`{"agents":{"list":[{"id":"main","model":"anthropic/claude-opus-4-6"}]}}`), 0o644))

	dir := filepath.Join(root, "agents", "main", "sessions")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	line := `{"type":"message","timestamp":"` + now.Add(-20*time.Minute).UTC().Format(time.RFC3339) + `"}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.jsonl"), []byte(line), 0o644))
	return root
}

func TestNewFromConfig(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	root := writeRoot(t, now)

	cfg := &config.Config{RootDir: root, RosterFile: "roster.json", IdleMinutes: 10}
	cfg.ApplyDefaults()

	svc := NewFromConfig(cfg, WithClock(func() time.Time { return now }))
	_, ok := svc.CacheAge(now)
	assert.False(t, ok)

	statuses := svc.Agents(context.Background())
	require.Len(t, statuses, 1)
	assert.Equal(t, StateOffline, statuses[0].Status, "idle window lowered to 10 minutes")
	assert.Equal(t, "claude-opus-4-6", *statuses[0].Model)

	age, ok := svc.CacheAge(now.Add(5 * time.Second))
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, age)
}

func TestParser_LastActivity(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	root := writeRoot(t, now)
	p := NewParser()

	ms, err := p.LastActivity(filepath.Join(root, "agents", "main", "sessions", "s.jsonl"), 1)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-20*time.Minute).UnixMilli(), ms)

	empty := filepath.Join(root, "empty.jsonl")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o644))
	ms, err = p.LastActivity(empty, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ms)

	_, err = p.LastActivity(filepath.Join(root, "nope.jsonl"), 0)
	assert.Error(t, err)
}
