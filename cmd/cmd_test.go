package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/agentstatus/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"status", "messages", "usage", "latest", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("root"))
}

func TestLoadConfig_RootFlagWins(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "agstatus.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root_dir: /from/config\ncache_ttl_seconds: 7\n"), 0o644))

	cmd := newStatusCmd()
	cmd.Flags().String("root", "", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "/from/config", cfg.RootDir)
	assert.Equal(t, 7, cfg.CacheTTLSeconds)

	require.NoError(t, cmd.ParseFlags([]string{"--root", dir}))
	cfg, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.RootDir)
	assert.Equal(t, filepath.Join(dir, "openclaw.json"), cfg.RosterPath())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cmd := newUsageCmd()
	cmd.Flags().String("root", "", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yml")}))

	_, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestFilterMessages(t *testing.T) {
	msgs := []session.AgentMessage{
		{Agent: "a", File: "1"}, {Agent: "b", File: "2"}, {Agent: "a", File: "3"}, {Agent: "a", File: "4"},
	}

	assert.Len(t, filterMessages(msgs, "", 0), 4)

	got := filterMessages(msgs, "a", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].File)
	assert.Equal(t, "4", got[1].File)

	assert.Empty(t, filterMessages(msgs, "zzz", 0))
	assert.Len(t, filterMessages(msgs, "", 10), 4)
}

func TestCurrentVersion(t *testing.T) {
	info := currentVersion()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
