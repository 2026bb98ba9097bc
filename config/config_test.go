package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	return writeNamed(t, "agstatus.yml", content)
}

func writeNamed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyDefaults(t *testing.T) {
	t.Setenv(RootDirEnv, "/srv/openclaw")

	var cfg Config
	cfg.ApplyDefaults()
	assert.Equal(t, "/srv/openclaw", cfg.RootDir)
	assert.Equal(t, "/srv/openclaw/openclaw.json", cfg.RosterPath())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
	assert.Equal(t, 5*time.Minute, cfg.ActiveThreshold())
	assert.Equal(t, time.Hour, cfg.IdleThreshold())
}

func TestDefaultRootDir_Home(t *testing.T) {
	t.Setenv(RootDirEnv, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".openclaw"), DefaultRootDir())
}

func TestLoad_StandaloneFile(t *testing.T) {
	path := writeFile(t, `
root_dir: /data/claw
roster_file: /etc/roster.json
cache_ttl_seconds: 5
active_minutes: 2.5
pricing:
  local-llm:
    input: 0
    output: 0
  claude-opus-4-6:
    input: 10
    output: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/claw", cfg.RootDir)
	assert.Equal(t, "/etc/roster.json", cfg.RosterPath())
	assert.Equal(t, 5*time.Second, cfg.CacheTTL())
	assert.Equal(t, 150*time.Second, cfg.ActiveThreshold())
	assert.Equal(t, time.Hour, cfg.IdleThreshold())

	pricing := cfg.PricingTable()
	assert.Equal(t, 10.0, pricing["claude-opus-4-6"].Input)
	assert.Contains(t, pricing, "local-llm")
	assert.Contains(t, pricing, "claude-haiku-4-5")
}

func TestLoad_GroveStyleFile(t *testing.T) {
	path := writeFile(t, `
name: my-project
agstatus:
  root_dir: /opt/claw
  idle_minutes: 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/claw", cfg.RootDir)
	assert.Equal(t, 2*time.Hour, cfg.IdleThreshold())
}

func TestLoad_TomlFile(t *testing.T) {
	path := writeNamed(t, "agstatus.toml", `
root_dir = "/var/claw"
cache_ttl_seconds = 10

[pricing.claude-opus-4-6]
input = 12.0
output = 36.0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/claw", cfg.RootDir)
	assert.Equal(t, 10*time.Second, cfg.CacheTTL())
	assert.Equal(t, 36.0, cfg.PricingTable()["claude-opus-4-6"].Output)

	wrapped := writeNamed(t, "grove.toml", `
[agstatus]
idle_minutes = 30
`)
	cfg, err = Load(wrapped)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.IdleThreshold())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeFile(t, "root_dir: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

type stubExtensions struct {
	decode func(target interface{}) error
}

func (s stubExtensions) UnmarshalExtension(name string, target interface{}) error {
	if name != ExtensionName {
		return errors.New("unexpected extension " + name)
	}
	return s.decode(target)
}

func TestFromExtension(t *testing.T) {
	cfg := fromExtension(stubExtensions{decode: func(target interface{}) error {
		target.(*Config).RootDir = "/from/grove"
		return nil
	}})
	assert.Equal(t, "/from/grove", cfg.RootDir)

	cfg = fromExtension(stubExtensions{decode: func(target interface{}) error {
		target.(*Config).RootDir = "/half/decoded"
		return errors.New("cache_ttl_seconds: cannot unmarshal string")
	}})
	assert.Equal(t, Config{}, cfg, "a failed decode must not leak partial values")
}
