package config

//go:generate go run ../tools/schema-generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/grovetools/agentstatus/internal/usage"
	core_config "github.com/grovetools/core/config"
	"github.com/grovetools/core/logging"
	"gopkg.in/yaml.v3"
)

var logger = logging.NewLogger("agstatus.config")

const (
	// ExtensionName is the grove.yml key holding agstatus settings.
	ExtensionName = "agstatus"
	// RootDirEnv overrides the default root directory.
	RootDirEnv = "OPENCLAW_DIR"

	DefaultRosterFile      = "openclaw.json"
	DefaultCacheTTLSeconds = 30
	DefaultActiveMinutes   = 5
	DefaultIdleMinutes     = 60
)

// Config is the top-level configuration structure for agstatus.
type Config struct {
	// RootDir holds the roster and the agents/<id>/sessions tree.
	// Defaults to $OPENCLAW_DIR, then ~/.openclaw.
	RootDir string `yaml:"root_dir,omitempty" toml:"root_dir,omitempty"`

	// RosterFile is the roster document, relative to RootDir unless absolute.
	RosterFile string `yaml:"roster_file,omitempty" toml:"roster_file,omitempty"`

	// CacheTTLSeconds is how long a computed status list is served before
	// the session logs are read again.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds,omitempty" toml:"cache_ttl_seconds,omitempty"`

	// ActiveMinutes and IdleMinutes bound the active and idle states.
	// Activity older than IdleMinutes is offline.
	ActiveMinutes float64 `yaml:"active_minutes,omitempty" toml:"active_minutes,omitempty"`
	IdleMinutes   float64 `yaml:"idle_minutes,omitempty" toml:"idle_minutes,omitempty"`

	// Pricing adds or replaces per-million-token rates used by the usage report.
	Pricing usage.Pricing `yaml:"pricing,omitempty" toml:"pricing,omitempty"`
}

// Load reads configuration from the standalone yaml file at path, or from the
// agstatus extension of the grove config when path is empty. A missing or
// unreadable grove config is not an error; defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	} else if coreCfg, err := core_config.LoadDefault(); err == nil {
		cfg = fromExtension(coreCfg)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// extensionSource is the part of the grove config used to read extensions.
type extensionSource interface {
	UnmarshalExtension(name string, target interface{}) error
}

// fromExtension decodes the agstatus extension. A decode failure is logged
// and yields an empty Config so defaults apply.
func fromExtension(src extensionSource) Config {
	var cfg Config
	if err := src.UnmarshalExtension(ExtensionName, &cfg); err != nil {
		logger.WithError(err).WithField("extension", ExtensionName).Debug("Ignoring unreadable config extension")
		return Config{}
	}
	return cfg
}

// LoadFile parses a standalone yaml file, or toml when the name ends in
// .toml. The document is either the extension body itself or a grove-style
// file with an agstatus key.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	unmarshal := yaml.Unmarshal
	if filepath.Ext(path) == ".toml" {
		unmarshal = toml.Unmarshal
	}

	var wrapped struct {
		Extension *Config `yaml:"agstatus" toml:"agstatus"`
	}
	if err := unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if wrapped.Extension != nil {
		return wrapped.Extension, nil
	}

	var cfg Config
	if err := unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.RootDir == "" {
		c.RootDir = DefaultRootDir()
	}
	if c.RosterFile == "" {
		c.RosterFile = DefaultRosterFile
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	if c.ActiveMinutes <= 0 {
		c.ActiveMinutes = DefaultActiveMinutes
	}
	if c.IdleMinutes <= 0 {
		c.IdleMinutes = DefaultIdleMinutes
	}
}

// DefaultRootDir returns $OPENCLAW_DIR if set, otherwise ~/.openclaw.
func DefaultRootDir() string {
	if dir := os.Getenv(RootDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".openclaw"
	}
	return filepath.Join(home, ".openclaw")
}

// RosterPath resolves RosterFile against RootDir.
func (c Config) RosterPath() string {
	if filepath.IsAbs(c.RosterFile) {
		return c.RosterFile
	}
	return filepath.Join(c.RootDir, c.RosterFile)
}

// CacheTTL returns the cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ActiveThreshold returns the age below which an agent is active.
func (c Config) ActiveThreshold() time.Duration {
	return time.Duration(c.ActiveMinutes * float64(time.Minute))
}

// IdleThreshold returns the age below which an agent is idle.
func (c Config) IdleThreshold() time.Duration {
	return time.Duration(c.IdleMinutes * float64(time.Minute))
}

// PricingTable returns the built-in rates with configured overrides applied.
func (c Config) PricingTable() usage.Pricing {
	return usage.DefaultPricing().Merge(c.Pricing)
}
