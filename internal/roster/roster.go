// Package roster reads the configured list of agents and their models.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/grovetools/core/logging"
)

var logger = logging.NewLogger("agstatus.roster")

// AgentConfig is one configured agent. An empty Model means none is configured.
type AgentConfig struct {
	ID    string `json:"id"`
	Model string `json:"model,omitempty"`
}

type document struct {
	Agents struct {
		List     []agentEntry `json:"list"`
		Defaults struct {
			Model any `json:"model"`
		} `json:"defaults"`
	} `json:"agents"`
}

type agentEntry struct {
	ID    any `json:"id"`
	Model any `json:"model"`
}

// Load reads the roster at path. Any read or parse failure is logged and
// yields an empty roster.
func Load(path string) []AgentConfig {
	agents, err := Read(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("Failed to read agent roster")
		return []AgentConfig{}
	}
	return agents
}

// Read reads the roster at path.
func Read(path string) ([]AgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes a roster document of the form
// {"agents": {"list": [{"id", "model"}], "defaults": {"model": {"primary"}}}}.
func Parse(data []byte) ([]AgentConfig, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	defaultModel := primaryModel(doc.Agents.Defaults.Model)

	agents := make([]AgentConfig, 0, len(doc.Agents.List))
	for _, entry := range doc.Agents.List {
		id, _ := entry.ID.(string)
		agents = append(agents, AgentConfig{
			ID:    id,
			Model: StripProvider(resolveModel(entry.Model, defaultModel)),
		})
	}
	return agents, nil
}

// resolveModel picks the per-agent string model, then the per-agent
// {"primary": ...} model, then the global default. An object without a
// usable primary inherits the global default rather than yielding no model.
func resolveModel(v any, defaultModel string) string {
	switch m := v.(type) {
	case string:
		return m
	case map[string]any:
		if primary, ok := m["primary"].(string); ok && primary != "" {
			return primary
		}
	}
	return defaultModel
}

func primaryModel(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case map[string]any:
		primary, _ := m["primary"].(string)
		return primary
	}
	return ""
}

// StripProvider removes a leading "provider/" segment from a model name.
func StripProvider(model string) string {
	if _, name, ok := strings.Cut(model, "/"); ok {
		return name
	}
	return model
}
