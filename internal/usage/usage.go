// Package usage aggregates token usage and estimated spend per agent.
package usage

import (
	"sort"

	"github.com/grovetools/agentstatus/internal/session"
)

// Tokens counts tokens by kind.
type Tokens struct {
	Input      int64 `json:"input"`
	Output     int64 `json:"output"`
	CacheRead  int64 `json:"cacheRead"`
	CacheWrite int64 `json:"cacheWrite"`
	Thinking   int64 `json:"thinking"`
}

func (t *Tokens) add(o Tokens) {
	t.Input += o.Input
	t.Output += o.Output
	t.CacheRead += o.CacheRead
	t.CacheWrite += o.CacheWrite
	t.Thinking += o.Thinking
}

// AgentUsage is one agent's row in the usage report.
type AgentUsage struct {
	Agent    string   `json:"agent"`
	Requests int      `json:"requests"`
	Tokens   Tokens   `json:"tokens"`
	CostUSD  float64  `json:"costUsd"`
	Models   []string `json:"models"`
}

// TokensFrom reads a usage object, accepting both the short keys written by
// the agent runtime and the provider's *_tokens keys.
func TokensFrom(u map[string]any) Tokens {
	return Tokens{
		Input:      intValue(u, "input", "input_tokens"),
		Output:     intValue(u, "output", "output_tokens"),
		CacheRead:  intValue(u, "cacheRead", "cache_read_input_tokens"),
		CacheWrite: intValue(u, "cacheWrite", "cache_creation_input_tokens"),
		Thinking:   intValue(u, "thinking"),
	}
}

func intValue(u map[string]any, keys ...string) int64 {
	for _, k := range keys {
		switch v := u[k].(type) {
		case float64:
			return int64(v)
		case int:
			return int64(v)
		case int64:
			return v
		}
	}
	return 0
}

// Summarize builds one row per agent from assistant message records that
// carry usage. Records without a model are priced as FallbackModel.
func Summarize(messages []session.AgentMessage, pricing Pricing) []AgentUsage {
	if pricing == nil {
		pricing = DefaultPricing()
	}

	rows := make(map[string]*AgentUsage)
	seen := make(map[string]map[string]bool)
	for _, msg := range messages {
		if msg.Role != "assistant" || msg.Usage == nil {
			continue
		}

		row, ok := rows[msg.Agent]
		if !ok {
			row = &AgentUsage{Agent: msg.Agent, Models: []string{}}
			rows[msg.Agent] = row
			seen[msg.Agent] = make(map[string]bool)
		}

		model := msg.Model
		if model == "" {
			model = FallbackModel
		}
		if !seen[msg.Agent][model] {
			seen[msg.Agent][model] = true
			row.Models = append(row.Models, model)
		}

		tokens := TokensFrom(msg.Usage)
		row.Requests++
		row.Tokens.add(tokens)
		row.CostUSD += pricing.Cost(model, tokens.Input, tokens.Output)
	}

	out := make([]AgentUsage, 0, len(rows))
	for _, row := range rows {
		sort.Strings(row.Models)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Agent < out[j].Agent })
	return out
}

// Total sums a report into a single row with an empty agent id.
func Total(rows []AgentUsage) AgentUsage {
	total := AgentUsage{Models: []string{}}
	for _, row := range rows {
		total.Requests += row.Requests
		total.Tokens.add(row.Tokens)
		total.CostUSD += row.CostUSD
	}
	return total
}
