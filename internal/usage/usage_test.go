package usage

import (
	"testing"

	"github.com/grovetools/agentstatus/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensFrom(t *testing.T) {
	assert.Equal(t, Tokens{Input: 10, Output: 20, CacheRead: 3, CacheWrite: 4, Thinking: 5},
		TokensFrom(map[string]any{
			"input": float64(10), "output": float64(20),
			"cacheRead": float64(3), "cacheWrite": float64(4), "thinking": float64(5),
		}))

	assert.Equal(t, Tokens{Input: 7, Output: 8, CacheRead: 1, CacheWrite: 2},
		TokensFrom(map[string]any{
			"input_tokens": float64(7), "output_tokens": 8,
			"cache_read_input_tokens": int64(1), "cache_creation_input_tokens": float64(2),
		}))

	assert.Equal(t, Tokens{}, TokensFrom(map[string]any{"input": "lots"}))
	assert.Equal(t, Tokens{}, TokensFrom(nil))
}

func TestPricing_Cost(t *testing.T) {
	p := DefaultPricing()
	assert.InDelta(t, 15.0+45.0, p.Cost("claude-opus-4-6", 1_000_000, 1_000_000), 1e-9)
	assert.InDelta(t, 0.8, p.Cost("mystery-model", 1_000_000, 0), 1e-9)

	custom := p.Merge(Pricing{"local": {Input: 0, Output: 0}})
	assert.Zero(t, custom.Cost("local", 5_000_000, 5_000_000))
	_, ok := p["local"]
	assert.False(t, ok, "merge must not modify the receiver")

	assert.InDelta(t, 4.0, Pricing{}.Cost("x", 0, 1_000_000), 1e-9)
}

func TestSummarize(t *testing.T) {
	msgs := []session.AgentMessage{
		{Agent: "zeta", Role: "assistant", Model: "claude-sonnet-4-6",
			Usage: map[string]any{"input": float64(1_000_000), "output": float64(0)}},
		{Agent: "alpha", Role: "assistant", Model: "claude-opus-4-6",
			Usage: map[string]any{"input": float64(100), "output": float64(200), "thinking": float64(5)}},
		{Agent: "alpha", Role: "assistant",
			Usage: map[string]any{"input_tokens": float64(1_000_000)}},
		{Agent: "alpha", Role: "user", Usage: map[string]any{"input": float64(999)}},
		{Agent: "alpha", Role: "assistant"},
		{Agent: "beta", Role: "user"},
	}

	rows := Summarize(msgs, nil)
	require.Len(t, rows, 2)

	alpha := rows[0]
	assert.Equal(t, "alpha", alpha.Agent)
	assert.Equal(t, 2, alpha.Requests)
	assert.Equal(t, Tokens{Input: 1_000_100, Output: 200, Thinking: 5}, alpha.Tokens)
	assert.Equal(t, []string{"claude-haiku-4-5", "claude-opus-4-6"}, alpha.Models)
	assert.InDelta(t, 100*15.0/1e6+200*45.0/1e6+0.8, alpha.CostUSD, 1e-9)

	assert.Equal(t, "zeta", rows[1].Agent)
	assert.InDelta(t, 3.0, rows[1].CostUSD, 1e-9)

	total := Total(rows)
	assert.Equal(t, 3, total.Requests)
	assert.InDelta(t, alpha.CostUSD+3.0, total.CostUSD, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	rows := Summarize(nil, DefaultPricing())
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
