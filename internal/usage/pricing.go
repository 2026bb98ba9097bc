package usage

// FallbackModel is the pricing entry used for models missing from the table.
const FallbackModel = "claude-haiku-4-5"

// Price is a per-million-token rate in USD.
type Price struct {
	Input  float64 `yaml:"input" toml:"input" json:"input"`
	Output float64 `yaml:"output" toml:"output" json:"output"`
}

// Pricing maps a model name to its rate.
type Pricing map[string]Price

// DefaultPricing returns the built-in rate table.
func DefaultPricing() Pricing {
	return Pricing{
		"claude-opus-4-6":   {Input: 15.0, Output: 45.0},
		"claude-sonnet-4-6": {Input: 3.0, Output: 15.0},
		FallbackModel:       {Input: 0.80, Output: 4.0},
	}
}

// Merge returns a copy of p with the entries of overrides applied on top.
func (p Pricing) Merge(overrides Pricing) Pricing {
	out := make(Pricing, len(p)+len(overrides))
	for model, price := range p {
		out[model] = price
	}
	for model, price := range overrides {
		out[model] = price
	}
	return out
}

// Lookup returns the rate for model, falling back to FallbackModel.
func (p Pricing) Lookup(model string) Price {
	if price, ok := p[model]; ok {
		return price
	}
	if price, ok := p[FallbackModel]; ok {
		return price
	}
	return DefaultPricing()[FallbackModel]
}

// Cost estimates the USD cost of a request. Cache and thinking tokens are not priced.
func (p Pricing) Cost(model string, inputTokens, outputTokens int64) float64 {
	price := p.Lookup(model)
	return float64(inputTokens)/1_000_000*price.Input +
		float64(outputTokens)/1_000_000*price.Output
}
