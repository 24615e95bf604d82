package positions

import (
	"github.com/bcdannyboy/mcpayoff/payoff"
	"github.com/bcdannyboy/mcpayoff/probability"
)

// Position is a quantity of one option contract.
type Position struct {
	Name     string          `mapstructure:"name" json:"name"`
	Quantity float64         `mapstructure:"quantity" json:"quantity"`
	Contract payoff.Contract `mapstructure:"contract" json:"contract"`
}

type PositionResult struct {
	Position Position            `json:"position"`
	Result   *probability.Result `json:"-"`
	Quote    *probability.Quote  `json:"quote,omitempty"`
	Value    float64             `json:"value"`
	Err      error               `json:"-"`
	Error    string              `json:"error,omitempty"`
}

// Total sums the value of every position that priced successfully.
func Total(results []PositionResult) float64 {
	total := 0.0
	for _, r := range results {
		if r.Err == nil {
			total += r.Value
		}
	}
	return total
}
