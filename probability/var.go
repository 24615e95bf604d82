package probability

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CalculateVaR returns the loss that is not exceeded with the given
// confidence, from a sample of profits and losses.
func CalculateVaR(pnl []float64, confidenceLevel float64) float64 {
	if len(pnl) == 0 {
		return 0
	}
	losses := sortedLosses(pnl)
	return stat.Quantile(confidenceLevel, stat.Empirical, losses, nil)
}

// CalculateExpectedShortfall is the average loss at or beyond the VaR.
func CalculateExpectedShortfall(pnl []float64, confidenceLevel float64) float64 {
	if len(pnl) == 0 {
		return 0
	}
	losses := sortedLosses(pnl)
	threshold := stat.Quantile(confidenceLevel, stat.Empirical, losses, nil)
	idx := sort.SearchFloat64s(losses, threshold)
	return stat.Mean(losses[idx:], nil)
}

func sortedLosses(pnl []float64) []float64 {
	losses := make([]float64, len(pnl))
	for i, v := range pnl {
		losses[i] = -v
	}
	sort.Float64s(losses)
	return losses
}

// summarize discounts the per-path payoffs and computes the price and
// the tail statistics of the holder's P&L against that price.
func summarize(payoffs []float64, discount float64) *Result {
	mean, std := stat.MeanStdDev(payoffs, nil)
	n := float64(len(payoffs))
	if len(payoffs) < 2 {
		std = 0
	}

	price := discount * mean
	pnl := make([]float64, len(payoffs))
	for i, v := range payoffs {
		pnl[i] = discount*v - price
	}

	return &Result{
		Price:  price,
		Mean:   mean,
		StdErr: discount * std / math.Sqrt(n),
		Paths:  len(payoffs),
		VaR95:  CalculateVaR(pnl, 0.95),
		VaR99:  CalculateVaR(pnl, 0.99),
		ES95:   CalculateExpectedShortfall(pnl, 0.95),
	}
}
