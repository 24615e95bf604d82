package models

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// KouJumpDiffusion represents the Kou double-exponential jump diffusion model
type KouJumpDiffusion struct {
	R      float64 // Drift
	Sigma  float64 // Volatility
	Lambda float64 // Jump intensity
	P      float64 // Probability of upward jump
	Eta1   float64 // Rate of upward jump
	Eta2   float64 // Rate of downward jump
}

// NewKouJumpDiffusion estimates the jump parameters from a daily close history.
// timeStep is the spacing of the history in years.
func NewKouJumpDiffusion(r, sigma float64, historicalPrices []float64, timeStep float64) *KouJumpDiffusion {
	k := &KouJumpDiffusion{R: r, Sigma: sigma}
	if len(historicalPrices) < 3 {
		return k
	}

	jumps := identifyJumps(calculateReturns(historicalPrices))
	if len(jumps) == 0 {
		return k
	}

	var upJumps, downJumps []float64
	for _, jump := range jumps {
		if jump > 0 {
			upJumps = append(upJumps, jump)
		} else {
			downJumps = append(downJumps, -jump)
		}
	}

	k.Lambda = float64(len(jumps)) / (float64(len(historicalPrices)-1) * timeStep)
	k.P = float64(len(upJumps)) / float64(len(jumps))
	if len(upJumps) > 0 {
		k.Eta1 = 1.0 / stat.Mean(upJumps, nil)
	}
	if len(downJumps) > 0 {
		k.Eta2 = 1.0 / stat.Mean(downJumps, nil)
	}
	return k
}

// calculateReturns computes log returns from prices
func calculateReturns(prices []float64) []float64 {
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return returns
}

// identifyJumps keeps returns more than 3 standard deviations from the mean
func identifyJumps(returns []float64) []float64 {
	mean, std := stat.PopMeanStdDev(returns, nil)
	threshold := 3 * std

	var jumps []float64
	for _, r := range returns {
		if math.Abs(r-mean) > threshold {
			jumps = append(jumps, r)
		}
	}
	return jumps
}

func (k *KouJumpDiffusion) SimulatePath(s0, t float64, steps int, rng *rand.Rand) []float64 {
	dt := t / float64(steps)
	path := make([]float64, steps+1)
	path[0] = s0

	for i := 1; i <= steps; i++ {
		z := rng.NormFloat64()
		diffusion := math.Exp((k.R-0.5*k.Sigma*k.Sigma)*dt + k.Sigma*math.Sqrt(dt)*z)

		if k.Eta1 > 0 && k.Eta2 > 0 && rng.Float64() < k.Lambda*dt {
			var jump float64
			if rng.Float64() < k.P {
				jump = math.Exp(rng.ExpFloat64() / k.Eta1)
			} else {
				jump = math.Exp(-rng.ExpFloat64() / k.Eta2)
			}
			path[i] = path[i-1] * diffusion * jump
		} else {
			path[i] = path[i-1] * diffusion
		}
	}

	return path
}
