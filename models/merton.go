package models

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

type MertonJumpDiffusion struct {
	R      float64 // Drift
	Sigma  float64 // Volatility
	Lambda float64 // Jump intensity
	Mu     float64 // Mean jump size
	Delta  float64 // Jump size volatility
}

func NewMertonJumpDiffusion(r, sigma, lambda, mu, delta float64) *MertonJumpDiffusion {
	return &MertonJumpDiffusion{
		R:      r,
		Sigma:  sigma,
		Lambda: lambda,
		Mu:     mu,
		Delta:  delta,
	}
}

// NewMertonFromCloses estimates the jump intensity and jump sizes from a
// daily close history. timeStep is the spacing of the history in years.
func NewMertonFromCloses(r, sigma float64, historicalPrices []float64, timeStep float64) *MertonJumpDiffusion {
	m := &MertonJumpDiffusion{R: r, Sigma: sigma}
	if len(historicalPrices) < 3 {
		return m
	}
	jumps := identifyJumps(calculateReturns(historicalPrices))
	m.Lambda = float64(len(jumps)) / (float64(len(historicalPrices)-1) * timeStep)
	m.CalibrateJumpSizes(jumps, 1)
	return m
}

func (m *MertonJumpDiffusion) SimulatePath(s0, t float64, steps int, rng *rand.Rand) []float64 {
	dt := t / float64(steps)
	path := make([]float64, steps+1)
	path[0] = s0

	for i := 1; i <= steps; i++ {
		z := rng.NormFloat64()
		diffusion := math.Exp((m.R-0.5*m.Sigma*m.Sigma)*dt + m.Sigma*math.Sqrt(dt)*z)

		if rng.Float64() < m.Lambda*dt {
			y := rng.NormFloat64()
			jump := math.Exp(m.Mu + m.Delta*y)
			path[i] = path[i-1] * diffusion * jump
		} else {
			path[i] = path[i-1] * diffusion
		}
	}

	return path
}

// CalibrateJumpSizes sets Mu and Delta from observed log jumps.
func (m *MertonJumpDiffusion) CalibrateJumpSizes(historicalJumps []float64, scaleFactor float64) {
	if len(historicalJumps) == 0 {
		return
	}
	scaled := make([]float64, len(historicalJumps))
	for i, jump := range historicalJumps {
		scaled[i] = jump * scaleFactor
	}
	m.Mu, m.Delta = stat.PopMeanStdDev(scaled, nil)
}
