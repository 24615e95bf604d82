package models

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// PathGenerator simulates one realization of the underlying price.
// Paths have steps+1 observations and path[0] is s0.
type PathGenerator interface {
	SimulatePath(s0, t float64, steps int, rng *rand.Rand) []float64
}

// GBM is geometric Brownian motion with constant drift and volatility.
type GBM struct {
	Mu    float64 // Drift
	Sigma float64 // Volatility
}

func NewGBM(mu, sigma float64) *GBM {
	return &GBM{Mu: mu, Sigma: sigma}
}

// SimulatePath steps S(t+dt) = S(t) * exp((mu - sigma^2/2) dt + sigma sqrt(dt) Z).
func (g *GBM) SimulatePath(s0, t float64, steps int, rng *rand.Rand) []float64 {
	return GeneratePath(s0, g.Mu, g.Sigma, t, steps, rng)
}

// GeneratePath simulates a geometric Brownian motion path over t years.
func GeneratePath(s0, mu, sigma, t float64, steps int, rng *rand.Rand) []float64 {
	dt := t / float64(steps)
	drift := (mu - 0.5*sigma*sigma) * dt
	vol := sigma * math.Sqrt(dt)
	z := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	path := make([]float64, steps+1)
	path[0] = s0
	for i := 1; i <= steps; i++ {
		path[i] = path[i-1] * math.Exp(drift+vol*z.Rand())
	}
	return path
}
