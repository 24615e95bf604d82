package models

import (
	"math"

	"golang.org/x/exp/rand"
)

type HestonModel struct {
	R     float64 // Drift
	V0    float64 // Initial variance
	Kappa float64 // Mean reversion speed of variance
	Theta float64 // Long-term variance
	Xi    float64 // Volatility of variance
	Rho   float64 // Correlation between asset returns and variance
}

func NewHestonModel(r, v0, kappa, theta, xi, rho float64) *HestonModel {
	return &HestonModel{
		R:     r,
		V0:    v0,
		Kappa: kappa,
		Theta: theta,
		Xi:    xi,
		Rho:   rho,
	}
}

func (h *HestonModel) SimulatePath(s0, t float64, steps int, rng *rand.Rand) []float64 {
	dt := t / float64(steps)
	sqrtDt := math.Sqrt(dt)

	path := make([]float64, steps+1)
	path[0] = s0
	v := h.V0

	for i := 1; i <= steps; i++ {
		z1 := rng.NormFloat64()
		z2 := rng.NormFloat64()
		z2 = h.Rho*z1 + math.Sqrt(1-h.Rho*h.Rho)*z2

		path[i] = path[i-1] * math.Exp((h.R-0.5*v)*dt+math.Sqrt(v)*sqrtDt*z1)
		v += h.Kappa*(h.Theta-v)*dt + h.Xi*math.Sqrt(v)*sqrtDt*z2
		v = math.Max(0, v) // full truncation
	}

	return path
}
