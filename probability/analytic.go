package probability

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bcdannyboy/mcpayoff/payoff"
)

// Analytic returns the closed-form price of p when the terminal price is
// lognormal with the given drift and volatility, as under GBM, and
// discounted at rate. ok is false for path-dependent payoffs.
func Analytic(p payoff.Payoff, spot, drift, rate, vol, t float64) (price float64, ok bool) {
	switch p.(type) {
	case *payoff.European, *payoff.DigitalCall, *payoff.DoubleDigital:
	default:
		return 0, false
	}

	forward := spot * math.Exp(drift*t)
	discount := math.Exp(-rate * t)
	sd := vol * math.Sqrt(t)
	if sd == 0 {
		v, err := p.Payoff([]float64{forward})
		return discount * v, err == nil
	}

	// above is the probability that the terminal price ends above k
	above := func(k float64) float64 {
		return distuv.UnitNormal.CDF(d2(spot, k, drift, vol, t))
	}

	switch v := p.(type) {
	case *payoff.European:
		k := v.Strike()
		n2 := d2(spot, k, drift, vol, t)
		n1 := n2 + sd
		if v.Side() == payoff.Call {
			return discount * (forward*distuv.UnitNormal.CDF(n1) - k*distuv.UnitNormal.CDF(n2)), true
		}
		return discount * (k*distuv.UnitNormal.CDF(-n2) - forward*distuv.UnitNormal.CDF(-n1)), true
	case *payoff.DigitalCall:
		prob := above(v.Strike())
		if v.Side() == payoff.Call {
			prob = 1 - prob
		}
		return discount * v.Coupon() * prob, true
	case *payoff.DoubleDigital:
		return discount * v.Coupon() * (above(v.Lower()) - above(v.Upper())), true
	}
	return 0, false
}

func d2(spot, k, drift, vol, t float64) float64 {
	return (math.Log(spot/k) + (drift-0.5*vol*vol)*t) / (vol * math.Sqrt(t))
}
