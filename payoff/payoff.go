// Package payoff computes the terminal cash payoff of an option contract
// for one simulated price path.
//
// Every variant is immutable after construction and may be shared by any
// number of goroutines evaluating different paths.
package payoff

import "math"

// Payoff evaluates the amount a contract pays at expiry for one path.
// Index 0 of the path is the initial price and the last index the
// terminal price. Implementations never modify or retain the path.
type Payoff interface {
	Payoff(path []float64) (float64, error)
}

// Directional is a payoff defined by a single strike and a side.
type Directional interface {
	Payoff
	Side() OptionSide
	Strike() float64
}

// European pays max(S-K, 0) for a call and max(K-S, 0) for a put,
// where S is the terminal price.
type European struct {
	strike float64
	side   OptionSide
}

func NewEuropean(strike float64, side string) (*European, error) {
	s, err := ValidateOptionType(side)
	if err != nil {
		return nil, err
	}
	if err := validateStrike("strike", strike); err != nil {
		return nil, err
	}
	return &European{strike: strike, side: s}, nil
}

func (e *European) Side() OptionSide { return e.side }
func (e *European) Strike() float64  { return e.strike }

func (e *European) Payoff(path []float64) (float64, error) {
	sT, err := terminal(path)
	if err != nil {
		return 0, err
	}
	return e.at(sT), nil
}

// at applies the European rule to a single price.
func (e *European) at(price float64) float64 {
	if e.side == Call {
		return math.Max(price-e.strike, 0)
	}
	return math.Max(e.strike-price, 0)
}

// DigitalCall pays a fixed coupon when the terminal price is at or below
// the strike for the call side, or at or above it for the put side.
type DigitalCall struct {
	strike float64
	side   OptionSide
	coupon float64
}

func NewDigitalCall(strike float64, side string, coupon float64) (*DigitalCall, error) {
	s, err := ValidateOptionType(side)
	if err != nil {
		return nil, err
	}
	if err := validateStrike("strike", strike); err != nil {
		return nil, err
	}
	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}
	return &DigitalCall{strike: strike, side: s, coupon: coupon}, nil
}

func (d *DigitalCall) Side() OptionSide { return d.side }
func (d *DigitalCall) Strike() float64  { return d.strike }
func (d *DigitalCall) Coupon() float64  { return d.coupon }

func (d *DigitalCall) Payoff(path []float64) (float64, error) {
	sT, err := terminal(path)
	if err != nil {
		return 0, err
	}
	switch d.side {
	case Call:
		if sT <= d.strike {
			return d.coupon, nil
		}
	case Put:
		if sT >= d.strike {
			return d.coupon, nil
		}
	}
	return 0, nil
}

// DoubleDigital pays a fixed coupon when the terminal price lies inside
// the closed corridor [lower, upper]. It has no side.
type DoubleDigital struct {
	upper  float64
	lower  float64
	coupon float64
}

func NewDoubleDigital(upper, lower, coupon float64) (*DoubleDigital, error) {
	if err := validateStrike("upper", upper); err != nil {
		return nil, err
	}
	if err := validateStrike("lower", lower); err != nil {
		return nil, err
	}
	if lower >= upper {
		return nil, newArgumentError("lower", lower, "lower strike must be below upper strike")
	}
	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}
	return &DoubleDigital{upper: upper, lower: lower, coupon: coupon}, nil
}

func (d *DoubleDigital) Upper() float64  { return d.upper }
func (d *DoubleDigital) Lower() float64  { return d.lower }
func (d *DoubleDigital) Coupon() float64 { return d.coupon }

func (d *DoubleDigital) Payoff(path []float64) (float64, error) {
	sT, err := terminal(path)
	if err != nil {
		return 0, err
	}
	if sT >= d.lower && sT <= d.upper {
		return d.coupon, nil
	}
	return 0, nil
}
