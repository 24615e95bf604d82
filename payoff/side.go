package payoff

import (
	"math"
	"strings"
)

// OptionSide is the direction of a contract, call or put.
type OptionSide string

const (
	Call OptionSide = "call"
	Put  OptionSide = "put"
)

func (s OptionSide) String() string {
	return string(s)
}

// ValidateOptionType checks that label names a side this package understands.
func ValidateOptionType(label string) (OptionSide, error) {
	switch side := OptionSide(strings.TrimSpace(label)); side {
	case Call, Put:
		return side, nil
	default:
		return "", newArgumentError("side", label, "option type must be call or put")
	}
}

func validateStrike(field string, strike float64) error {
	if math.IsNaN(strike) || math.IsInf(strike, 0) {
		return newArgumentError(field, strike, "must be a finite number")
	}
	if strike < 0 {
		return newArgumentError(field, strike, "must not be negative")
	}
	return nil
}

func validateCoupon(coupon float64) error {
	if math.IsNaN(coupon) || math.IsInf(coupon, 0) {
		return newArgumentError("coupon", coupon, "must be a finite number")
	}
	return nil
}

// terminal returns the last observation of the path.
func terminal(path []float64) (float64, error) {
	if len(path) == 0 {
		return 0, newArgumentError("path", "[]", "path must contain at least one observation")
	}
	return path[len(path)-1], nil
}
