package payoff

import (
	"fmt"
	"strings"
)

// Kind names a payoff variant.
type Kind string

const (
	KindEuropean        Kind = "european"
	KindDigital         Kind = "digital"
	KindDoubleDigital   Kind = "double-digital"
	KindAsianArithmetic Kind = "asian-arithmetic"
	KindAsianGeometric  Kind = "asian-geometric"
)

// Kinds lists every supported variant.
var Kinds = []Kind{KindEuropean, KindDigital, KindDoubleDigital, KindAsianArithmetic, KindAsianGeometric}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", newArgumentError("kind", s, "unknown payoff kind")
}

// Contract is the configuration of one payoff. Lower and Upper are used by
// the double digital only, Coupon by the digital variants.
type Contract struct {
	Kind   Kind    `mapstructure:"kind" json:"kind"`
	Side   string  `mapstructure:"side" json:"side,omitempty"`
	Strike float64 `mapstructure:"strike" json:"strike,omitempty"`
	Lower  float64 `mapstructure:"lower" json:"lower,omitempty"`
	Upper  float64 `mapstructure:"upper" json:"upper,omitempty"`
	Coupon float64 `mapstructure:"coupon" json:"coupon,omitempty"`
}

// New builds the payoff described by c.
func New(c Contract) (Payoff, error) {
	kind, err := ParseKind(string(c.Kind))
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindEuropean:
		return NewEuropean(c.Strike, c.Side)
	case KindDigital:
		return NewDigitalCall(c.Strike, c.Side, c.Coupon)
	case KindDoubleDigital:
		return NewDoubleDigital(c.Upper, c.Lower, c.Coupon)
	case KindAsianArithmetic:
		return NewAsianArithmetic(c.Strike, c.Side)
	default:
		return NewAsianGeometric(c.Strike, c.Side)
	}
}

// Describe returns a short label such as "european call K=100".
func Describe(p Payoff) string {
	switch v := p.(type) {
	case *European:
		return fmt.Sprintf("%s %s K=%g", KindEuropean, v.side, v.strike)
	case *DigitalCall:
		return fmt.Sprintf("%s %s K=%g C=%g", KindDigital, v.side, v.strike, v.coupon)
	case *DoubleDigital:
		return fmt.Sprintf("%s [%g, %g] C=%g", KindDoubleDigital, v.lower, v.upper, v.coupon)
	case *Asian:
		return fmt.Sprintf("%s %s K=%g", v.kind, v.rule.side, v.rule.strike)
	default:
		return fmt.Sprintf("%T", p)
	}
}
