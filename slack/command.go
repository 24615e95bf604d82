package payoffslack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bcdannyboy/mcpayoff/payoff"
)

const usage = "Usage:\n" +
	"/payoff european|asian-arithmetic|asian-geometric <side> <strike> <spot> <vol> <maturity>\n" +
	"/payoff digital <side> <strike> <coupon> <spot> <vol> <maturity>\n" +
	"/payoff double-digital <lower> <upper> <coupon> <spot> <vol> <maturity>"

// Request is a parsed /payoff command.
type Request struct {
	Contract   payoff.Contract
	Spot       float64
	Volatility float64
	Maturity   float64 // years
}

// ParseCommand parses the text of a /payoff slash command.
func ParseCommand(text string) (Request, error) {
	args := strings.Fields(text)
	if len(args) == 0 {
		return Request{}, fmt.Errorf("missing payoff kind")
	}
	kind, err := payoff.ParseKind(args[0])
	if err != nil {
		return Request{}, err
	}

	want := 6
	if kind == payoff.KindDigital || kind == payoff.KindDoubleDigital {
		want = 7
	}
	if len(args) != want {
		return Request{}, fmt.Errorf("%s takes %d arguments, got %d", kind, want-1, len(args)-1)
	}

	nums, err := parseFloats(args[2:])
	if err != nil {
		return Request{}, err
	}

	req := Request{Contract: payoff.Contract{Kind: kind}}
	switch kind {
	case payoff.KindDigital:
		req.Contract.Side = args[1]
		req.Contract.Strike, req.Contract.Coupon = nums[0], nums[1]
		nums = nums[2:]
	case payoff.KindDoubleDigital:
		lower, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Request{}, fmt.Errorf("bad number %q", args[1])
		}
		req.Contract.Lower, req.Contract.Upper, req.Contract.Coupon = lower, nums[0], nums[1]
		nums = nums[2:]
	default:
		req.Contract.Side = args[1]
		req.Contract.Strike = nums[0]
		nums = nums[1:]
	}
	req.Spot, req.Volatility, req.Maturity = nums[0], nums[1], nums[2]
	return req, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = v
	}
	return out, nil
}
