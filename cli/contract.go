package cli

import (
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/mcpayoff/payoff"
)

// contractFlags binds the flags that describe one contract.
type contractFlags struct {
	kind   string
	side   string
	strike float64
	lower  float64
	upper  float64
	coupon float64
}

func (f *contractFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", string(payoff.KindEuropean), "payoff kind: european, digital, double-digital, asian-arithmetic, asian-geometric")
	cmd.Flags().StringVar(&f.side, "side", "call", "option side: call or put")
	cmd.Flags().Float64Var(&f.strike, "strike", 0, "strike price")
	cmd.Flags().Float64Var(&f.lower, "lower", 0, "lower barrier (double-digital)")
	cmd.Flags().Float64Var(&f.upper, "upper", 0, "upper barrier (double-digital)")
	cmd.Flags().Float64Var(&f.coupon, "coupon", 0, "coupon paid by digital payoffs")
}

func (f *contractFlags) contract() payoff.Contract {
	return payoff.Contract{
		Kind:   payoff.Kind(f.kind),
		Side:   f.side,
		Strike: f.strike,
		Lower:  f.lower,
		Upper:  f.upper,
		Coupon: f.coupon,
	}
}

func (f *contractFlags) payoff() (payoff.Payoff, error) {
	return payoff.New(f.contract())
}
