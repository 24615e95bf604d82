package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcdannyboy/mcpayoff/payoff"
)

func newEvalCmd() *cobra.Command {
	var flags contractFlags
	var path []float64

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a payoff on an explicit price path",
		Example: `  mcpayoff eval --kind european --side call --strike 100 --path 100,105,98,110
  mcpayoff eval --kind double-digital --lower 95 --upper 105 --coupon 1 --path 100,101`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.payoff()
			if err != nil {
				return err
			}
			v, err := p.Payoff(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %g\n", payoff.Describe(p), v)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64SliceVar(&path, "path", nil, "comma separated price path")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
