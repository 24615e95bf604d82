package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/mcpayoff/logging"
	"github.com/bcdannyboy/mcpayoff/models"
	"github.com/bcdannyboy/mcpayoff/payoff"
	"github.com/bcdannyboy/mcpayoff/probability"
	"github.com/bcdannyboy/mcpayoff/tradier"
)

func newPriceCmd(app *App) *cobra.Command {
	var (
		flags    contractFlags
		symbol   string
		volEst   string
		asJSON   bool
		model    string
		spot     float64
		vol      float64
		maturity float64
		paths    int
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Monte-Carlo price one contract",
		Example: `  mcpayoff price --kind asian-arithmetic --side call --strike 100 --spot 100 --vol 0.2
  mcpayoff price --kind digital --side put --strike 400 --coupon 10 --symbol SPY --model kou`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.payoff()
			if err != nil {
				return err
			}

			logger := logging.WithContract(logging.FromContext(cmd.Context()), payoff.Describe(p))

			sim := app.Config.Simulation
			var closes []float64
			if symbol != "" {
				estimator, err := tradier.ParseEstimator(volEst)
				if err != nil {
					return err
				}
				client := tradier.NewClient(app.Config.Tradier.Token)
				if app.Config.Tradier.BaseURL != "" {
					client.BaseURL = app.Config.Tradier.BaseURL
				}
				sim.Spot, sim.Params.Volatility, closes, err = marketData(cmd.Context(), client, symbol, estimator, logger)
				if err != nil {
					return err
				}
			}

			// explicit flags win over config and market data
			f := cmd.Flags()
			if f.Changed("model") {
				sim.Model = model
			}
			if f.Changed("spot") {
				sim.Spot = spot
			}
			if f.Changed("vol") {
				sim.Params.Volatility = vol
			}
			if f.Changed("maturity") {
				sim.Maturity = maturity
			}
			if f.Changed("paths") {
				sim.Paths = paths
			}
			if f.Changed("seed") {
				sim.Seed = seed
			}

			engine, err := newEngine(sim, logger)
			if err != nil {
				return err
			}
			if closes != nil {
				if gen := fromCloses(sim.Model, sim.Params.Drift, sim.Params.Volatility, closes, logger); gen != nil {
					engine.Generator = gen
				}
			}

			result, err := engine.Price(cmd.Context(), p)
			if err != nil {
				return err
			}
			quote := result.Quote(app.Config.Simulation.Places)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.Marshal(quote)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", payoff.Describe(p), quote.String())
			fmt.Fprintf(out, "VaR95 %s  VaR99 %s  ES95 %s\n", quote.VaR95, quote.VaR99, quote.ES95)
			fmt.Fprintf(out, "%d paths, %d skipped, seed %d, %s\n", quote.Paths, quote.Skipped, quote.Seed, result.Elapsed)
			if strings.EqualFold(sim.Model, "gbm") || sim.Model == "" {
				if ref, ok := probability.Analytic(p, engine.Spot, sim.Params.Drift, sim.Rate, sim.Params.Volatility, sim.Maturity); ok {
					fmt.Fprintf(out, "closed form %.*f\n", int(app.Config.Simulation.Places), ref)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&symbol, "symbol", "", "take spot and volatility from Tradier daily closes")
	cmd.Flags().StringVar(&volEst, "vol-estimator", string(tradier.EstimatorClose), "estimator for --symbol: close, parkinson, garman-klass, rogers-satchell, yang-zhang")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the quote as JSON")
	cmd.Flags().StringVar(&model, "model", "", "path model: "+strings.Join(models.Models, ", "))
	cmd.Flags().Float64Var(&spot, "spot", 0, "initial price")
	cmd.Flags().Float64Var(&vol, "vol", 0, "annualized volatility")
	cmd.Flags().Float64Var(&maturity, "maturity", 0, "maturity in years")
	cmd.Flags().IntVar(&paths, "paths", 0, "number of simulated paths")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 for clock")
	return cmd
}
