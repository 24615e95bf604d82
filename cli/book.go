package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/mcpayoff/logging"
	"github.com/bcdannyboy/mcpayoff/positions"
)

type bookReport struct {
	Positions []positions.PositionResult `json:"positions"`
	Total     float64                    `json:"total"`
	Failed    int                        `json:"failed"`
}

func newBookCmd(app *App) *cobra.Command {
	var outPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Price every position of the configured book",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(app.Config.Book) == 0 {
				return fmt.Errorf("no positions in the configured book")
			}

			engine, err := newEngine(app.Config.Simulation, logging.FromContext(cmd.Context()))
			if err != nil {
				return err
			}

			opts := positions.BookOptions{
				Workers: app.Config.Simulation.Workers,
				Places:  app.Config.Simulation.Places,
			}
			if !quiet {
				opts.Output = cmd.ErrOrStderr()
			}
			results, err := positions.PriceBook(cmd.Context(), app.Config.Book, engine, opts)
			if err != nil {
				return err
			}

			report := bookReport{Positions: results, Total: positions.Total(results)}
			for _, r := range results {
				if r.Err != nil {
					report.Failed++
				}
			}

			data, err := json.Marshal(report)
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d positions to %s (total %.4f)\n", len(results), outPath, report.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the JSON report to a file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}
