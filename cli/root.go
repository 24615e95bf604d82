// Package cli provides the mcpayoff command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/mcpayoff/config"
	"github.com/bcdannyboy/mcpayoff/logging"
)

// Version information
const Version = "0.1.0"

// App holds the dependencies shared by the commands. It is filled in by
// the root command before any subcommand runs.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd() *cobra.Command {
	app := &App{Logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "mcpayoff",
		Short: "Monte-Carlo pricing of option payoffs",
		Long: `mcpayoff evaluates option payoffs on price paths and prices them by
Monte-Carlo simulation under GBM, Merton, Heston or Kou dynamics.

Supported payoffs: european, digital, double-digital, asian-arithmetic,
asian-geometric.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Logging.Level = level
			}
			app.Config = cfg
			app.Logger = logging.NewLogger(cfg.Logging)
			cmd.SetContext(logging.WithLogger(cmd.Context(), app.Logger))
			app.Logger.Debug().Str("model", cfg.Simulation.Model).Msg("Configuration loaded")
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/mcpayoff/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newBookCmd(app))
	rootCmd.AddCommand(newSlackCmd(app))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
