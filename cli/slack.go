package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bcdannyboy/mcpayoff/logging"
	payoffslack "github.com/bcdannyboy/mcpayoff/slack"
)

func newSlackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slack",
		Short: "Serve /payoff and /help as Slack slash commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := app.Config.Slack
			if creds.AppToken == "" || creds.BotToken == "" {
				return fmt.Errorf("slack app and bot tokens are required (SLACK_APP_TOKEN, SLACK_BOT_TOKEN)")
			}

			logger := logging.FromContext(cmd.Context())
			sim := app.Config.Simulation
			engine, err := newEngine(sim, logger)
			if err != nil {
				return err
			}

			handler := payoffslack.NewHandler(
				payoffslack.NewPayoffHandler(sim.Model, sim.Params, *engine, sim.Places, logger),
			)
			bot := payoffslack.NewSlackBot(creds.AppToken, creds.BotToken, handler, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info().Msg("Starting Slack bot")
			if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info().Msg("Slack bot stopped")
			return nil
		},
	}
}
