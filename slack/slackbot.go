// Package payoffslack serves payoff pricing over Slack slash commands.
package payoffslack

import (
	"context"
	"log"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

type SlackBot struct {
	client       *slack.Client
	socketClient *socketmode.Client
	eventHandler *Handler
	logger       zerolog.Logger
}

func NewSlackBot(appToken, botToken string, handler *Handler, logger zerolog.Logger) *SlackBot {
	client := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)

	socketClient := socketmode.New(
		client,
		socketmode.OptionDebug(logger.GetLevel() <= zerolog.DebugLevel),
		socketmode.OptionLog(log.New(logger, "socketmode: ", 0)),
	)

	return &SlackBot{
		client:       client,
		socketClient: socketClient,
		eventHandler: handler,
		logger:       logger,
	}
}

// Start serves slash commands until ctx is done.
func (sb *SlackBot) Start(ctx context.Context) error {
	go func() {
		for evt := range sb.socketClient.Events {
			switch evt.Type {
			case socketmode.EventTypeConnected:
				sb.logger.Info().Msg("Connected to Slack")
			case socketmode.EventTypeSlashCommand:
				data, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					continue
				}
				sb.socketClient.Ack(*evt.Request)
				if err := sb.eventHandler.Handle(ctx, data, sb.socketClient); err != nil {
					sb.logger.Error().Err(err).Str("command", data.Command).Msg("Slash command failed")
				}
			}
		}
	}()

	return sb.socketClient.RunContext(ctx)
}
