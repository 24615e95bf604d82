package payoffslack

import (
	"context"

	"github.com/slack-go/slack"
)

type Handler struct {
	helpHandler   *HelpHandler
	payoffHandler *PayoffHandler
}

func NewHandler(payoffHandler *PayoffHandler) *Handler {
	return &Handler{
		helpHandler:   NewHelpHandler(),
		payoffHandler: payoffHandler,
	}
}

// Handle dispatches a slash command. Unknown commands are ignored.
func (h *Handler) Handle(ctx context.Context, data slack.SlashCommand, client Poster) error {
	switch data.Command {
	case "/help":
		return h.helpHandler.HandleCommand(data, client)
	case "/payoff":
		return h.payoffHandler.HandleCommand(ctx, data, client)
	}
	return nil
}
