package payoffslack

import (
	"github.com/slack-go/slack"
)

type HelpHandler struct{}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

func (h *HelpHandler) HandleCommand(data slack.SlashCommand, client Poster) error {
	helpText := "Available commands:\n" +
		"/help - Show this help message\n" +
		"/payoff - Monte-Carlo price an option payoff\n" + usage

	_, _, err := client.PostMessage(data.ChannelID,
		slack.MsgOptionText(helpText, false))
	return err
}
