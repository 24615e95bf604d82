package payoffslack

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/bcdannyboy/mcpayoff/models"
	"github.com/bcdannyboy/mcpayoff/payoff"
	"github.com/bcdannyboy/mcpayoff/probability"
)

// Poster is the part of the Slack client the handlers use.
type Poster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// PayoffHandler answers /payoff by pricing the requested contract.
type PayoffHandler struct {
	Model  string
	Params models.GeneratorParams
	// Engine is copied for every request; Spot, Maturity and Generator are
	// replaced by the request values.
	Engine probability.Engine
	Places int32
	Logger zerolog.Logger
}

func NewPayoffHandler(model string, params models.GeneratorParams, engine probability.Engine, places int32, logger zerolog.Logger) *PayoffHandler {
	return &PayoffHandler{Model: model, Params: params, Engine: engine, Places: places, Logger: logger}
}

func (h *PayoffHandler) HandleCommand(ctx context.Context, data slack.SlashCommand, client Poster) error {
	req, err := ParseCommand(data.Text)
	if err != nil {
		_, _, err := client.PostMessage(data.ChannelID,
			slack.MsgOptionText(fmt.Sprintf("%v\n%s", err, usage), false))
		return err
	}

	p, err := payoff.New(req.Contract)
	if err != nil {
		_, _, err := client.PostMessage(data.ChannelID, slack.MsgOptionText(err.Error(), false))
		return err
	}

	_, ts, err := client.PostMessage(data.ChannelID,
		slack.MsgOptionText(fmt.Sprintf("Pricing %s...", payoff.Describe(p)), false))
	if err != nil {
		return err
	}

	go h.priceWithProgress(ctx, client, data.ChannelID, ts, req, p)
	return nil
}

func (h *PayoffHandler) priceWithProgress(ctx context.Context, client Poster, channelID, timestamp string, req Request, p payoff.Payoff) {
	engine, err := h.engineFor(req)
	if err == nil {
		engine.Progress = h.progress(client, channelID, timestamp, engine.Paths)
	}

	text := h.reply(ctx, engine, err, p)
	if _, _, err := client.PostMessage(channelID, slack.MsgOptionText(text, false), slack.MsgOptionTS(timestamp)); err != nil {
		h.Logger.Error().Err(err).Str("channel", channelID).Msg("Failed to post result")
	}
}

// progress posts a thread update each time the run crosses 25, 50 or 75
// percent of total paths.
func (h *PayoffHandler) progress(client Poster, channelID, timestamp string, total int) func(int) {
	var done int64
	return func(n int) {
		after := atomic.AddInt64(&done, int64(n))
		before := after - int64(n)
		for _, pct := range []int64{25, 50, 75} {
			mark := int64(total) * pct / 100
			if before < mark && after >= mark && after < int64(total) {
				_, _, err := client.PostMessage(channelID,
					slack.MsgOptionText(fmt.Sprintf("Simulation %d%% complete...", pct), false),
					slack.MsgOptionTS(timestamp))
				if err != nil {
					h.Logger.Warn().Err(err).Str("channel", channelID).Int64("percent", pct).Msg("Failed to post progress")
				}
			}
		}
	}
}

func (h *PayoffHandler) engineFor(req Request) (*probability.Engine, error) {
	params := h.Params
	params.Volatility = req.Volatility
	gen, err := models.NewGenerator(h.Model, params)
	if err != nil {
		return nil, err
	}
	engine := h.Engine
	engine.Generator = gen
	engine.Spot = req.Spot
	engine.Maturity = req.Maturity
	engine.Logger = h.Logger
	return &engine, nil
}

// reply prices p and formats the answer, or the error that stopped it.
func (h *PayoffHandler) reply(ctx context.Context, engine *probability.Engine, engineErr error, p payoff.Payoff) string {
	if engineErr != nil {
		return fmt.Sprintf("Could not price %s: %v", payoff.Describe(p), engineErr)
	}
	result, err := engine.Price(ctx, p)
	if err != nil {
		return fmt.Sprintf("Could not price %s: %v", payoff.Describe(p), err)
	}
	q := result.Quote(h.Places)
	return fmt.Sprintf("%s: %s\nVaR95 %s, ES95 %s over %d paths (seed %d)",
		payoff.Describe(p), q.String(), q.VaR95, q.ES95, q.Paths, q.Seed)
}
