package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bcdannyboy/mcpayoff/config"
	"github.com/bcdannyboy/mcpayoff/models"
	"github.com/bcdannyboy/mcpayoff/probability"
	"github.com/bcdannyboy/mcpayoff/tradier"
)

const tradingDays = 252

// newEngine builds an engine from the simulation settings.
func newEngine(sim config.SimulationConfig, logger zerolog.Logger) (*probability.Engine, error) {
	gen, err := models.NewGenerator(sim.Model, sim.Params)
	if err != nil {
		return nil, err
	}
	engine := probability.NewEngine(gen, sim.Spot)
	engine.Rate = sim.Rate
	engine.Maturity = sim.Maturity
	engine.Steps = sim.Steps
	engine.Paths = sim.Paths
	if sim.Workers > 0 {
		engine.Workers = sim.Workers
	}
	engine.Seed = sim.Seed
	engine.SkipDomainErrors = sim.SkipDomainErrors
	engine.Logger = logger
	return engine, nil
}

// marketData returns the last close of symbol and its annualized
// volatility over the last year under estimator, along with the closes.
func marketData(ctx context.Context, client *tradier.Client, symbol string, estimator tradier.Estimator, logger zerolog.Logger) (spot, vol float64, closes []float64, err error) {
	history, err := client.GetRecentQuotes(ctx, symbol)
	if err != nil {
		return 0, 0, nil, err
	}
	spot, err = history.LastClose()
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%s: %w", symbol, err)
	}
	vol, err = history.Volatility(estimator)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%s: %w", symbol, err)
	}
	logger.Info().Str("symbol", symbol).Float64("spot", spot).Float64("volatility", vol).Str("estimator", string(estimator)).Msg("Market data loaded")
	return spot, vol, history.Closes(), nil
}

// fromCloses builds a jump model with its jump parameters estimated from
// daily closes. It returns nil for models that take no market estimate.
func fromCloses(model string, drift, vol float64, closes []float64, logger zerolog.Logger) models.PathGenerator {
	switch strings.ToLower(model) {
	case "kou":
		kou := models.NewKouJumpDiffusion(drift, vol, closes, 1.0/tradingDays)
		logger.Debug().
			Float64("lambda", kou.Lambda).
			Float64("p", kou.P).
			Float64("eta1", kou.Eta1).
			Float64("eta2", kou.Eta2).
			Msg("Kou parameters estimated")
		return kou
	case "merton":
		m := models.NewMertonFromCloses(drift, vol, closes, 1.0/tradingDays)
		logger.Debug().
			Float64("lambda", m.Lambda).
			Float64("mu", m.Mu).
			Float64("delta", m.Delta).
			Msg("Merton parameters estimated")
		return m
	}
	return nil
}
