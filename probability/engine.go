// Package probability runs Monte-Carlo simulations of payoffs over
// simulated price paths and aggregates them into a price.
package probability

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/bcdannyboy/mcpayoff/models"
	"github.com/bcdannyboy/mcpayoff/payoff"
)

const (
	numSimulations = 10000
	timeSteps      = 252 // Assuming 252 trading days in a year
	blockSize      = 512 // paths per seeded block
)

// Engine prices a payoff by averaging it over simulated paths.
//
// Paths are simulated in blocks of a fixed size, each with its own
// generator seeded from Seed and the block index, so a run with a given
// Seed gives the same price for any number of workers.
type Engine struct {
	Generator models.PathGenerator
	Spot      float64 // initial price
	Rate      float64 // continuously compounded discount rate
	Maturity  float64 // years
	Steps     int
	Paths     int
	Workers   int
	Seed      uint64 // 0 picks a seed from the clock

	// SkipDomainErrors drops paths the payoff cannot evaluate instead of
	// failing the whole run.
	SkipDomainErrors bool

	Logger zerolog.Logger
	// Progress is called from worker goroutines with the number of paths
	// just completed.
	Progress func(n int)
}

func NewEngine(generator models.PathGenerator, spot float64) *Engine {
	return &Engine{
		Generator: generator,
		Spot:      spot,
		Maturity:  1,
		Steps:     timeSteps,
		Paths:     numSimulations,
		Workers:   runtime.GOMAXPROCS(0),
		Logger:    zerolog.Nop(),
	}
}

func (e *Engine) Validate() error {
	switch {
	case e.Generator == nil:
		return fmt.Errorf("%w: engine has no path generator", payoff.ErrInvalidArgument)
	case !(e.Spot > 0) || math.IsInf(e.Spot, 0):
		return fmt.Errorf("%w: spot must be positive, got %v", payoff.ErrInvalidArgument, e.Spot)
	case !(e.Maturity > 0) || math.IsInf(e.Maturity, 0):
		return fmt.Errorf("%w: maturity must be positive, got %v", payoff.ErrInvalidArgument, e.Maturity)
	case e.Steps < 1:
		return fmt.Errorf("%w: steps must be at least 1, got %d", payoff.ErrInvalidArgument, e.Steps)
	case e.Paths < 1:
		return fmt.Errorf("%w: paths must be at least 1, got %d", payoff.ErrInvalidArgument, e.Paths)
	case math.IsNaN(e.Rate) || math.IsInf(e.Rate, 0):
		return fmt.Errorf("%w: rate must be finite, got %v", payoff.ErrInvalidArgument, e.Rate)
	}
	return nil
}

// Price simulates Paths paths, evaluates p on each and returns the
// discounted average with its error statistics.
func (e *Engine) Price(ctx context.Context, p payoff.Payoff) (*Result, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil payoff", payoff.ErrInvalidArgument)
	}

	seed := e.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	workers := e.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	log := e.Logger.With().Str("payoff", payoff.Describe(p)).Uint64("seed", seed).Logger()
	log.Debug().Int("paths", e.Paths).Int("steps", e.Steps).Int("workers", workers).Msg("Starting simulation")
	start := time.Now()

	values := make([]float64, e.Paths)
	valid := make([]bool, e.Paths)
	var skipped int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	blocks := (e.Paths + blockSize - 1) / blockSize
	for b := 0; b < blocks; b++ {
		lo := b * blockSize
		hi := lo + blockSize
		if hi > e.Paths {
			hi = e.Paths
		}
		block := b
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + uint64(block)))
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				path := e.Generator.SimulatePath(e.Spot, e.Maturity, e.Steps, rng)
				v, err := p.Payoff(path)
				if err != nil {
					if e.SkipDomainErrors && errors.Is(err, payoff.ErrDomain) {
						atomic.AddInt64(&skipped, 1)
						continue
					}
					return fmt.Errorf("path %d: %w", i, err)
				}
				values[i] = v
				valid[i] = true
			}
			if e.Progress != nil {
				e.Progress(hi - lo)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("Simulation aborted")
		return nil, err
	}

	payoffs := make([]float64, 0, e.Paths)
	for i, v := range values {
		if valid[i] {
			payoffs = append(payoffs, v)
		}
	}
	if len(payoffs) == 0 {
		return nil, fmt.Errorf("%w: all %d paths were skipped", payoff.ErrDomain, e.Paths)
	}

	result := summarize(payoffs, math.Exp(-e.Rate*e.Maturity))
	result.Skipped = int(skipped)
	result.Seed = seed
	result.Elapsed = time.Since(start)

	log.Info().
		Float64("price", result.Price).
		Float64("std_err", result.StdErr).
		Int("skipped", result.Skipped).
		Dur("elapsed", result.Elapsed).
		Msg("Simulation complete")

	return result, nil
}
