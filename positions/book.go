// Package positions prices a book of option positions.
package positions

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/bcdannyboy/mcpayoff/payoff"
	"github.com/bcdannyboy/mcpayoff/probability"
)

const jobBatchSize = 64

type BookOptions struct {
	// Workers caps the number of positions priced at once. Zero uses the
	// number of logical CPUs.
	Workers int
	// Output receives a progress bar. Nil disables it.
	Output io.Writer
	// Places is the rounding of the quotes.
	Places int32
}

type job struct {
	index    int
	position Position
}

// PriceBook prices every position with a copy of engine. A position that
// fails is reported in its result and does not stop the others. Results
// are in book order.
func PriceBook(ctx context.Context, book []Position, engine *probability.Engine, opts BookOptions) ([]PositionResult, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil engine", payoff.ErrInvalidArgument)
	}
	if err := engine.Validate(); err != nil {
		return nil, err
	}
	if len(book) == 0 {
		return nil, nil
	}

	numWorkers := opts.Workers
	if numWorkers < 1 {
		numWorkers = numCPU()
	}
	if numWorkers > len(book) {
		numWorkers = len(book)
	}

	log := engine.Logger
	log.Info().Int("positions", len(book)).Int("workers", numWorkers).Msg("Pricing book")
	start := time.Now()

	var p *mpb.Progress
	var bar *mpb.Bar
	if opts.Output != nil {
		p = mpb.NewWithContext(ctx, mpb.WithWidth(64), mpb.WithOutput(opts.Output))
		bar = p.AddBar(int64(len(book)),
			mpb.PrependDecorators(
				decor.Name("Pricing"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	results := processJobs(ctx, book, engine, numWorkers, opts.Places, bar)

	if p != nil {
		p.Wait()
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	log.Info().
		Float64("total", Total(results)).
		Dur("elapsed", time.Since(start)).
		Msg("Book priced")

	return results, nil
}

func processJobs(ctx context.Context, book []Position, engine *probability.Engine, numWorkers int, places int32, bar *mpb.Bar) []PositionResult {
	var wg sync.WaitGroup
	jobChan := make(chan job, jobBatchSize)
	results := make([]PositionResult, len(book))
	priced := make([]bool, len(book))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(ctx, jobChan, results, priced, engine, places, &wg, bar)
	}

	go func() {
		defer close(jobChan)
		for i, pos := range book {
			select {
			case jobChan <- job{index: i, position: pos}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	for i := range results {
		if !priced[i] {
			results[i] = failed(book[i], ctx.Err())
		}
	}
	return results
}

func worker(ctx context.Context, jobs <-chan job, results []PositionResult, priced []bool, engine *probability.Engine, places int32, wg *sync.WaitGroup, bar *mpb.Bar) {
	defer wg.Done()
	for j := range jobs {
		results[j.index] = pricePosition(ctx, j.position, engine, places)
		priced[j.index] = true
		if bar != nil {
			bar.Increment()
		}
	}
}

func pricePosition(ctx context.Context, pos Position, engine *probability.Engine, places int32) PositionResult {
	p, err := payoff.New(pos.Contract)
	if err != nil {
		return failed(pos, err)
	}

	// the engine is shared read-only; each position gets its own copy so
	// the logger can carry the position name
	e := *engine
	e.Logger = engine.Logger.With().Str("position", pos.Name).Logger()
	e.Progress = nil

	result, err := e.Price(ctx, p)
	if err != nil {
		return failed(pos, err)
	}
	quote := result.Quote(places)
	return PositionResult{
		Position: pos,
		Result:   result,
		Quote:    &quote,
		Value:    pos.Quantity * result.Price,
	}
}

func failed(pos Position, err error) PositionResult {
	if err == nil {
		err = fmt.Errorf("position %q was not priced", pos.Name)
	}
	err = fmt.Errorf("position %q: %w", pos.Name, err)
	return PositionResult{Position: pos, Err: err, Error: err.Error()}
}

func numCPU() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}
