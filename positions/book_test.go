package positions

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/mcpayoff/models"
	"github.com/bcdannyboy/mcpayoff/payoff"
	"github.com/bcdannyboy/mcpayoff/probability"
)

func flatEngine() *probability.Engine {
	e := probability.NewEngine(models.NewGBM(0, 0), 100)
	e.Steps = 4
	e.Paths = 200
	e.Seed = 3
	return e
}

func TestPriceBook(t *testing.T) {
	book := []Position{
		{Name: "long call", Quantity: 2, Contract: payoff.Contract{Kind: payoff.KindEuropean, Side: "call", Strike: 90}},
		{Name: "short put", Quantity: -1, Contract: payoff.Contract{Kind: payoff.KindEuropean, Side: "put", Strike: 110}},
		{Name: "corridor", Quantity: 1, Contract: payoff.Contract{Kind: payoff.KindDoubleDigital, Lower: 95, Upper: 105, Coupon: 7}},
		{Name: "bad", Quantity: 1, Contract: payoff.Contract{Kind: payoff.KindEuropean, Side: "straddle", Strike: 100}},
	}

	var out bytes.Buffer
	results, err := PriceBook(context.Background(), book, flatEngine(), BookOptions{Workers: 2, Output: &out, Places: 4})
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, book[i].Name, r.Position.Name)
	}

	assert.NoError(t, results[0].Err)
	assert.InDelta(t, 20.0, results[0].Value, 1e-9)
	assert.Equal(t, "10", results[0].Quote.Price.String())

	assert.InDelta(t, -10.0, results[1].Value, 1e-9)
	assert.InDelta(t, 7.0, results[2].Value, 1e-9)

	assert.ErrorIs(t, results[3].Err, payoff.ErrInvalidArgument)
	assert.Contains(t, results[3].Error, "bad")
	assert.Nil(t, results[3].Result)

	assert.InDelta(t, 17.0, Total(results), 1e-9)
	assert.NotEmpty(t, out.String())
}

func TestPriceBookEmptyAndInvalid(t *testing.T) {
	results, err := PriceBook(context.Background(), nil, flatEngine(), BookOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = PriceBook(context.Background(), []Position{{Name: "x"}}, nil, BookOptions{})
	assert.ErrorIs(t, err, payoff.ErrInvalidArgument)

	e := flatEngine()
	e.Paths = 0
	_, err = PriceBook(context.Background(), []Position{{Name: "x"}}, e, BookOptions{})
	assert.ErrorIs(t, err, payoff.ErrInvalidArgument)
}

func TestPriceBookCanceled(t *testing.T) {
	book := []Position{
		{Name: "a", Quantity: 1, Contract: payoff.Contract{Kind: payoff.KindEuropean, Side: "call", Strike: 90}},
		{Name: "b", Quantity: 1, Contract: payoff.Contract{Kind: payoff.KindEuropean, Side: "call", Strike: 90}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := PriceBook(ctx, book, flatEngine(), BookOptions{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
	assert.Zero(t, Total(results))
}

func TestNumCPU(t *testing.T) {
	assert.GreaterOrEqual(t, numCPU(), 1)
}
