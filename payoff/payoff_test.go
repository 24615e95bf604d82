package payoff

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuropeanScenarios(t *testing.T) {
	tests := []struct {
		name   string
		side   string
		strike float64
		path   []float64
		want   float64
	}{
		{"call in the money", "call", 100, []float64{100, 105, 98, 110}, 10},
		{"put in the money", "put", 100, []float64{100, 105, 98, 90}, 10},
		{"call out of the money", "call", 100, []float64{100, 95}, 0},
		{"put out of the money", "put", 100, []float64{100, 120}, 0},
		{"call at the strike", "call", 100, []float64{90, 100}, 0},
		{"put at the strike", "put", 100, []float64{110, 100}, 0},
		{"single observation", "call", 50, []float64{75}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewEuropean(tt.strike, tt.side)
			require.NoError(t, err)
			got, err := p.Payoff(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDigitalCallScenarios(t *testing.T) {
	call, err := NewDigitalCall(100, "call", 5)
	require.NoError(t, err)

	got, err := call.Payoff([]float64{100, 95})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	got, err = call.Payoff([]float64{100, 105})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = call.Payoff([]float64{100})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got, "call side pays at the strike")

	put, err := NewDigitalCall(100, "put", 5)
	require.NoError(t, err)

	got, err = put.Payoff([]float64{100, 105})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	got, err = put.Payoff([]float64{100, 95})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = put.Payoff([]float64{100})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got, "put side pays at the strike")
}

func TestDoubleDigitalScenarios(t *testing.T) {
	p, err := NewDoubleDigital(110, 90, 20)
	require.NoError(t, err)

	tests := []struct {
		path []float64
		want float64
	}{
		{[]float64{100, 95}, 20},
		{[]float64{100, 120}, 0},
		{[]float64{100, 80}, 0},
		{[]float64{100, 90}, 20},
		{[]float64{100, 110}, 20},
		// only the terminal price is tested against the corridor
		{[]float64{200, 10, 100}, 20},
	}
	for _, tt := range tests {
		got, err := p.Payoff(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "path %v", tt.path)
	}

	assert.Equal(t, 110.0, p.Upper())
	assert.Equal(t, 90.0, p.Lower())
	assert.Equal(t, 20.0, p.Coupon())
}

func TestAsianScenarios(t *testing.T) {
	path := []float64{90, 100, 110, 120}

	arith, err := NewAsianArithmetic(100, "call")
	require.NoError(t, err)
	got, err := arith.Payoff(path)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-12)

	geo, err := NewAsianGeometric(100, "call")
	require.NoError(t, err)
	mean, err := geo.Summarize(path)
	require.NoError(t, err)
	assert.InDelta(t, 104.40086817048493, mean, 1e-9)
	got, err = geo.Payoff(path)
	require.NoError(t, err)
	assert.InDelta(t, 4.400868170484927, got, 1e-9)

	put, err := NewAsianArithmetic(110, "put")
	require.NoError(t, err)
	got, err = put.Payoff(path)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-12)
}

func TestAsianUsesWholePath(t *testing.T) {
	p, err := NewAsianArithmetic(100, "call")
	require.NoError(t, err)

	// terminal price is below the strike but the average is above it
	got, err := p.Payoff([]float64{150, 130, 110, 90})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, got, 1e-12)
}

func TestGeometricRejectsNonPositivePath(t *testing.T) {
	p, err := NewAsianGeometric(100, "call")
	require.NoError(t, err)

	for _, path := range [][]float64{{100, 0, 110}, {100, -5}, {0}} {
		_, err := p.Payoff(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDomain), "path %v: %v", path, err)

		var de *DomainError
		require.True(t, errors.As(err, &de))
		assert.LessOrEqual(t, de.Value, 0.0)
	}

	// the instance stays usable after a failed evaluation
	got, err := p.Payoff([]float64{100, 100, 100})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)
}

func TestConstructionRejectsBadSide(t *testing.T) {
	for _, label := range []string{"", "CALL", "straddle", "calls"} {
		_, err := NewEuropean(100, label)
		assert.ErrorIs(t, err, ErrInvalidArgument, "label %q", label)

		_, err = NewDigitalCall(100, label, 1)
		assert.ErrorIs(t, err, ErrInvalidArgument, "label %q", label)

		_, err = NewAsianArithmetic(100, label)
		assert.ErrorIs(t, err, ErrInvalidArgument, "label %q", label)

		_, err = NewAsianGeometric(100, label)
		assert.ErrorIs(t, err, ErrInvalidArgument, "label %q", label)
	}

	side, err := ValidateOptionType(" put ")
	require.NoError(t, err)
	assert.Equal(t, Put, side)
}

func TestConstructionRejectsBadStrikes(t *testing.T) {
	_, err := NewEuropean(-1, "call")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewEuropean(math.NaN(), "call")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewDigitalCall(100, "call", math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewDoubleDigital(90, 110, 20)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewDoubleDigital(100, 100, 20)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var ae *ArgumentError
	_, err = NewDoubleDigital(100, -1, 20)
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "lower", ae.Field)
}

func TestEmptyPath(t *testing.T) {
	european, _ := NewEuropean(100, "call")
	digital, _ := NewDigitalCall(100, "call", 1)
	corridor, _ := NewDoubleDigital(110, 90, 1)
	arith, _ := NewAsianArithmetic(100, "call")
	geo, _ := NewAsianGeometric(100, "call")

	for _, p := range []Payoff{european, digital, corridor, arith, geo} {
		_, err := p.Payoff(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument, Describe(p))
	}
}

func TestPayoffDoesNotModifyPath(t *testing.T) {
	path := []float64{90, 100, 110, 120}
	orig := append([]float64(nil), path...)

	for _, c := range []Contract{
		{Kind: KindEuropean, Side: "call", Strike: 100},
		{Kind: KindDigital, Side: "put", Strike: 100, Coupon: 3},
		{Kind: KindDoubleDigital, Lower: 90, Upper: 130, Coupon: 3},
		{Kind: KindAsianArithmetic, Side: "call", Strike: 100},
		{Kind: KindAsianGeometric, Side: "put", Strike: 120},
	} {
		p, err := New(c)
		require.NoError(t, err)
		first, err := p.Payoff(path)
		require.NoError(t, err)
		second, err := p.Payoff(path)
		require.NoError(t, err)
		assert.Equal(t, first, second, Describe(p))
		assert.Equal(t, orig, path, Describe(p))
	}
}

func TestNewFromContract(t *testing.T) {
	p, err := New(Contract{Kind: "European", Side: "put", Strike: 42})
	require.NoError(t, err)
	e, ok := p.(*European)
	require.True(t, ok)
	assert.Equal(t, Put, e.Side())
	assert.Equal(t, 42.0, e.Strike())

	p, err = New(Contract{Kind: KindDoubleDigital, Lower: 1, Upper: 2, Coupon: 3})
	require.NoError(t, err)
	assert.Equal(t, "double-digital [1, 2] C=3", Describe(p))

	p, err = New(Contract{Kind: KindAsianGeometric, Side: "call", Strike: 100})
	require.NoError(t, err)
	d, ok := p.(Directional)
	require.True(t, ok)
	assert.Equal(t, Call, d.Side())
	assert.Equal(t, "asian-geometric call K=100", Describe(p))

	_, err = New(Contract{Kind: "barrier", Side: "call", Strike: 100})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
