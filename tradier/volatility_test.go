package tradier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRange(n int) *QuoteHistory {
	q := &QuoteHistory{}
	for i := 0; i < n; i++ {
		q.History.Day = append(q.History.Day, Day{Date: "d", Open: 100, High: 110, Low: 90, Close: 100})
	}
	return q
}

func TestRangeEstimators(t *testing.T) {
	q := flatRange(10)
	hl := math.Log(110.0 / 90.0)
	rs := math.Log(1.1)*math.Log(1.1) + math.Log(0.9)*math.Log(0.9)
	k := 0.34 / (1.34 + 11.0/9.0)

	tests := []struct {
		estimator Estimator
		want      float64
	}{
		{EstimatorParkinson, math.Sqrt(hl * hl / (4 * math.Ln2) * 252)},
		{EstimatorGarmanKlass, math.Sqrt(0.5 * hl * hl * 252)},
		{EstimatorRogersSatchell, math.Sqrt(rs * 252)},
		// no overnight gaps and flat open to close leave only the range term
		{EstimatorYangZhang, math.Sqrt((1 - k) * rs * 252)},
	}
	for _, tt := range tests {
		t.Run(string(tt.estimator), func(t *testing.T) {
			got, err := q.Volatility(tt.estimator)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestVolatilityClose(t *testing.T) {
	q := flatRange(5)
	got, err := q.Volatility(EstimatorClose)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestVolatilityErrors(t *testing.T) {
	_, err := flatRange(2).Volatility(EstimatorParkinson)
	assert.Error(t, err)

	q := flatRange(5)
	q.History.Day[2].Low = 0
	_, err = q.Volatility(EstimatorGarmanKlass)
	assert.Error(t, err)

	_, err = flatRange(5).Volatility("ewma")
	assert.Error(t, err)
}

func TestParseEstimator(t *testing.T) {
	e, err := ParseEstimator(" Yang-Zhang ")
	require.NoError(t, err)
	assert.Equal(t, EstimatorYangZhang, e)

	e, err = ParseEstimator("")
	require.NoError(t, err)
	assert.Equal(t, EstimatorClose, e)

	_, err = ParseEstimator("garch")
	assert.Error(t, err)
}
