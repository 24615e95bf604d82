package tradier

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

const tradingDays = 252

// Estimator names a historical volatility estimator.
type Estimator string

const (
	EstimatorClose          Estimator = "close"
	EstimatorParkinson      Estimator = "parkinson"
	EstimatorGarmanKlass    Estimator = "garman-klass"
	EstimatorRogersSatchell Estimator = "rogers-satchell"
	EstimatorYangZhang      Estimator = "yang-zhang"
)

var Estimators = []Estimator{EstimatorClose, EstimatorParkinson, EstimatorGarmanKlass, EstimatorRogersSatchell, EstimatorYangZhang}

func ParseEstimator(s string) (Estimator, error) {
	e := Estimator(strings.ToLower(strings.TrimSpace(s)))
	if e == "" {
		return EstimatorClose, nil
	}
	for _, known := range Estimators {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown volatility estimator %q", s)
}

// Volatility returns the annualized volatility of the history under the
// given estimator. The range estimators use daily open, high, low and
// close and need every one of them positive.
func (q *QuoteHistory) Volatility(e Estimator) (float64, error) {
	if e == EstimatorClose || e == "" {
		return q.AnnualizedVolatility()
	}

	days := q.History.Day
	if len(days) < 3 {
		return 0, fmt.Errorf("need at least 3 days for %s volatility, got %d", e, len(days))
	}
	for _, d := range days {
		if d.Open <= 0 || d.High <= 0 || d.Low <= 0 || d.Close <= 0 {
			return 0, fmt.Errorf("non-positive price on %s", d.Date)
		}
	}

	var variance float64
	switch e {
	case EstimatorParkinson:
		variance = parkinson(days)
	case EstimatorGarmanKlass:
		variance = garmanKlass(days)
	case EstimatorRogersSatchell:
		variance = rogersSatchell(days)
	case EstimatorYangZhang:
		variance = yangZhang(days)
	default:
		return 0, fmt.Errorf("unknown volatility estimator %q", e)
	}
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance * tradingDays), nil
}

// The estimators below return a daily variance.

func parkinson(days []Day) float64 {
	sum := 0.0
	for _, d := range days {
		hl := math.Log(d.High / d.Low)
		sum += hl * hl
	}
	return sum / (4 * float64(len(days)) * math.Ln2)
}

func garmanKlass(days []Day) float64 {
	sum := 0.0
	for _, d := range days {
		hl := math.Log(d.High / d.Low)
		co := math.Log(d.Close / d.Open)
		sum += 0.5*hl*hl - (2*math.Ln2-1)*co*co
	}
	return sum / float64(len(days))
}

func rogersSatchell(days []Day) float64 {
	sum := 0.0
	for _, d := range days {
		sum += math.Log(d.High/d.Close)*math.Log(d.High/d.Open) +
			math.Log(d.Low/d.Close)*math.Log(d.Low/d.Open)
	}
	return sum / float64(len(days))
}

func yangZhang(days []Day) float64 {
	n := float64(len(days))
	k := 0.34 / (1.34 + (n+1)/(n-1))

	overnight := make([]float64, len(days)-1)
	for i := 1; i < len(days); i++ {
		overnight[i-1] = math.Log(days[i].Open / days[i-1].Close)
	}
	openClose := make([]float64, len(days))
	for i, d := range days {
		openClose[i] = math.Log(d.Close / d.Open)
	}

	return stat.Variance(overnight, nil) + k*stat.Variance(openClose, nil) + (1-k)*rogersSatchell(days)
}
