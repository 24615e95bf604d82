package payoff

import (
	"gonum.org/v1/gonum/stat"
)

// Averager summarizes a whole path into one representative price.
type Averager func(path []float64) (float64, error)

// ArithmeticMean averages every observation of the path.
func ArithmeticMean(path []float64) (float64, error) {
	if len(path) == 0 {
		return 0, newArgumentError("path", "[]", "path must contain at least one observation")
	}
	return stat.Mean(path, nil), nil
}

// GeometricMean is only defined for strictly positive observations.
func GeometricMean(path []float64) (float64, error) {
	if len(path) == 0 {
		return 0, newArgumentError("path", "[]", "path must contain at least one observation")
	}
	for i, v := range path {
		if v <= 0 {
			return 0, &DomainError{Index: i, Value: v, Message: "geometric mean requires positive prices"}
		}
	}
	return stat.GeometricMean(path, nil), nil
}

// Asian pays the European payoff of the path average instead of the
// terminal price.
type Asian struct {
	rule    European
	average Averager
	kind    Kind
}

func newAsian(strike float64, side string, average Averager, kind Kind) (*Asian, error) {
	rule, err := NewEuropean(strike, side)
	if err != nil {
		return nil, err
	}
	return &Asian{rule: *rule, average: average, kind: kind}, nil
}

// NewAsianArithmetic averages the path with ArithmeticMean.
func NewAsianArithmetic(strike float64, side string) (*Asian, error) {
	return newAsian(strike, side, ArithmeticMean, KindAsianArithmetic)
}

// NewAsianGeometric averages the path with GeometricMean.
func NewAsianGeometric(strike float64, side string) (*Asian, error) {
	return newAsian(strike, side, GeometricMean, KindAsianGeometric)
}

func (a *Asian) Side() OptionSide { return a.rule.side }
func (a *Asian) Strike() float64  { return a.rule.strike }
func (a *Asian) Kind() Kind       { return a.kind }

// Summarize returns the average the payoff is struck against.
func (a *Asian) Summarize(path []float64) (float64, error) {
	return a.average(path)
}

func (a *Asian) Payoff(path []float64) (float64, error) {
	mean, err := a.average(path)
	if err != nil {
		return 0, err
	}
	return a.rule.at(mean), nil
}
