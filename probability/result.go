package probability

import (
	"time"

	"github.com/shopspring/decimal"
)

// Result is the outcome of one Monte-Carlo run.
type Result struct {
	Price   float64 // discounted mean payoff
	Mean    float64 // undiscounted mean payoff
	StdErr  float64 // standard error of Price
	Paths   int     // paths that contributed to Price
	Skipped int     // paths dropped on domain errors
	VaR95   float64
	VaR99   float64
	ES95    float64
	Seed    uint64
	Elapsed time.Duration
}

// Quote is a Result rounded for display.
type Quote struct {
	Price   decimal.Decimal `json:"price"`
	StdErr  decimal.Decimal `json:"std_err"`
	Low     decimal.Decimal `json:"ci95_low"`
	High    decimal.Decimal `json:"ci95_high"`
	VaR95   decimal.Decimal `json:"var95"`
	VaR99   decimal.Decimal `json:"var99"`
	ES95    decimal.Decimal `json:"es95"`
	Paths   int             `json:"paths"`
	Skipped int             `json:"skipped"`
	Seed    uint64          `json:"seed"`
}

// Quote rounds the result to places decimal places and adds the 95%
// confidence interval of the price.
func (r *Result) Quote(places int32) Quote {
	price := decimal.NewFromFloat(r.Price)
	stdErr := decimal.NewFromFloat(r.StdErr)
	halfWidth := stdErr.Mul(decimal.NewFromFloat(1.96))

	return Quote{
		Price:   price.Round(places),
		StdErr:  stdErr.Round(places),
		Low:     price.Sub(halfWidth).Round(places),
		High:    price.Add(halfWidth).Round(places),
		VaR95:   decimal.NewFromFloat(r.VaR95).Round(places),
		VaR99:   decimal.NewFromFloat(r.VaR99).Round(places),
		ES95:    decimal.NewFromFloat(r.ES95).Round(places),
		Paths:   r.Paths,
		Skipped: r.Skipped,
		Seed:    r.Seed,
	}
}

func (q Quote) String() string {
	return "price " + q.Price.String() + " +/- " + q.StdErr.String() +
		" (95% CI " + q.Low.String() + " to " + q.High.String() + ")"
}
