package tradier

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/xhhuango/json"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when Tradier has no history for the request.
var ErrNoData = errors.New("tradier: no data")

type Day struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int     `json:"volume"`
}

type QuoteHistory struct {
	History struct {
		Day []Day `json:"day"`
	} `json:"history"`
}

// UnmarshalJSON accepts the three shapes Tradier uses for history: an
// array of days, a single day object for a one-day range, and null or
// "null" when there is no data.
func (q *QuoteHistory) UnmarshalJSON(data []byte) error {
	var raw struct {
		History json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.History.Day = nil
	if isNull(raw.History) {
		return nil
	}

	var body struct {
		Day json.RawMessage `json:"day"`
	}
	if err := json.Unmarshal(raw.History, &body); err != nil {
		return err
	}
	day := bytes.TrimSpace(body.Day)
	switch {
	case isNull(day):
		return nil
	case day[0] == '{':
		var d Day
		if err := json.Unmarshal(day, &d); err != nil {
			return err
		}
		q.History.Day = []Day{d}
		return nil
	}
	return json.Unmarshal(day, &q.History.Day)
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || string(b) == "null" || string(b) == `"null"`
}

// Closes returns the daily closes in date order.
func (q *QuoteHistory) Closes() []float64 {
	closes := make([]float64, len(q.History.Day))
	for i, d := range q.History.Day {
		closes[i] = d.Close
	}
	return closes
}

func (q *QuoteHistory) LastClose() (float64, error) {
	if len(q.History.Day) == 0 {
		return 0, fmt.Errorf("quote history is empty")
	}
	return q.History.Day[len(q.History.Day)-1].Close, nil
}

// AnnualizedVolatility is the sample standard deviation of daily log
// returns scaled by sqrt(252).
func (q *QuoteHistory) AnnualizedVolatility() (float64, error) {
	closes := q.Closes()
	if len(closes) < 3 {
		return 0, fmt.Errorf("need at least 3 closes for volatility, got %d", len(closes))
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return 0, fmt.Errorf("non-positive close on %s", q.History.Day[i].Date)
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	return stat.StdDev(returns, nil) * math.Sqrt(tradingDays), nil
}
