package tradier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xhhuango/json"
)

const DefaultBaseURL = "https://api.tradier.com"

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is returned for a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tradier: status %d: %s", e.StatusCode, e.Body)
}

// GetQuotes fetches the price history of symbol between start and end
// (YYYY-MM-DD). interval is daily, weekly or monthly.
func (c *Client) GetQuotes(ctx context.Context, symbol, start, end, interval string) (*QuoteHistory, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("start", start)
	q.Set("end", end)
	q.Set("session_filter", "all")

	quoteHistory := &QuoteHistory{}
	if err := c.get(ctx, "/v1/markets/history", q, quoteHistory); err != nil {
		return nil, fmt.Errorf("get quotes for %s: %w", symbol, err)
	}
	if len(quoteHistory.History.Day) == 0 {
		return nil, fmt.Errorf("get quotes for %s from %s to %s: %w", symbol, start, end, ErrNoData)
	}
	return quoteHistory, nil
}

// GetRecentQuotes fetches daily quotes for the last year.
func (c *Client) GetRecentQuotes(ctx context.Context, symbol string) (*QuoteHistory, error) {
	today := time.Now()
	return c.GetQuotes(ctx, symbol, today.AddDate(-1, 0, 0).Format("2006-01-02"), today.Format("2006-01-02"), "daily")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse url: %w", err)
	}
	u.RawQuery = query.Encode()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	r.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	r.Header.Add("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response data: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(responseData)}
	}

	if err := json.Unmarshal(responseData, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}
