package cli

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/mcpayoff/probability"
)

const baseConfig = `
simulation:
  model: gbm
  paths: 2000
  steps: 12
  seed: 42
  spot: 100
  rate: 0.05
  maturity: 1
  volatility: 0.2
  places: 4
logging:
  console: false
`

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(baseConfig+extra), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalCmd(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "eval", "--config", cfg, "--kind", "european", "--side", "call", "--strike", "100", "--path", "100,105,98,110")
	require.NoError(t, err)
	assert.Equal(t, "european call K=100: 10\n", out)

	out, err = run(t, "eval", "--config", cfg, "--kind", "asian-arithmetic", "--side", "put", "--strike", "110", "--path", "100,105,98,110")
	require.NoError(t, err)
	assert.Equal(t, "asian-arithmetic put K=110: 6.75\n", out)

	_, err = run(t, "eval", "--config", cfg, "--kind", "european", "--side", "CALL", "--strike", "100", "--path", "100")
	assert.Error(t, err)

	_, err = run(t, "eval", "--config", cfg, "--kind", "european", "--side", "call", "--strike", "100")
	assert.Error(t, err, "path is required")
}

func TestPriceCmdJSON(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "price", "--config", cfg, "--kind", "double-digital", "--lower", "0", "--upper", "1e9", "--coupon", "5", "--json")
	require.NoError(t, err)

	var quote probability.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	assert.InDelta(t, 5*math.Exp(-0.05), quote.Price.InexactFloat64(), 1e-4)
	assert.Equal(t, 2000, quote.Paths)
	assert.Equal(t, uint64(42), quote.Seed)
}

func TestPriceCmdIsReproducible(t *testing.T) {
	cfg := writeConfig(t, "")
	args := []string{"price", "--config", cfg, "--kind", "european", "--side", "call", "--strike", "100", "--json"}

	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPriceCmdSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "QQQ", r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`{"history":{"day":[
{"date":"2024-01-02","close":100},
{"date":"2024-01-03","close":102},
{"date":"2024-01-04","close":101},
{"date":"2024-01-05","close":250}
]}}`))
	}))
	defer srv.Close()

	cfg := writeConfig(t, "tradier:\n  token: test\n  base_url: "+srv.URL+"\n")

	// deep in the money, so the price tracks the market spot of 250
	out, err := run(t, "price", "--config", cfg, "--symbol", "QQQ", "--kind", "european", "--side", "call", "--strike", "1", "--vol", "0.0001", "--json")
	require.NoError(t, err)

	var quote probability.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	assert.Greater(t, quote.Price.InexactFloat64(), 200.0)
}

func TestBookCmd(t *testing.T) {
	cfg := writeConfig(t, `
book:
  - name: long call
    quantity: 2
    contract:
      kind: european
      side: call
      strike: 100
  - name: broken
    quantity: 1
    contract:
      kind: european
      side: sideways
      strike: 100
`)
	outPath := filepath.Join(t.TempDir(), "book.json")

	out, err := run(t, "book", "--config", cfg, "--quiet", "--out", outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Wrote 2 positions"))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var report bookReport
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.Positions, 2)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "long call", report.Positions[0].Position.Name)
	assert.Empty(t, report.Positions[0].Error)
	assert.Contains(t, report.Positions[1].Error, "broken")
	assert.InDelta(t, report.Positions[0].Value, report.Total, 1e-9)
	assert.Greater(t, report.Total, 0.0)
}

func TestBookCmdEmpty(t *testing.T) {
	_, err := run(t, "book", "--config", writeConfig(t, ""))
	assert.Error(t, err)
}

func TestPriceCmdText(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "price", "--config", cfg, "--kind", "digital", "--side", "put", "--strike", "100", "--coupon", "1", "--paths", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "digital put K=100 C=1: price ")
	assert.Contains(t, out, "500 paths, 0 skipped, seed 42")
	assert.Contains(t, out, "closed form ")
}
