package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RxDataLab/go-yfinance"
	"github.com/RxDataLab/go-yfinance/internal/config"
	"github.com/RxDataLab/go-yfinance/internal/store"
	"github.com/RxDataLab/go-yfinance/internal/store/sqlite"
)

const (
	testStatementBase = "http://statements.test/q/"
	testQuoteBase     = "http://quotes.test/yql"
)

type stubFetcher struct {
	docs map[string][]string
	err  error
}

func (f *stubFetcher) FetchLines(ctx context.Context, url string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if lines, ok := f.docs[url]; ok {
		return lines, nil
	}
	return nil, fmt.Errorf("%w: %s returned status 404", yfinance.ErrTransport, url)
}

func testConfig() config.Config {
	return config.Config{
		StatementBaseURL: testStatementBase,
		QuoteBaseURL:     testQuoteBase,
		DefaultPeriod:    yfinance.Annual,
	}
}

func newTestServer(t *testing.T, f yfinance.DocumentFetcher, st store.Store) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(f, st, log, testConfig())
}

func statementPage() []string {
	return []string{
		"<title>AAPL Income Statement</title>",
		"<tr><td>Period Ending</td> <td>Sep 28, 2019</td></tr>",
		"<tr><td>Total Revenue</td> <td>260,174&nbsp;&nbsp;</td></tr>",
	}
}

func do(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubFetcher{}, nil)

	rec := do(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatement(t *testing.T) {
	url, err := yfinance.StatementURL(testStatementBase, "AAPL", yfinance.IncomeStatement, yfinance.Quarterly)
	require.NoError(t, err)
	s := newTestServer(t, &stubFetcher{docs: map[string][]string{url: statementPage()}}, nil)

	rec := do(t, s, "/api/statements/aapl/is?period=quarterly")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got yfinance.Statement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, yfinance.IncomeStatement, got.Kind)
	assert.Equal(t, yfinance.Quarterly, got.Period)
	assert.Equal(t, url, got.Source)
	assert.Equal(t, yfinance.Table{
		{"Period Ending Sep "}, {"28,"}, {"2019"}, {"Total Revenue "}, {"260,174"},
	}, got.Table)
}

func TestStatement_DefaultPeriod(t *testing.T) {
	url, err := yfinance.StatementURL(testStatementBase, "AAPL", yfinance.BalanceSheet, yfinance.Annual)
	require.NoError(t, err)
	s := newTestServer(t, &stubFetcher{docs: map[string][]string{url: {"<p>no table</p>"}}}, nil)

	rec := do(t, s, "/api/statements/AAPL/balancesheet")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"table":[]`)
	assert.Contains(t, rec.Body.String(), `"period":"annual"`)
}

func TestStatement_BadRequest(t *testing.T) {
	s := newTestServer(t, &stubFetcher{}, nil)

	for _, path := range []string{
		"/api/statements/AA%20PL/is",
		"/api/statements/AAPL/ledger",
		"/api/statements/AAPL/is?period=monthly",
	} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, s, path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestStatement_FetchFailure(t *testing.T) {
	s := newTestServer(t, &stubFetcher{}, nil)
	rec := do(t, s, "/api/statements/AAPL/cf")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	s = newTestServer(t, &stubFetcher{err: fmt.Errorf("%w: bad base", yfinance.ErrMalformedURL)}, nil)
	rec = do(t, s, "/api/statements/AAPL/cf")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatementHistory(t *testing.T) {
	st, err := sqlite.New(filepath.Join(t.TempDir(), "yf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	docs := map[string][]string{}
	for _, kind := range []yfinance.StatementKind{yfinance.IncomeStatement, yfinance.CashFlow} {
		url, err := yfinance.StatementURL(testStatementBase, "AAPL", kind, yfinance.Annual)
		require.NoError(t, err)
		docs[url] = statementPage()
	}
	s := newTestServer(t, &stubFetcher{docs: docs}, st)

	require.Equal(t, http.StatusOK, do(t, s, "/api/statements/AAPL/is").Code)
	require.Equal(t, http.StatusOK, do(t, s, "/api/statements/AAPL/cf").Code)
	require.Equal(t, http.StatusBadGateway, do(t, s, "/api/statements/AAPL/bs").Code)

	rec := do(t, s, "/api/statements/aapl/history")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var records []store.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	for _, r := range records {
		assert.NotEmpty(t, r.RunID)
		assert.Equal(t, "AAPL", r.Statement.Ticker)
	}

	rec = do(t, s, "/api/statements/AAPL/history?limit=1")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 1)

	rec = do(t, s, "/api/statements/AAPL/history?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatementHistory_NoStore(t *testing.T) {
	s := newTestServer(t, &stubFetcher{}, nil)

	rec := do(t, s, "/api/statements/AAPL/history")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestQuote(t *testing.T) {
	url, err := yfinance.QuoteURL(testQuoteBase, "T")
	require.NoError(t, err)
	feed := []string{"<quote><Name>AT&amp;T Inc.</Name><LastTradePriceOnly>33.08</LastTradePriceOnly></quote>"}
	s := newTestServer(t, &stubFetcher{docs: map[string][]string{url: feed}}, nil)

	rec := do(t, s, "/api/quotes/t")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got yfinance.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "T", got.Ticker)
	assert.Equal(t, "AT&T Inc.", got.Value(yfinance.Name))
	assert.Equal(t, "33.08", got.Value(yfinance.LastTradePrice))

	assert.Equal(t, http.StatusBadRequest, do(t, s, "/api/quotes/bad%20ticker").Code)
	assert.Equal(t, http.StatusBadGateway, do(t, s, "/api/quotes/IBM").Code)
}
