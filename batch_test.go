package yfinance_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RxDataLab/go-yfinance"
)

const batchBase = "http://statements.test/q/"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustStatementURL(t *testing.T, ticker string, kind yfinance.StatementKind, period yfinance.PeriodType) string {
	t.Helper()
	u, err := yfinance.StatementURL(batchBase, ticker, kind, period)
	require.NoError(t, err)
	return u
}

func TestFetchStatementsBatch(t *testing.T) {
	page := []string{
		"<tr><td>Period Ending</td> <td>Dec 31, 2019</td></tr>",
		"<tr><td>Total Revenue</td> <td>100</td></tr>",
	}
	f := &fakeFetcher{docs: map[string][]string{
		mustStatementURL(t, "AAPL", yfinance.IncomeStatement, yfinance.Annual): page,
		mustStatementURL(t, "AAPL", yfinance.CashFlow, yfinance.Annual):        page,
		mustStatementURL(t, "MSFT", yfinance.IncomeStatement, yfinance.Annual): page,
	}}

	res, err := yfinance.FetchStatementsBatch(context.Background(), f, yfinance.BatchOptions{
		Tickers: []string{"aapl", "msft"},
		Kinds:   []yfinance.StatementKind{yfinance.IncomeStatement, yfinance.CashFlow},
		Period:  yfinance.Annual,
		BaseURL: batchBase,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Requested)
	assert.Equal(t, 3, res.Fetched)
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], yfinance.ErrTransport)
	assert.Len(t, f.calls, 4)

	require.Len(t, res.Statements, 3)
	assert.Equal(t, "AAPL", res.Statements[0].Ticker)
	assert.Equal(t, yfinance.IncomeStatement, res.Statements[0].Kind)
	assert.Equal(t, yfinance.CashFlow, res.Statements[1].Kind)
	assert.Equal(t, "MSFT", res.Statements[2].Ticker)
	assert.Equal(t, yfinance.Table{
		{"Period Ending Dec "}, {"31,"}, {"2019"}, {"Total Revenue "}, {"100"},
	}, res.Statements[2].Table)
}

func TestFetchStatementsBatch_DefaultKinds(t *testing.T) {
	f := &fakeFetcher{docs: map[string][]string{}}

	res, err := yfinance.FetchStatementsBatch(context.Background(), f, yfinance.BatchOptions{
		Tickers: []string{"IBM"},
		Period:  yfinance.Quarterly,
		BaseURL: batchBase,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 0, res.Fetched)
	assert.Len(t, res.Errors, 3)
	assert.Empty(t, res.Statements)
	assert.Equal(t, []string{
		mustStatementURL(t, "IBM", yfinance.IncomeStatement, yfinance.Quarterly),
		mustStatementURL(t, "IBM", yfinance.BalanceSheet, yfinance.Quarterly),
		mustStatementURL(t, "IBM", yfinance.CashFlow, yfinance.Quarterly),
	}, f.calls)
}

func TestFetchStatementsBatch_Validation(t *testing.T) {
	f := &fakeFetcher{}
	ctx := context.Background()

	_, err := yfinance.FetchStatementsBatch(ctx, f, yfinance.BatchOptions{Period: yfinance.Annual})
	assert.Error(t, err)

	_, err = yfinance.FetchStatementsBatch(ctx, f, yfinance.BatchOptions{Tickers: []string{"AAPL"}, Period: "monthly"})
	assert.Error(t, err)

	_, err = yfinance.FetchStatementsBatch(ctx, f, yfinance.BatchOptions{Tickers: []string{"AAPL", "no way"}, Period: yfinance.Annual})
	assert.Error(t, err)

	assert.Empty(t, f.calls)
}

func TestFetchStatementsBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{docs: map[string][]string{}}
	res, err := yfinance.FetchStatementsBatch(ctx, f, yfinance.BatchOptions{
		Tickers: []string{"AAPL"},
		Period:  yfinance.Annual,
		Logger:  quietLogger(),
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Fetched)
	assert.Empty(t, f.calls)
}
