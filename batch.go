package yfinance

import (
	"context"
	"fmt"
	"log/slog"
)

// BatchOptions configures a batch scrape
type BatchOptions struct {
	Tickers []string        // Required: tickers to scrape
	Kinds   []StatementKind // Optional: statements per ticker, default all three
	Period  PeriodType      // Required: quarterly or annual
	BaseURL string          // Optional: statement base URL, default DefaultStatementBaseURL
	Logger  *slog.Logger    // Optional: progress logging, default slog.Default()
}

// BatchResult contains the results of a batch scrape
type BatchResult struct {
	Statements []*Statement
	Requested  int     // Number of ticker/kind pairs requested
	Fetched    int     // Number actually fetched and scraped
	Errors     []error // Any errors encountered during processing
}

// FetchStatementsBatch fetches and scrapes every requested ticker/kind pair
// in order. A failed fetch is recorded in Errors and the batch continues.
func FetchStatementsBatch(ctx context.Context, fetcher DocumentFetcher, opts BatchOptions) (*BatchResult, error) {
	if len(opts.Tickers) == 0 {
		return nil, fmt.Errorf("at least one ticker is required")
	}
	if _, err := ParsePeriodType(string(opts.Period)); err != nil {
		return nil, err
	}
	for _, t := range opts.Tickers {
		if err := ValidateTicker(t); err != nil {
			return nil, err
		}
	}

	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = []StatementKind{IncomeStatement, BalanceSheet, CashFlow}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	result := &BatchResult{
		Statements: make([]*Statement, 0),
		Errors:     make([]error, 0),
		Requested:  len(opts.Tickers) * len(kinds),
	}

	log.Info("starting batch", "tickers", len(opts.Tickers), "kinds", len(kinds), "period", opts.Period)

	i := 0
	for _, ticker := range opts.Tickers {
		for _, kind := range kinds {
			i++
			if err := ctx.Err(); err != nil {
				return result, err
			}

			stmt, _, err := FetchStatement(ctx, fetcher, opts.BaseURL, ticker, kind, opts.Period)
			if err != nil {
				log.Warn("statement failed", "ticker", ticker, "kind", kind, "error", err)
				result.Errors = append(result.Errors, err)
				continue
			}

			log.Debug("statement scraped", "ticker", ticker, "kind", kind, "rows", len(stmt.Table), "progress", fmt.Sprintf("%d/%d", i, result.Requested))
			result.Statements = append(result.Statements, stmt)
			result.Fetched++
		}
	}

	log.Info("batch finished", "fetched", result.Fetched, "requested", result.Requested, "errors", len(result.Errors))
	return result, nil
}
