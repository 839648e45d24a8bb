package store

import (
	"context"
	"time"

	"github.com/RxDataLab/go-yfinance"
)

// Store persists scraped statements. It is a history of runs, never read
// back in place of a fetch.
type Store interface {
	SaveStatement(ctx context.Context, stmt *yfinance.Statement) (Record, error)
	ListStatements(ctx context.Context, ticker string, limit int) ([]Record, error)
	Close() error
}

// Record is one persisted scrape
type Record struct {
	RunID     string              `json:"runId"`
	ScrapedAt time.Time           `json:"scrapedAt"`
	Statement *yfinance.Statement `json:"statement"`
}

type NopStore struct{}

func (s *NopStore) SaveStatement(ctx context.Context, stmt *yfinance.Statement) (Record, error) {
	_ = ctx
	return Record{Statement: stmt}, nil
}

func (s *NopStore) ListStatements(ctx context.Context, ticker string, limit int) ([]Record, error) {
	_ = ctx
	_ = ticker
	_ = limit
	return nil, nil
}

func (s *NopStore) Close() error {
	return nil
}
