package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/RxDataLab/go-yfinance"
	"github.com/RxDataLab/go-yfinance/internal/store"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveStatement(ctx context.Context, stmt *yfinance.Statement) (store.Record, error) {
	if stmt == nil {
		return store.Record{}, fmt.Errorf("sqlite: nil statement")
	}

	rows, err := json.Marshal(stmt.Table)
	if err != nil {
		return store.Record{}, fmt.Errorf("sqlite: encode table: %w", err)
	}

	rec := store.Record{
		RunID:     uuid.NewString(),
		ScrapedAt: s.now().UTC().Truncate(time.Second),
		Statement: stmt,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO statements (
			run_id, ticker, kind, period, title, source, row_count, rows_json, scraped_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.RunID,
		strings.ToUpper(stmt.Ticker),
		stmt.Kind.Segment(),
		string(stmt.Period),
		stmt.Title,
		stmt.Source,
		len(stmt.Table),
		string(rows),
		rec.ScrapedAt.Format(time.RFC3339),
	)
	if err != nil {
		return store.Record{}, fmt.Errorf("sqlite: insert statement: %w", err)
	}

	return rec, nil
}

// ListStatements returns the most recent runs for ticker, newest first
func (s *Store) ListStatements(ctx context.Context, ticker string, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, ticker, kind, period, title, source, rows_json, scraped_at
		FROM statements
		WHERE ticker = ?
		ORDER BY scraped_at DESC, seq DESC
		LIMIT ?
	`, strings.ToUpper(ticker), limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query statements: %w", err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var (
			rec                   store.Record
			stmt                  yfinance.Statement
			kind, period, encoded string
			scrapedAt             string
		)
		if err := rows.Scan(&rec.RunID, &stmt.Ticker, &kind, &period, &stmt.Title, &stmt.Source, &encoded, &scrapedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan statement: %w", err)
		}

		if stmt.Kind, err = yfinance.ParseStatementKind(kind); err != nil {
			return nil, fmt.Errorf("sqlite: run %s: %w", rec.RunID, err)
		}
		stmt.Period = yfinance.PeriodType(period)
		if err := json.Unmarshal([]byte(encoded), &stmt.Table); err != nil {
			return nil, fmt.Errorf("sqlite: run %s: decode table: %w", rec.RunID, err)
		}
		if rec.ScrapedAt, err = time.Parse(time.RFC3339, scrapedAt); err != nil {
			return nil, fmt.Errorf("sqlite: run %s: %w", rec.RunID, err)
		}

		rec.Statement = &stmt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS statements (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			ticker TEXT NOT NULL,
			kind TEXT NOT NULL,
			period TEXT NOT NULL,
			title TEXT NOT NULL,
			source TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			rows_json TEXT NOT NULL,
			scraped_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS statements_ticker_idx ON statements (ticker, scraped_at);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}
