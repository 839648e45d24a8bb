package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/RxDataLab/go-yfinance"
	"github.com/RxDataLab/go-yfinance/internal/config"
	"github.com/RxDataLab/go-yfinance/internal/logger"
	"github.com/RxDataLab/go-yfinance/internal/store"
	"github.com/RxDataLab/go-yfinance/internal/store/sqlite"
)

type options struct {
	kind         string
	period       string
	outputPath   string
	saveOriginal bool
	dbPath       string
}

func main() {
	var opts options

	flag.StringVar(&opts.kind, "kind", "", "Statement kind: is, bs or cf (default: all for tickers, detected for pages)")
	flag.StringVar(&opts.kind, "k", "", "Statement kind (shorthand)")
	flag.StringVar(&opts.period, "period", "", "Period: quarterly or annual (default: YF_DEFAULT_PERIOD or annual)")
	flag.StringVar(&opts.period, "p", "", "Period (shorthand)")
	flag.StringVar(&opts.outputPath, "output", "", "Output JSON file path (default: stdout)")
	flag.StringVar(&opts.outputPath, "o", "", "Output JSON file path (shorthand)")
	flag.BoolVar(&opts.saveOriginal, "save-original", false, "Save the original page next to the JSON")
	flag.BoolVar(&opts.saveOriginal, "s", false, "Save the original page (shorthand)")
	flag.StringVar(&opts.dbPath, "db", "", "Record scraped statements in this sqlite file (or use YF_DB_PATH)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: yfstatement [options] <source>\n\n")
		fmt.Fprintf(os.Stderr, "Scrape financial statement tables from statement pages.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  <source>    Ticker(s), statement page URL or saved page file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  yfstatement -k bs -p quarterly AAPL\n")
		fmt.Fprintf(os.Stderr, "  yfstatement -p annual AAPL,MSFT,IBM\n")
		fmt.Fprintf(os.Stderr, "  yfstatement ./aapl_balancesheet.html\n")
		fmt.Fprintf(os.Stderr, "  yfstatement -s -o aapl.json 'https://finance.yahoo.com/q/bs?s=AAPL&annual'\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  YF_STATEMENT_BASE_URL    Base URL for statement pages\n")
		fmt.Fprintf(os.Stderr, "  YF_DEFAULT_PERIOD        Period when -p is not given\n")
		fmt.Fprintf(os.Stderr, "  YF_DB_PATH               sqlite file for run history\n")
		fmt.Fprintf(os.Stderr, "  YF_LOG_LEVEL             debug, info, warn or error\n")
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: ticker, URL or file path required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Arg(0), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, source string, opts options) error {
	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel)

	p := opts.period
	if p == "" {
		p = string(cfg.DefaultPeriod)
	}
	period, err := yfinance.ParsePeriodType(p)
	if err != nil {
		return err
	}

	var kind *yfinance.StatementKind
	if opts.kind != "" {
		k, err := yfinance.ParseStatementKind(opts.kind)
		if err != nil {
			return err
		}
		kind = &k
	}

	st, err := openStore(opts.dbPath, cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	fetcher := yfinance.NewHTTPFetcher(cfg.HTTPTimeout)

	switch {
	case isURL(source):
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", source)
		lines, err := fetcher.FetchLines(ctx, source)
		if err != nil {
			return fmt.Errorf("failed to fetch page: %w", err)
		}
		k, err := resolveKind(kind, lines)
		if err != nil {
			return err
		}
		stmt := &yfinance.Statement{
			Ticker: yfinance.TickerFromURL(source),
			Kind:   k,
			Period: period,
			Title:  k.Title(),
			Source: source,
			Table:  yfinance.ScrapeStatement(lines, k, period),
		}
		return emitOne(ctx, st, lines, stmt, opts)

	case isFile(source):
		fmt.Fprintf(os.Stderr, "Reading from file: %s\n", source)
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		defer f.Close()

		stmt, lines, err := yfinance.ParseDocument(f, kind, period)
		if err != nil {
			return fmt.Errorf("failed to parse page: %w", err)
		}
		return emitOne(ctx, st, lines, stmt, opts)

	default:
		tickers := splitTickers(source)
		var kinds []yfinance.StatementKind
		if kind != nil {
			kinds = []yfinance.StatementKind{*kind}
		}
		if len(tickers) == 1 && len(kinds) == 1 {
			fmt.Fprintf(os.Stderr, "Fetching %s %s (%s)\n", tickers[0], kinds[0], period)
			stmt, lines, err := yfinance.FetchStatement(ctx, fetcher, cfg.StatementBaseURL, tickers[0], kinds[0], period)
			if err != nil {
				return err
			}
			return emitOne(ctx, st, lines, stmt, opts)
		}
		return emitBatch(ctx, st, fetcher, log, cfg.StatementBaseURL, tickers, kinds, period, opts)
	}
}

func emitOne(ctx context.Context, st store.Store, lines []string, stmt *yfinance.Statement, opts options) error {
	fmt.Fprintf(os.Stderr, "Scraped %s: %d rows\n", stmt.Title, len(stmt.Table))
	record(ctx, st, stmt)

	saveOpts := yfinance.SaveOptions{
		SaveOriginal: opts.saveOriginal,
		OutputDir:    "./output",
	}
	if opts.outputPath != "" {
		saveOpts.OutputPath = opts.outputPath
	} else if opts.saveOriginal {
		saveOpts.OutputPath = yfinance.GenerateFilename(yfinance.MetadataFor(stmt), "json")
	}

	if opts.saveOriginal || opts.outputPath != "" {
		result, err := yfinance.SaveFiles(lines, stmt, saveOpts)
		if err != nil {
			return fmt.Errorf("failed to save files: %w", err)
		}
		if result.OriginalPath != "" {
			fmt.Fprintf(os.Stderr, "Saved original page: %s\n", result.OriginalPath)
		}
		if result.OutputPath != "" {
			fmt.Fprintf(os.Stderr, "Saved JSON output: %s\n", result.OutputPath)
		}
		return nil
	}

	jsonData, err := yfinance.FormatJSON(stmt)
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func emitBatch(ctx context.Context, st store.Store, fetcher yfinance.DocumentFetcher, log *slog.Logger, baseURL string, tickers []string, kinds []yfinance.StatementKind, period yfinance.PeriodType, opts options) error {
	result, err := yfinance.FetchStatementsBatch(ctx, fetcher, yfinance.BatchOptions{
		Tickers: tickers,
		Kinds:   kinds,
		Period:  period,
		BaseURL: baseURL,
		Logger:  log,
	})
	if err != nil && result == nil {
		return err
	}

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}
	for _, stmt := range result.Statements {
		record(ctx, st, stmt)
	}
	fmt.Fprintf(os.Stderr, "Scraped %d/%d statements\n", result.Fetched, result.Requested)

	jsonData, jerr := yfinance.FormatJSONBatch(result.Statements)
	if jerr != nil {
		return fmt.Errorf("failed to format JSON: %w", jerr)
	}
	if opts.outputPath != "" {
		if werr := os.WriteFile(opts.outputPath, jsonData, 0o644); werr != nil {
			return fmt.Errorf("failed to save JSON output: %w", werr)
		}
		fmt.Fprintf(os.Stderr, "Saved JSON output: %s\n", opts.outputPath)
	} else {
		fmt.Println(string(jsonData))
	}

	if err != nil {
		return err
	}
	if result.Fetched == 0 {
		return fmt.Errorf("no statements could be fetched")
	}
	return nil
}

func record(ctx context.Context, st store.Store, stmt *yfinance.Statement) {
	rec, err := st.SaveStatement(ctx, stmt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record run: %v\n", err)
		return
	}
	if rec.RunID != "" {
		fmt.Fprintf(os.Stderr, "Recorded run %s\n", rec.RunID)
	}
}

func openStore(flagPath, envPath string) (store.Store, error) {
	path := flagPath
	if path == "" {
		path = envPath
	}
	if path == "" {
		return &store.NopStore{}, nil
	}
	st, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

func resolveKind(kind *yfinance.StatementKind, lines []string) (yfinance.StatementKind, error) {
	if kind != nil {
		return *kind, nil
	}
	return yfinance.DetectStatementKind(lines)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isFile(source string) bool {
	info, err := os.Stat(source)
	return err == nil && !info.IsDir()
}

func splitTickers(source string) []string {
	var tickers []string
	for _, t := range strings.Split(source, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}
