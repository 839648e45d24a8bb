package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/RxDataLab/go-yfinance"
	"github.com/RxDataLab/go-yfinance/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <ticker>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example:\n")
		fmt.Fprintf(os.Stderr, "  %s AAPL\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Prints the quote feed fields for a ticker, then the raw values as JSON.\n")
		os.Exit(1)
	}

	ticker := strings.ToUpper(os.Args[1])
	cfg := config.Load()

	fmt.Fprintf(os.Stderr, "Fetching quote: %s\n", ticker)
	quote, err := yfinance.FetchQuote(context.Background(), yfinance.NewHTTPFetcher(cfg.HTTPTimeout), cfg.QuoteBaseURL, ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(quote.Fields) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no quote fields found for %s\n", ticker)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Printf("           %s %s\n", ticker, quote.Value(yfinance.Name))
	fmt.Println("═══════════════════════════════════════════════════")

	fmt.Printf("%-35s %15s\n", "Field", "Value")
	fmt.Printf("%-35s %15s\n", "─────────────────────────────────", "──────────────")

	for _, field := range yfinance.QuoteFields {
		if field == yfinance.Name {
			continue
		}
		printField(quote, field)
	}

	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Println()

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(quote); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func printField(quote *yfinance.Quote, field yfinance.QuoteField) {
	raw := quote.Value(field)
	if raw == "" {
		fmt.Printf("%-35s %15s\n", field, "N/A")
		return
	}

	v, err := quote.Float(field)
	if err != nil {
		// Values like "59.61B" are already abbreviated
		fmt.Printf("%-35s %15s\n", field, raw)
		return
	}

	switch {
	case v >= 1_000_000_000:
		fmt.Printf("%-35s %14.2fB\n", field, v/1_000_000_000)
	case v >= 1_000_000:
		fmt.Printf("%-35s %14.1fM\n", field, v/1_000_000)
	default:
		fmt.Printf("%-35s %15s\n", field, raw)
	}
}
