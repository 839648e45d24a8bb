package yfinance

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// DefaultStatementBaseURL serves the statement pages
	DefaultStatementBaseURL = "https://finance.yahoo.com/q/"

	// DefaultQuoteBaseURL is the YQL endpoint for the quotes feed
	DefaultQuoteBaseURL = "https://query.yahooapis.com/v1/public/yql"

	quoteQuery    = `select * from yahoo.finance.quotes where symbol in ("%s")`
	quoteTableEnv = "store://datatables.org/alltableswithkeys"
)

var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9.\-^=]{1,15}$`)

// ValidateTicker rejects tickers that cannot be a symbol
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("invalid ticker: %q", ticker)
	}
	return nil
}

// StatementURL builds the statement page URL:
// <base><segment>?s=<TICKER>&<period>
func StatementURL(baseURL, ticker string, kind StatementKind, period PeriodType) (string, error) {
	if err := ValidateTicker(ticker); err != nil {
		return "", err
	}
	if kind.Segment() == "" {
		return "", fmt.Errorf("unknown statement kind %d", int(kind))
	}
	if baseURL == "" {
		baseURL = DefaultStatementBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return fmt.Sprintf("%s%s?s=%s&%s", baseURL, kind.Segment(), url.QueryEscape(strings.ToUpper(ticker)), period), nil
}

// QuoteURL builds the quotes feed query for one ticker
func QuoteURL(baseURL, ticker string) (string, error) {
	if err := ValidateTicker(ticker); err != nil {
		return "", err
	}
	if baseURL == "" {
		baseURL = DefaultQuoteBaseURL
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf(quoteQuery, strings.ToUpper(ticker)))
	q.Set("diagnostics", "true")
	q.Set("env", quoteTableEnv)
	return baseURL + "?" + q.Encode(), nil
}

// TickerFromURL returns the upper-cased ticker in a statement URL's "s"
// parameter, or "" when the URL carries no valid ticker
func TickerFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	ticker := u.Query().Get("s")
	if ValidateTicker(ticker) != nil {
		return ""
	}
	return strings.ToUpper(ticker)
}
