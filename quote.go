package yfinance

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// QuoteField is an element name in the quotes feed
type QuoteField string

const (
	FiftyDayMovingAverage      QuoteField = "FiftydayMovingAverage"
	TwoHundredDayMovingAverage QuoteField = "TwoHundreddayMovingAverage"
	Ask                        QuoteField = "Ask"
	AverageDailyVolume         QuoteField = "AverageDailyVolume"
	Bid                        QuoteField = "Bid"
	BookValue                  QuoteField = "BookValue"
	Change                     QuoteField = "Change"
	ChangePercent              QuoteField = "PercentChange"
	ChangeFromYearLow          QuoteField = "ChangeFromYearLow"
	PreviousClose              QuoteField = "PreviousClose"
	DaysHigh                   QuoteField = "DaysHigh"
	DaysLow                    QuoteField = "DaysLow"
	DividendShare              QuoteField = "DividendShare"
	EarningsShare              QuoteField = "EarningsShare"
	EBITDA                     QuoteField = "EBITDA"
	EPSEstimateCurrentYear     QuoteField = "EPSEstimateCurrentYear"
	EPSEstimateNextQuarter     QuoteField = "EPSEstimateNextQuarter"
	EPSEstimateNextYear        QuoteField = "EPSEstimateNextYear"
	LastTradePrice             QuoteField = "LastTradePriceOnly"
	MarketCapitalization       QuoteField = "MarketCapitalization"
	Name                       QuoteField = "Name"
	Open                       QuoteField = "Open"
	PERatio                    QuoteField = "PERatio"
	PEGRatio                   QuoteField = "PEGRatio"
	ShortRatio                 QuoteField = "ShortRatio"
	YearHigh                   QuoteField = "YearHigh"
	YearLow                    QuoteField = "YearLow"
)

// QuoteFields lists every field FetchQuote extracts, in display order
var QuoteFields = []QuoteField{
	Name, LastTradePrice, Open, PreviousClose, DaysHigh, DaysLow, YearHigh, YearLow,
	Ask, Bid, Change, ChangePercent, ChangeFromYearLow,
	FiftyDayMovingAverage, TwoHundredDayMovingAverage, AverageDailyVolume,
	MarketCapitalization, EBITDA, BookValue, DividendShare, EarningsShare,
	EPSEstimateCurrentYear, EPSEstimateNextQuarter, EPSEstimateNextYear,
	PERatio, PEGRatio, ShortRatio,
}

func (f QuoteField) openTag() string  { return "<" + string(f) + ">" }
func (f QuoteField) closeTag() string { return "</" + string(f) + ">" }

// ExtractQuoteField returns the text between <field> and </field>. When
// several lines carry the field the last one wins.
func ExtractQuoteField(lines []string, field QuoteField) (string, bool) {
	from, to := field.openTag(), field.closeTag()

	value, found := "", false
	for _, line := range lines {
		start := strings.Index(line, from)
		if start == -1 {
			continue
		}
		start += len(from)
		end := strings.Index(line[start:], to)
		if end == -1 {
			continue
		}
		value, found = line[start:start+end], true
	}
	return value, found
}

// Quote holds the raw quote feed values for one ticker
type Quote struct {
	Ticker string                `json:"ticker"`
	Fields map[QuoteField]string `json:"fields"`
}

// ParseQuote extracts every known field from the feed lines
func ParseQuote(ticker string, lines []string) *Quote {
	q := &Quote{
		Ticker: strings.ToUpper(ticker),
		Fields: make(map[QuoteField]string),
	}
	for _, field := range QuoteFields {
		if v, ok := ExtractQuoteField(lines, field); ok {
			q.Fields[field] = NormalizeText(v)
		}
	}
	return q
}

// Value returns the raw value of field, "" when absent
func (q *Quote) Value(field QuoteField) string {
	return q.Fields[field]
}

// Float parses field as a number. Values like "+1.25" and "3.4%" are accepted.
func (q *Quote) Float(field QuoteField) (float64, error) {
	raw, ok := q.Fields[field]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%s: no value", field)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimPrefix(raw, "+"), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// FetchQuote fetches the quotes feed for ticker once and extracts all fields
func FetchQuote(ctx context.Context, fetcher DocumentFetcher, baseURL, ticker string) (*Quote, error) {
	url, err := QuoteURL(baseURL, ticker)
	if err != nil {
		return nil, err
	}
	lines, err := fetcher.FetchLines(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}
	return ParseQuote(ticker, lines), nil
}
