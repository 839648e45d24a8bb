package yfinance

import (
	"context"
	"fmt"
	"strings"
)

// StatementKind identifies which of the three financial reports is being scraped
type StatementKind int

const (
	IncomeStatement StatementKind = iota
	BalanceSheet
	CashFlow
)

// Title returns the caption used as row 0 of a scraped table
func (k StatementKind) Title() string {
	switch k {
	case IncomeStatement:
		return "Income Statement"
	case BalanceSheet:
		return "Balance Sheet"
	case CashFlow:
		return "Statement of Cash Flows"
	default:
		return ""
	}
}

// Segment returns the URL path segment for the statement page
func (k StatementKind) Segment() string {
	switch k {
	case IncomeStatement:
		return "incomestatement"
	case BalanceSheet:
		return "balancesheet"
	case CashFlow:
		return "cashflow"
	default:
		return ""
	}
}

func (k StatementKind) String() string {
	if s := k.Segment(); s != "" {
		return s
	}
	return fmt.Sprintf("StatementKind(%d)", int(k))
}

// MarshalText encodes the kind as its URL segment
func (k StatementKind) MarshalText() ([]byte, error) {
	if k.Segment() == "" {
		return nil, fmt.Errorf("unknown statement kind %d", int(k))
	}
	return []byte(k.Segment()), nil
}

// UnmarshalText accepts anything ParseStatementKind does
func (k *StatementKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStatementKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseStatementKind accepts the URL segment, the short alias (is, bs, cf)
// or the statement title, case-insensitively
func ParseStatementKind(s string) (StatementKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "is", "income", "incomestatement", "income statement":
		return IncomeStatement, nil
	case "bs", "balance", "balancesheet", "balance sheet":
		return BalanceSheet, nil
	case "cf", "cash", "cashflow", "cash flow", "statement of cash flows":
		return CashFlow, nil
	default:
		return 0, fmt.Errorf("unknown statement kind: %q", s)
	}
}

// PeriodType is the reporting cadence; it also bounds how many lines are scraped
type PeriodType string

const (
	Quarterly PeriodType = "quarterly"
	Annual    PeriodType = "annual"
)

// Row budgets counted from the net-income trigger line
const (
	QuarterlyRowBudget = 17
	AnnualRowBudget    = 14
)

// RowBudget returns the number of counted lines after which scraping stops.
// Unknown period types have no budget (0), so the whole document is consumed.
func (p PeriodType) RowBudget() int {
	switch p {
	case Quarterly:
		return QuarterlyRowBudget
	case Annual:
		return AnnualRowBudget
	default:
		return 0
	}
}

// ParsePeriodType validates a period string
func ParsePeriodType(s string) (PeriodType, error) {
	switch p := PeriodType(strings.ToLower(strings.TrimSpace(s))); p {
	case Quarterly, Annual:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period type: %q (want quarterly or annual)", s)
	}
}

// Row is one reconstructed line of a statement table
type Row []string

// Table is the ordered list of rows recovered from a statement page
type Table []Row

// Statement is a scraped table together with what was requested
type Statement struct {
	Ticker string        `json:"ticker"`
	Kind   StatementKind `json:"kind"`
	Period PeriodType    `json:"period"`
	Title  string        `json:"title"`
	Source string        `json:"source,omitempty"`
	Table  Table         `json:"table"`
}

// Triggers are the literal strings that drive the scraper's state machines.
// The page layout is matched purely on content, so these are the knobs to
// turn when the source page changes wording.
type Triggers struct {
	// Start switches the assembler from awaiting-start to scraping
	Start string
	// Budget switches on line counting for the row budget
	Budget string
	// PeriodHeader marks the navigation line that lists the period columns
	PeriodHeader string
	// PeriodLabels is the token after which period labels are collected
	PeriodLabels string
	// Sections are captions emitted as soon as the caption buffer matches one
	Sections []string
}

// DefaultTriggers returns the triggers matching the statement pages
func DefaultTriggers() Triggers {
	return Triggers{
		Start:        "Period Ending",
		Budget:       "Net Income Applicable To Common Shares",
		PeriodHeader: "Get",
		PeriodLabels: "Ending",
		Sections: []string{
			"Assets",
			"Liabilities",
			"Stockholders' Equity",
			"Operating Activities, Cash Flows Provided By or Used In",
			"Investing Activities, Cash Flows Provided By or Used In",
			"Financing Activities, Cash Flows Provided By or Used In",
		},
	}
}

// Scraper reconstructs statement tables from raw page lines
type Scraper struct {
	Triggers Triggers
}

// NewScraper returns a scraper using DefaultTriggers
func NewScraper() *Scraper {
	return &Scraper{Triggers: DefaultTriggers()}
}

// ScrapeStatement scrapes lines with the default triggers
func ScrapeStatement(lines []string, kind StatementKind, period PeriodType) Table {
	return NewScraper().Scrape(lines, kind, period)
}

// Scrape walks the document once. Nothing is collected until a line contains
// the start trigger; the budget trigger then limits how many more lines are
// read. A period-header line ends the scrape immediately.
func (s *Scraper) Scrape(lines []string, kind StatementKind, period PeriodType) Table {
	table := Table{}
	budget := period.RowBudget()

	scraping := false
	counting := false
	counted := 0

	for _, line := range lines {
		if !scraping && strings.Contains(line, s.Triggers.Start) {
			scraping = true
		}
		if strings.Contains(line, s.Triggers.Budget) {
			counting = true
		}
		if counting {
			counted++
		}

		if scraping {
			if stripped := StripMarkup(line); stripped != "" {
				rows, done := s.buildRows(strings.Fields(stripped), kind)
				table = append(table, rows...)
				if done {
					return append(Table{{kind.Title()}}, table...)
				}
			}
		}

		if budget > 0 && counted >= budget {
			break
		}
	}

	return table
}

// FetchStatement downloads the statement page for ticker and scrapes it.
// A fetch failure yields a nil statement; a page without the start trigger
// yields an empty table and no error.
func FetchStatement(ctx context.Context, fetcher DocumentFetcher, baseURL, ticker string, kind StatementKind, period PeriodType) (*Statement, []string, error) {
	url, err := StatementURL(baseURL, ticker, kind, period)
	if err != nil {
		return nil, nil, err
	}

	lines, err := fetcher.FetchLines(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s for %s: %w", kind, ticker, err)
	}

	return &Statement{
		Ticker: strings.ToUpper(ticker),
		Kind:   kind,
		Period: period,
		Title:  kind.Title(),
		Source: url,
		Table:  ScrapeStatement(lines, kind, period),
	}, lines, nil
}
