package yfinance

import (
	"fmt"
	"io"
	"strings"
)

// ParseDocument reads a statement page from r and scrapes it. When kind is
// nil the statement kind is detected from the page text.
func ParseDocument(r io.Reader, kind *StatementKind, period PeriodType) (*Statement, []string, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}

	k := IncomeStatement
	if kind != nil {
		k = *kind
	} else {
		k, err = DetectStatementKind(lines)
		if err != nil {
			return nil, nil, err
		}
	}

	return &Statement{
		Kind:   k,
		Period: period,
		Title:  k.Title(),
		Table:  ScrapeStatement(lines, k, period),
	}, lines, nil
}

// detectionOrder maps the text naming each statement to its kind
var detectionOrder = []struct {
	needle string
	kind   StatementKind
}{
	{"Income Statement", IncomeStatement},
	{"Balance Sheet", BalanceSheet},
	{"Cash Flow", CashFlow},
}

// DetectStatementKind examines the page text to determine which statement
// it holds. The first line naming exactly one statement decides; navigation
// lines linking to all three are skipped. Pages without such a line fall
// back to a single /q/<segment> URL in the raw markup.
func DetectStatementKind(lines []string) (StatementKind, error) {
	for _, line := range lines {
		text := StripMarkup(line)
		if text == "" {
			continue
		}
		if k, ok := soleMatch(text, func(text string, k StatementKind, needle string) bool {
			return strings.Contains(text, needle)
		}); ok {
			return k, nil
		}
	}

	// e.g. <link rel="canonical" href=".../q/balancesheet?s=AAPL">
	for _, line := range lines {
		if k, ok := soleMatch(line, func(line string, k StatementKind, _ string) bool {
			return strings.Contains(line, "/q/"+k.Segment())
		}); ok {
			return k, nil
		}
	}

	return 0, fmt.Errorf("could not detect statement kind")
}

// soleMatch reports the kind when exactly one statement matches s
func soleMatch(s string, match func(s string, k StatementKind, needle string) bool) (StatementKind, bool) {
	found, n := StatementKind(0), 0
	for _, d := range detectionOrder {
		if match(s, d.kind, d.needle) {
			found = d.kind
			n++
		}
	}
	return found, n == 1
}
