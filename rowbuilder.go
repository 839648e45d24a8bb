package yfinance

import "strings"

// Period labels are collected from tokens whose length falls in this range.
// "Dec", "31,", "2019" all qualify; so does a bare day number.
const (
	minPeriodTokenLen = 2
	maxPeriodTokenLen = 4
	periodLabelTokens = 3
)

// Synthetic section rows appended after the balance sheet period labels
var balanceSheetSections = []Row{{"Assets"}, {"CurrentAssets"}}

// lineState is the row builder's per-line state. A fresh one is used for
// every line so concurrent scrapes never share it.
type lineState struct {
	caption   strings.Builder
	inNumeric bool
	rows      []Row
}

func (st *lineState) emitCaption() {
	st.rows = append(st.rows, Row{st.caption.String()})
	st.caption.Reset()
}

// BuildRows runs the row builder over the tokens of one stripped line using
// the default triggers. done reports that the line was the period header and
// scraping must stop; in that case the statement title has not been added yet.
func BuildRows(tokens []string, kind StatementKind) (rows []Row, done bool) {
	return NewScraper().buildRows(tokens, kind)
}

func (s *Scraper) buildRows(tokens []string, kind StatementKind) ([]Row, bool) {
	st := &lineState{}
	first := true

	for i, tok := range tokens {
		if tok == "" {
			continue
		}

		switch ClassifyToken(tok) {
		case TokenPlaceholder:
			if first {
				return []Row{{Placeholder}}, false
			}

		case TokenHeader:
			if tok == s.Triggers.PeriodHeader {
				st.rows = append(st.rows, s.periodRows(tokens[i+1:], kind)...)
				return st.rows, true
			}
			st.inNumeric = false
			st.caption.WriteString(tok)
			st.caption.WriteByte(' ')
			if s.isSection(st.caption.String()) {
				st.emitCaption()
			}

		case TokenNumeric:
			if !st.inNumeric {
				if st.caption.Len() > 0 {
					st.emitCaption()
				}
				st.inNumeric = true
			}
			st.rows = append(st.rows, Row{tok})
		}

		first = false
	}

	return st.rows, false
}

// periodRows groups the period label tokens following the labels trigger
// into one row per period
func (s *Scraper) periodRows(tokens []string, kind StatementKind) []Row {
	var rows []Row

	start := -1
	for i, tok := range tokens {
		if tok == s.Triggers.PeriodLabels {
			start = i + 1
			break
		}
	}

	if start != -1 {
		group := make([]string, 0, periodLabelTokens)
		for _, tok := range tokens[start:] {
			if len(tok) < minPeriodTokenLen || len(tok) > maxPeriodTokenLen {
				continue
			}
			group = append(group, tok)
			if len(group) == periodLabelTokens {
				rows = append(rows, Row{strings.Join(group, " ")})
				group = group[:0]
			}
		}
	}

	if kind == BalanceSheet {
		for _, r := range balanceSheetSections {
			rows = append(rows, append(Row(nil), r...))
		}
	}

	return rows
}

func (s *Scraper) isSection(caption string) bool {
	caption = strings.TrimSpace(caption)
	for _, section := range s.Triggers.Sections {
		if caption == section {
			return true
		}
	}
	return false
}
