package yfinance

import (
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a whitespace-delimited fragment of a stripped line
type TokenKind int

const (
	TokenOther       TokenKind = iota // punctuation and other noise, ignored
	TokenHeader                       // caption fragment, starts with a letter
	TokenNumeric                      // data value, possibly signed or with a currency mark
	TokenPlaceholder                  // lone dash, no data reported
)

// Placeholder is the missing-data marker used by statement pages
const Placeholder = "-"

func (k TokenKind) String() string {
	switch k {
	case TokenHeader:
		return "header"
	case TokenNumeric:
		return "numeric"
	case TokenPlaceholder:
		return "placeholder"
	default:
		return "other"
	}
}

// ClassifyToken decides how the row builder treats tok. Header fragments win
// over numerics, so "Q1" is a caption fragment.
func ClassifyToken(tok string) TokenKind {
	if tok == Placeholder {
		return TokenPlaceholder
	}
	if tok == "" {
		return TokenOther
	}
	first, size := utf8.DecodeRuneInString(tok)
	if unicode.IsLetter(first) {
		return TokenHeader
	}
	// a sign or currency mark may precede the digits, e.g. "-5" or "€1,234"
	rest := tok[size:]
	if rest == "" {
		return TokenOther
	}
	if second, _ := utf8.DecodeRuneInString(rest); isDigit(first) || isDigit(second) {
		return TokenNumeric
	}
	return TokenOther
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
