package yfinance

import (
	"regexp"
	"strconv"
	"strings"
)

// Entities seen in quote feed values, e.g. company names like "AT&amp;T Inc."
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&apos;", "'",
	"&nbsp;", " ",
)

var numericEntityPattern = regexp.MustCompile(`&#(x[0-9A-Fa-f]+|\d+);`)

// NormalizeText decodes XML entities and collapses whitespace in a single
// feed value. Unlike StripMarkup it keeps non-breaking spaces as spaces.
func NormalizeText(text string) string {
	text = entityReplacer.Replace(text)

	text = numericEntityPattern.ReplaceAllStringFunc(text, func(match string) string {
		body := match[2 : len(match)-1]
		base := 10
		if strings.HasPrefix(body, "x") {
			body, base = body[1:], 16
		}
		code, err := strconv.ParseInt(body, base, 32)
		if err != nil || code <= 0 || code >= 0x110000 {
			return match
		}
		if code == 0xA0 {
			return " "
		}
		return string(rune(code))
	})

	return strings.Join(strings.Fields(text), " ")
}
