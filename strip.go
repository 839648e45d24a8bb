package yfinance

import "strings"

// Escapes removed by StripMarkup. They decode to nothing: the statement pages
// use them only as cell padding.
var strippedEscapes = []string{
	"&nbsp;",
	"&nbsp",
}

// StripMarkup removes every <...> fragment from a single line and drops
// non-breaking space escapes. Each pass pairs the first '<' with the next '>'
// after it. An unmatched bracket ends stripping for the line and the rest of
// the markup is left in place; this is not an HTML parser.
func StripMarkup(line string) string {
	for {
		open := strings.IndexByte(line, '<')
		if open == -1 {
			break
		}
		end := strings.IndexByte(line[open:], '>')
		if end == -1 {
			break
		}
		line = line[:open] + line[open+end+1:]
	}

	for _, esc := range strippedEscapes {
		line = strings.ReplaceAll(line, esc, "")
	}

	return strings.TrimSpace(line)
}
