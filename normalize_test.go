package yfinance

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AT&amp;T Inc.", "AT&T Inc."},
		{"  Apple   Inc.\t", "Apple Inc."},
		{"Procter &amp; Gamble&nbsp;Co", "Procter & Gamble Co"},
		{"Soci&#233;t&#xE9; G&#233;n&#233;rale", "Société Générale"},
		{"a&#160;b", "a b"},
		{"&lt;b&gt;", "<b>"},
		{"&#0; &#99999999;", "&#0; &#99999999;"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
