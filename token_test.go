package yfinance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		tok  string
		want TokenKind
	}{
		{"-", TokenPlaceholder},
		{"Revenue", TokenHeader},
		{"Q1", TokenHeader},
		{"Équité", TokenHeader},
		{"1,234", TokenNumeric},
		{"2019", TokenNumeric},
		{"31,", TokenNumeric},
		{"$5", TokenNumeric},
		{"€1,234", TokenNumeric},
		{"£5", TokenNumeric},
		{"¥300", TokenNumeric},
		{"€", TokenOther},
		{"€€5", TokenOther},
		{"(248,028)", TokenNumeric},
		{"-5", TokenNumeric},
		{"5", TokenOther},
		{"$", TokenOther},
		{"--", TokenOther},
		{"%", TokenOther},
		{"", TokenOther},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyToken(tt.tok), "token %q classified as %s", tt.tok, ClassifyToken(tt.tok))
		})
	}
}
