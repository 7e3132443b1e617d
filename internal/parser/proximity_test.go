package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/tokenizer"
)

func TestClosestToLabel(t *testing.T) {
	creditLimit := labelRegexps(`Credit\s+Limit`, `Credit\s+Line`)

	tests := []struct {
		name   string
		text   string
		labels []string
		want   string
		wantOK bool
	}{
		{
			name:   "same line preferred",
			text:   "Available Credit 4,000.00\nCredit Limit 5,000.00",
			want:   "₹5,000.00",
			wantOK: true,
		},
		{
			name:   "second alternative",
			text:   "Credit Line $2,500",
			want:   "$2,500",
			wantOK: true,
		},
		{
			name:   "whole document fallback",
			text:   "Credit Limit\n\nsomething 7,500.00\nfar away 1.00",
			want:   "₹7,500.00",
			wantOK: true,
		},
		{
			name: "label absent",
			text: "Available Credit 4,000.00",
		},
		{
			name: "no tokens",
			text: "Credit Limit unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClosestToLabel(tt.text, creditLimit, tokenizer.Extract(tt.text))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClosestToLabel_TieKeepsEarlierToken(t *testing.T) {
	text := "0123456789Credit Limit"
	tokens := []tokenizer.Token{
		{Start: 4, End: 6, Normalized: "₹1", OK: true},
		{Start: 14, End: 16, Normalized: "₹2", OK: true},
	}

	got, ok := ClosestToLabel(text, labelRegexps(`Credit\s+Limit`), tokens)
	assert.True(t, ok)
	assert.Equal(t, "₹1", got)
}

func TestClosestToLabel_FallbackUsesFirstOccurrence(t *testing.T) {
	text := "Credit Limit\nx"
	tokens := []tokenizer.Token{
		{Start: 20, End: 22, Normalized: "₹9", OK: true},
		{Start: 30, End: 32, Normalized: "₹9", OK: true},
		{Start: 40, End: 42, Normalized: "₹8", OK: true},
	}

	got, ok := ClosestToLabel(text, labelRegexps(`Credit\s+Limit`), tokens)
	assert.True(t, ok)
	assert.Equal(t, "₹9", got)
}
