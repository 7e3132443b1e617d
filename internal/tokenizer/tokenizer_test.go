package tokenizer

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

func TestCanonicalize(t *testing.T) {
	got := Canonicalize("Total\u00a0Dues\u200b1,234")
	assert.Equal(t, "Total Dues 1,234", got)
}

func TestExtract(t *testing.T) {
	text := "Total Dues ₹1,234.50\nCard 4111111111111111"
	tokens := Extract(text)
	require.Len(t, tokens, 2)

	assert.Equal(t, "₹1,234.50", tokens[0].Normalized)
	assert.True(t, tokens[0].OK)
	assert.Equal(t, "₹1,234.50", tokens[0].Raw)
	assert.Equal(t, "₹1,234.50", text[tokens[0].Start:tokens[0].End])

	assert.Equal(t, "₹4,111,111,111,111,111", tokens[1].Normalized)
}

func TestExtract_SortedByStart(t *testing.T) {
	text := "2024 Purchases 3,400.00 Payments (5,000.00) Rs. 250 $12"
	tokens := Extract(text)
	require.NotEmpty(t, tokens)
	assert.True(t, sort.SliceIsSorted(tokens, func(i, j int) bool {
		return tokens[i].Start < tokens[j].Start
	}))
	for _, tok := range tokens {
		assert.Less(t, tok.Start, tok.End)
	}
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("no numbers here"))
}

func TestDedup(t *testing.T) {
	tokens := []Token{
		{Start: 0, End: 4, Normalized: "₹100", OK: true},
		{Start: 5, End: 9, Normalized: "₹200", OK: true},
		{Start: 10, End: 14, Normalized: "₹100", OK: true},
		{Start: 15, End: 16, Raw: "x", OK: false},
	}
	got := Dedup(tokens)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 5, got[1].Start)

	seen := map[string]bool{}
	for _, tok := range Dedup(Extract("100 200 100 300 200 100")) {
		assert.False(t, seen[tok.Normalized], "duplicate %s", tok.Normalized)
		seen[tok.Normalized] = true
	}
}

func TestLines(t *testing.T) {
	got := Lines("  first  \n\n\t\nsecond\r\n third")
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestLineMap(t *testing.T) {
	text := "Account Summary\n12,000.00 250.00\n\nPayment Due Date 04/15/2024"
	entries := LineMap(text)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Index)
	assert.Len(t, entries[0].Numbers, 2)
	assert.Equal(t, 3, entries[1].Index)
}

func TestTokenMid(t *testing.T) {
	assert.Equal(t, 15, Token{Start: 10, End: 20}.Mid())
}

func TestWriteLineMap(t *testing.T) {
	var b strings.Builder
	err := WriteLineMap(&b, []models.LineEntry{
		{Index: 3, Line: "Total Dues 1,234.50 75.00", Numbers: []string{" 1,234.50", " 75.00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "0003: Total Dues 1,234.50 75.00\n      ->  1,234.50 |  75.00\n", b.String())
}
