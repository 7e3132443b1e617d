// Package money turns raw numeric substrings from statement text into
// canonical display strings such as "₹12,000.00" or "$1,234".
package money

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	Rupee  = "₹"
	Dollar = "$"
)

var (
	noiseTokens   = regexp.MustCompile(`(?i)\b(AAN|ANN|A/\w+)\b`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	parenGroup    = regexp.MustCompile(`\(([\d,.]+)\)`)
	rupeeHint     = regexp.MustCompile(`₹|Rs\.?|INR`)
	dollarHint    = regexp.MustCompile(`\$|USD|US\$`)
	numericRun    = regexp.MustCompile(`-?\d{1,3}[,0-9]*(?:\.\d+)?|-?\d+\.\d+`)

	// pipeline-side token cleaner keeps digits, separators, sign, parentheses
	// and currency markers only
	tokenNoise = regexp.MustCompile(`[^\d.,\-()₹Rs$]`)
)

// Clean strips statement abbreviations, zero-width and non-breaking spaces,
// collapses whitespace and trims surrounding punctuation.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = noiseTokens.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\u200b", "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.Trim(s, " ,;:")
}

// Normalize canonicalizes a raw amount. Parenthesised values are kept
// positive. The currency symbol is ₹ when a rupee marker is present, $ when a
// dollar marker is present, and ₹ otherwise.
//
// When no numeric run exists the cleaned text is returned unchanged (ok is
// true) unless it is empty; use IsCanonical to tell the two apart.
func Normalize(raw string) (string, bool) {
	s := Clean(raw)
	if m := parenGroup.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	symbol := Rupee
	if !rupeeHint.MatchString(s) && dollarHint.MatchString(s) {
		symbol = Dollar
	}

	run := numericRun.FindString(strings.ReplaceAll(s, " ", ""))
	if run == "" {
		return s, s != ""
	}
	num := strings.ReplaceAll(run, ",", "")

	d, err := decimal.NewFromString(num)
	if err != nil {
		return s, true
	}
	return Format(d, symbol, strings.Contains(num, ".")), true
}

// Format renders d with thousands grouping behind symbol. Fractional values
// always carry exactly two decimals; whole values carry none.
func Format(d decimal.Decimal, symbol string, fractional bool) string {
	r := d.Truncate(0)
	if fractional {
		r = d.Round(2)
	}
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	whole := humanize.BigComma(r.Truncate(0).BigInt())
	if !fractional {
		return symbol + sign + whole
	}
	fixed := r.StringFixed(2)
	return symbol + sign + whole + fixed[strings.LastIndex(fixed, "."):]
}

// CleanNumericToken prepares a matched token for Normalize the way the
// extraction pipeline expects: foreign characters and a leading minus are
// dropped, and a parenthesised group wins over the rest of the token.
func CleanNumericToken(tok string) (string, bool) {
	s := tokenNoise.ReplaceAllString(tok, "")
	if m := parenGroup.FindStringSubmatch(s); m != nil {
		return Normalize(m[1])
	}
	s = strings.Trim(s, " ,")
	s = strings.TrimLeft(s, "-")
	return Normalize(s)
}

var canonicalShape = regexp.MustCompile(`^[₹$]-?\d{1,3}(?:,\d{3})*(?:\.\d{2})?$`)

// IsCanonical reports whether s is a canonical money string.
func IsCanonical(s string) bool {
	return canonicalShape.MatchString(s)
}

// Amount returns the numeric value of the first amount in s, ignoring
// currency markers and grouping.
func Amount(s string) (decimal.Decimal, bool) {
	run := numericRun.FindString(strings.ReplaceAll(s, " ", ""))
	if run == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(run, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
