// Package tokenizer finds candidate monetary and numeric substrings in
// linearized statement text, together with their byte offsets.
package tokenizer

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/money"
)

var (
	// optional currency marker, then a signed integer or decimal with
	// optional thousands grouping
	amountPattern = regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR|\$)?\s*-?\d{1,3}(?:[,\d]*)?(?:\.\d+)?`)
	// bare 4+ digit runs: card and account numbers, years
	longNumberPattern = regexp.MustCompile(`\b\d{4,}\b`)
)

// overlapTolerance is how close (in bytes) two match starts may be before the
// long-number match is considered a duplicate of an amount match.
const overlapTolerance = 2

// Token is a candidate numeric value and its [Start, End) byte span in the
// text. OK is false when the raw text could not be normalized.
type Token struct {
	Start      int
	End        int
	Raw        string
	Normalized string
	OK         bool
}

// Mid returns the midpoint offset of the token span.
func (t Token) Mid() int {
	return (t.Start + t.End) / 2
}

// Canonicalize replaces zero-width and non-breaking spaces with ordinary
// spaces. The result is the RawText consumed by every other component.
func Canonicalize(s string) string {
	return strings.NewReplacer("\u200b", " ", "\u00a0", " ").Replace(s)
}

// Extract returns every amount-like and long-number token in text, ordered
// by start offset.
func Extract(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	for _, loc := range amountPattern.FindAllStringIndex(text, -1) {
		tokens = append(tokens, newToken(text, loc))
	}
	for _, loc := range longNumberPattern.FindAllStringIndex(text, -1) {
		if overlapsStart(tokens, loc[0]) {
			continue
		}
		tokens = append(tokens, newToken(text, loc))
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Start < tokens[j].Start
	})
	return tokens
}

func newToken(text string, loc []int) Token {
	raw := text[loc[0]:loc[1]]
	norm, ok := money.Normalize(raw)
	return Token{
		Start:      loc[0],
		End:        loc[1],
		Raw:        money.Clean(raw),
		Normalized: norm,
		OK:         ok,
	}
}

func overlapsStart(tokens []Token, start int) bool {
	for _, t := range tokens {
		d := t.Start - start
		if d < 0 {
			d = -d
		}
		if d < overlapTolerance {
			return true
		}
	}
	return false
}

// Dedup returns the first token for every distinct normalized value.
// Tokens that failed normalization are dropped.
func Dedup(tokens []Token) []Token {
	seen := make(map[string]bool, len(tokens))
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.OK || seen[t.Normalized] {
			continue
		}
		seen[t.Normalized] = true
		out = append(out, t)
	}
	return out
}

// Lines returns the trimmed, non-empty lines of text.
func Lines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// FindAmounts returns the amount-like substrings of a single line.
func FindAmounts(line string) []string {
	return amountPattern.FindAllString(line, -1)
}

// LineMap lists every non-empty line that carries at least one amount-like
// substring. Indexes refer to the raw line numbering of text.
func LineMap(text string) []models.LineEntry {
	var entries []models.LineEntry
	for i, ln := range strings.Split(text, "\n") {
		ln = strings.TrimRight(ln, " \t\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		nums := FindAmounts(ln)
		if len(nums) == 0 {
			continue
		}
		entries = append(entries, models.LineEntry{Index: i, Line: ln, Numbers: nums})
	}
	return entries
}

// WriteLineMap renders entries as "0007: <line>" followed by an indented
// list of the numbers found on that line.
func WriteLineMap(w io.Writer, entries []models.LineEntry) error {
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%04d: %s\n      -> %s\n", e.Index, e.Line, strings.Join(e.Numbers, " | "))
		if err != nil {
			return err
		}
	}
	return nil
}
