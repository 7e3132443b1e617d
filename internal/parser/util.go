package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Date shapes found in card statements.
var (
	// D/M/YY, DD-MM-YYYY, MM/DD/YYYY ...
	datePatternNumeric = regexp.MustCompile(`\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}`)
	// April 15, 2024 / Apr 15,2024
	datePatternMonthName = regexp.MustCompile(`[A-Za-z]{3,9}\s+\d{1,2},\s*\d{4}`)

	// four-digit run ending on a word boundary; the last one on a card line
	// is the card suffix
	fourDigitsTail = regexp.MustCompile(`(\d{4})\b`)
	fourDigitsWord = regexp.MustCompile(`\b(\d{4})\b`)
)

// findDate returns the first date on a line, numeric shapes first.
func findDate(line string) string {
	if m := datePatternNumeric.FindString(line); m != "" {
		return m
	}
	return datePatternMonthName.FindString(line)
}

// findNumericDates returns every numeric date on a line.
func findNumericDates(line string) []string {
	return datePatternNumeric.FindAllString(line, -1)
}

// isCalendarYear reports whether a four-digit run looks like a year.
func isCalendarYear(digits string) bool {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	return n >= 1900 && n <= 2099
}

// labelRegexps compiles case-insensitive label alternatives in priority order.
func labelRegexps(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// firstLineMatching returns the index of the first line matching any of res.
func firstLineMatching(lines []string, res ...*regexp.Regexp) int {
	for i, ln := range lines {
		for _, re := range res {
			if re.MatchString(ln) {
				return i
			}
		}
	}
	return -1
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
