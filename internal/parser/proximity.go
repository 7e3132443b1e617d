package parser

import (
	"regexp"
	"strings"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/tokenizer"
)

// ClosestToLabel finds the first label alternative that occurs in text and
// returns the normalized value of the token nearest to it. Tokens on the
// label's own line are preferred; when the line holds none, the nearest token
// of the deduplicated collection is used instead. Distance is measured from
// the token midpoint to the label start; ties keep the earlier token.
func ClosestToLabel(text string, labels []*regexp.Regexp, tokens []tokenizer.Token) (string, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	for _, label := range labels {
		loc := label.FindStringIndex(text)
		if loc == nil {
			continue
		}
		pos := loc[0]

		lineStart := strings.LastIndexByte(text[:pos], '\n')
		lineEnd := strings.IndexByte(text[pos:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += pos
		}

		var sameLine []tokenizer.Token
		for _, t := range tokens {
			if t.Start >= lineStart && t.End <= lineEnd {
				sameLine = append(sameLine, t)
			}
		}
		if len(sameLine) > 0 {
			best := nearest(sameLine, pos)
			return best.Normalized, best.OK && best.Normalized != ""
		}

		unique := tokenizer.Dedup(tokens)
		if len(unique) == 0 {
			return "", false
		}
		best := nearest(unique, pos)
		return best.Normalized, best.Normalized != ""
	}
	return "", false
}

func nearest(tokens []tokenizer.Token, pos int) tokenizer.Token {
	best := tokens[0]
	bestDist := distance(best.Mid(), pos)
	for _, t := range tokens[1:] {
		if d := distance(t.Mid(), pos); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
