package parser

import (
	"regexp"
	"strings"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/money"
)

// valueKind selects how a captured label value is rendered.
type valueKind int

const (
	kindAmount valueKind = iota
	kindDate
	kindDateRange
	kindDigits
	kindPercent
)

// labelRule extracts one field from the first match of re. Date ranges
// capture two groups; everything else captures one.
type labelRule struct {
	field models.Field
	kind  valueKind
	re    *regexp.Regexp
}

// IssuerParser is a single-pass label table for one issuer's layout. Rules
// are tried in order and the first rule that yields a value for a field wins.
type IssuerParser struct {
	issuer   models.Issuer
	name     string
	currency string
	rules    []labelRule
}

func (p *IssuerParser) Name() string {
	return p.name
}

// Issuer returns the issuer this parser handles.
func (p *IssuerParser) Issuer() models.Issuer {
	return p.issuer
}

// Parse applies the label table to text.
func (p *IssuerParser) Parse(text string) (models.Fields, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}
	doc := NewDocument(text)

	fields := models.NewFields()
	for _, rule := range p.rules {
		if !fields.IsUnset(rule.field) {
			continue
		}
		m := rule.re.FindStringSubmatch(doc.Text)
		if m == nil {
			continue
		}
		if v, ok := p.render(rule.kind, m[1:]); ok {
			fields[rule.field] = v
		}
	}
	return Sanitize(fields), nil
}

func (p *IssuerParser) render(kind valueKind, groups []string) (string, bool) {
	switch kind {
	case kindAmount:
		raw := strings.TrimLeft(strings.TrimSpace(groups[0]), "- ")
		if !strings.ContainsAny(raw, money.Dollar+money.Rupee) {
			raw = p.currency + raw
		}
		return money.CleanNumericToken(raw)
	case kindDateRange:
		if len(groups) < 2 || groups[0] == "" || groups[1] == "" {
			return "", false
		}
		return groups[0] + " - " + groups[1], true
	case kindPercent:
		return formatPercent(groups[0])
	default:
		v := strings.TrimSpace(groups[0])
		return v, v != ""
	}
}

// Building blocks for issuer label tables.
const (
	amountValue = `[:\s]*\+?(-?\s*\$?\s*[\d,]*\d(?:\.\d{2})?)(?:[^\d%.,]|$)`
	dateValue   = `(\d{1,2}/\d{1,2}/\d{2,4}|[A-Za-z]{3,9}\.?\s+\d{1,2},\s*\d{4})`
	rangeSep    = `\s*(?:-|to|through)\s*`
	percentTail = `[^\n%]{0,40}?(\d{1,2}\.\d{1,3})[ \t]*%`
)

func amountRule(f models.Field, label string) labelRule {
	return labelRule{f, kindAmount, regexp.MustCompile(`(?im)` + label + amountValue)}
}

func dateRule(f models.Field, label string) labelRule {
	return labelRule{f, kindDate, regexp.MustCompile(`(?i)` + label + `[:\s]*` + dateValue)}
}

func rangeRule(f models.Field, label string) labelRule {
	return labelRule{f, kindDateRange, regexp.MustCompile(`(?i)` + label + `[:\s]*` + dateValue + rangeSep + dateValue)}
}

func cardRule(label, digits string) labelRule {
	return labelRule{models.FieldCardLast4, kindDigits, regexp.MustCompile(`(?i)` + label + digits)}
}

func percentRule(label string) labelRule {
	return labelRule{models.FieldAPR, kindPercent, regexp.MustCompile(`(?i)` + label + percentTail)}
}

// maskedCardDigits skips up to three masked or visible groups before the
// trailing four digits.
const maskedCardDigits = `[:\s#]*(?:[X*x•\d]{4}[\s-]?){0,3}(\d{4})\b`

func newIssuerParser(issuer models.Issuer, name string, rules ...labelRule) *IssuerParser {
	return &IssuerParser{
		issuer:   issuer,
		name:     name,
		currency: money.Dollar,
		rules:    rules,
	}
}

// issuerMarkers identify a statement's issuer from its text.
var issuerMarkers = []struct {
	issuer  models.Issuer
	markers []string
}{
	{models.IssuerChase, []string{"jpmorgan chase", "chase.com", "chase card services"}},
	{models.IssuerAmericanExpress, []string{"american express", "americanexpress.com"}},
	{models.IssuerCiti, []string{"citibank", "citicards", "citi cards"}},
	{models.IssuerCapitalOne, []string{"capital one", "capitalone.com"}},
	{models.IssuerDiscover, []string{"discover card", "discover.com"}},
}

// AutoDetect guesses the issuer from statement text. It reports false when
// no issuer marker is present.
func AutoDetect(text string) (models.Issuer, bool) {
	for _, entry := range issuerMarkers {
		if containsAny(text, entry.markers) {
			return entry.issuer, true
		}
	}
	return models.IssuerGeneric, false
}
