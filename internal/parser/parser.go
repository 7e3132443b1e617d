package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

// Parser turns statement text into the sanitized field schema.
type Parser interface {
	// Parse returns every schema field, each either a canonical value or
	// models.NotAvailable. Empty text yields models.ErrNoText.
	Parse(text string) (models.Fields, error)
	// Name returns the human-readable parser name.
	Name() string
}

var (
	// ErrInternal wraps an unexpected failure inside a parse. It is distinct
	// from a successful parse where every field is unavailable.
	ErrInternal = errors.New("internal parser error")
	// ErrUnknownIssuer is returned by New for an issuer without a parser.
	ErrUnknownIssuer = errors.New("unknown issuer")
)

// New returns the parser for the given issuer.
func New(issuer models.Issuer) (Parser, error) {
	switch issuer {
	case models.IssuerGeneric, "":
		return &GenericParser{}, nil
	case models.IssuerChase:
		return NewChaseParser(), nil
	case models.IssuerAmericanExpress:
		return NewAmexParser(), nil
	case models.IssuerCiti:
		return NewCitiParser(), nil
	case models.IssuerCapitalOne:
		return NewCapitalOneParser(), nil
	case models.IssuerDiscover:
		return NewDiscoverParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIssuer, issuer)
	}
}

// issuerRoutes is matched in order; the first route whose needle occurs in
// the issuer name wins.
var issuerRoutes = []struct {
	needles []string
	issuer  models.Issuer
}{
	{[]string{"chase"}, models.IssuerChase},
	{[]string{"american express", "amex"}, models.IssuerAmericanExpress},
	{[]string{"citi"}, models.IssuerCiti},
	{[]string{"capital one", "capitalone"}, models.IssuerCapitalOne},
	{[]string{"discover"}, models.IssuerDiscover},
}

// ResolveIssuer maps a free-text issuer name (for example "Chase (Demo)") to
// an issuer by case-insensitive substring match. Names that match nothing
// resolve to the generic pipeline.
func ResolveIssuer(name string) models.Issuer {
	for _, route := range issuerRoutes {
		if containsAny(name, route.needles) {
			return route.issuer
		}
	}
	return models.IssuerGeneric
}

// Route returns the parser for a free-text issuer name.
func Route(name string) Parser {
	p, err := New(ResolveIssuer(name))
	if err != nil {
		return &GenericParser{}
	}
	return p
}

// Parse runs the generic heuristic pipeline.
func Parse(text string) (models.Fields, error) {
	return (&GenericParser{}).Parse(text)
}

// ParseWithIssuer routes text to the parser selected by the issuer name.
func ParseWithIssuer(text, issuer string) (models.Fields, error) {
	return Route(issuer).Parse(text)
}

func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, needle := range needles {
		if needle != "" && strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
