package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/money"
)

// maxPlausibleAmount bounds money fields. Larger values are digit runs such
// as account numbers.
var maxPlausibleAmount = decimal.NewFromInt(10_000_000)

// zeroLike values carry no usable amount on their own.
var zeroLike = map[string]bool{
	",": true, ".": true, "-": true,
	"₹0": true, "₹0.00": true, "0": true, "0.00": true,
}

// Sanitize returns exactly the schema fields, each either a usable value or
// models.NotAvailable.
func Sanitize(fields models.Fields) models.Fields {
	out := make(models.Fields, len(models.AllFields))
	for _, f := range models.AllFields {
		out[f] = sanitizeValue(f, fields[f])
	}
	return out
}

func sanitizeValue(f models.Field, v string) string {
	s := strings.TrimSpace(v)
	if s == "" || s == models.NotAvailable {
		return models.NotAvailable
	}

	if zeroLike[s] {
		switch f {
		case models.FieldMinimumPaymentDue:
			return money.Rupee + "0"
		case models.FieldPurchases, models.FieldInterestCharged:
			return money.Rupee + "0.00"
		}
		return models.NotAvailable
	}

	// covers stray single letters left by column splits
	if !hasDigit(s) {
		return models.NotAvailable
	}

	if f.IsMoney() {
		d, ok := money.Amount(s)
		if !ok || d.IsNegative() || d.GreaterThan(maxPlausibleAmount) {
			return models.NotAvailable
		}
	}
	return s
}
