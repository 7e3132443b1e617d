package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name  string
		field models.Field
		in    string
		want  string
	}{
		{"empty", models.FieldTotalBalanceDue, "", models.NotAvailable},
		{"whitespace", models.FieldTotalBalanceDue, "  ", models.NotAvailable},
		{"kept", models.FieldTotalBalanceDue, "₹10,650.00", "₹10,650.00"},
		{"zero total", models.FieldTotalBalanceDue, "₹0", models.NotAvailable},
		{"zero minimum", models.FieldMinimumPaymentDue, "0.00", "₹0"},
		{"zero purchases", models.FieldPurchases, "0", "₹0.00"},
		{"rupee zero interest", models.FieldInterestCharged, "₹0", "₹0.00"},
		{"separator purchases", models.FieldPurchases, ",", "₹0.00"},
		{"dash interest", models.FieldInterestCharged, "-", "₹0.00"},
		{"too large", models.FieldCreditAccessLine, "₹20,000,000", models.NotAvailable},
		{"upper bound", models.FieldCreditAccessLine, "₹10,000,000", "₹10,000,000"},
		{"negative", models.FieldPaymentsCredits, "₹-5.00", models.NotAvailable},
		{"single letter", models.FieldCardLast4, "x", models.NotAvailable},
		{"no digits", models.FieldPreviousBalance, "Rs", models.NotAvailable},
		{"date kept", models.FieldPaymentDueDate, "12/31/2024", "12/31/2024"},
		{"range kept", models.FieldBillingCycle, "03/01/2024 - 03/31/2024", "03/01/2024 - 03/31/2024"},
		{"card kept", models.FieldCardLast4, "1234", "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeValue(tt.field, tt.in))
		})
	}
}

func TestSanitize_ExactSchema(t *testing.T) {
	in := models.Fields{
		models.FieldTotalBalanceDue: "₹1.00",
		models.Field("Reward Points"): "500",
	}

	out := Sanitize(in)

	assert.Len(t, out, len(models.AllFields))
	assert.NotContains(t, out, models.Field("Reward Points"))
	assert.Equal(t, "₹1.00", out[models.FieldTotalBalanceDue])
	assert.Equal(t, models.NotAvailable, out[models.FieldAPR])
}
