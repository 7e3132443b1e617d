package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

func TestResolveIssuer(t *testing.T) {
	tests := []struct {
		name string
		want models.Issuer
	}{
		{"Chase (Demo)", models.IssuerChase},
		{"American Express (Demo)", models.IssuerAmericanExpress},
		{"AMEX", models.IssuerAmericanExpress},
		{"Citi (Demo)", models.IssuerCiti},
		{"Capital One (Demo)", models.IssuerCapitalOne},
		{"Discover (Demo)", models.IssuerDiscover},
		{"CFPB Sample (Working)", models.IssuerGeneric},
		{"AUTO", models.IssuerGeneric},
		{"", models.IssuerGeneric},
		{"Citi / Capital One co-brand", models.IssuerCiti},
		{"Discover via Chase", models.IssuerChase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIssuer(tt.name))
		})
	}
}

func TestRoute(t *testing.T) {
	assert.Equal(t, "Chase", Route("chase (demo)").Name())
	assert.Equal(t, "American Express", Route("American Express (Demo)").Name())
	assert.Equal(t, "Generic", Route("CFPB Sample (Working)").Name())
}

func TestNew(t *testing.T) {
	for _, issuer := range []models.Issuer{
		models.IssuerGeneric,
		models.IssuerChase,
		models.IssuerAmericanExpress,
		models.IssuerCiti,
		models.IssuerCapitalOne,
		models.IssuerDiscover,
	} {
		p, err := New(issuer)
		require.NoError(t, err, issuer)
		assert.NotEmpty(t, p.Name())
	}

	_, err := New("barclays")
	assert.True(t, errors.Is(err, ErrUnknownIssuer))
}

func TestAutoDetect(t *testing.T) {
	issuer, ok := AutoDetect("Manage your account at chase.com")
	assert.True(t, ok)
	assert.Equal(t, models.IssuerChase, issuer)

	issuer, ok = AutoDetect("Thank you for your payment")
	assert.False(t, ok)
	assert.Equal(t, models.IssuerGeneric, issuer)
}

func TestParseWithIssuer_NewBalance(t *testing.T) {
	fields, err := ParseWithIssuer("New Balance $1,234.56", "Chase (Demo)")
	require.NoError(t, err)

	assert.Equal(t, "$1,234.56", fields[models.FieldTotalBalanceDue])
	assert.Len(t, fields, len(models.AllFields))
	for _, f := range models.AllFields {
		if f != models.FieldTotalBalanceDue {
			assert.Equal(t, models.NotAvailable, fields[f], f)
		}
	}
}

func TestParseWithIssuer_EmptyText(t *testing.T) {
	_, err := ParseWithIssuer("  ", "Discover (Demo)")
	assert.True(t, errors.Is(err, ErrNoText))
}

func TestChaseParser(t *testing.T) {
	text := `Account Number: XXXX XXXX XXXX 1234
Opening/Closing Date 03/01/24 - 03/31/24
Previous Balance $1,000.00
Payment, Credits -$500.00
Purchases +$734.56
New Balance $1,234.56
Payment Due Date: 04/25/24
Minimum Payment Due: $40.00
Credit Access Line $5,000
Available Credit $3,765
Purchases 19.99%`

	fields, err := NewChaseParser().Parse(text)
	require.NoError(t, err)

	want := models.Fields{
		models.FieldTotalBalanceDue:   "$1,234.56",
		models.FieldPaymentDueDate:    "04/25/24",
		models.FieldMinimumPaymentDue: "$40.00",
		models.FieldCardLast4:         "1234",
		models.FieldBillingCycle:      "03/01/24 - 03/31/24",
		models.FieldPreviousBalance:   "$1,000.00",
		models.FieldPaymentsCredits:   "$500.00",
		models.FieldPurchases:         "$734.56",
		models.FieldInterestCharged:   models.NotAvailable,
		models.FieldCreditAccessLine:  "$5,000",
		models.FieldAvailableCredit:   "$3,765",
		models.FieldAPR:               "19.99%",
	}
	assert.Equal(t, want, fields)
}

func TestChaseParser_UnsignedCredits(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Payment, Credits -$500.00", "$500.00"},
		{"Payment, Credits -500.00", "$500.00"},
		{"Payments and Credits - 500.00", "$500.00"},
		{"Payments and Credits 500.00", "$500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			fields, err := NewChaseParser().Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fields[models.FieldPaymentsCredits])
		})
	}
}

func TestAmexParser_AccountEnding(t *testing.T) {
	fields, err := NewAmexParser().Parse("Account Ending 1-01007\nNew Balance 2,310.40")
	require.NoError(t, err)

	assert.Equal(t, "1007", fields[models.FieldCardLast4])
	assert.Equal(t, "$2,310.40", fields[models.FieldTotalBalanceDue])
}

func TestCapitalOneParser_CycleHeader(t *testing.T) {
	text := "Mar 01, 2024 - Mar 31, 2024 | 31 days in Billing Cycle\nPayment Due Date: Apr 25, 2024"

	fields, err := NewCapitalOneParser().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, "Mar 01, 2024 - Mar 31, 2024", fields[models.FieldBillingCycle])
	assert.Equal(t, "Apr 25, 2024", fields[models.FieldPaymentDueDate])
}
