package parser

import (
	"regexp"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

// NewCapitalOneParser returns the parser for Capital One statements.
//
// Capital One prints a one-line cycle header such as
// "Mar 01, 2024 - Mar 31, 2024 | 31 days in Billing Cycle".
func NewCapitalOneParser() *IssuerParser {
	return newIssuerParser(models.IssuerCapitalOne, "Capital One",
		amountRule(models.FieldTotalBalanceDue, `New\s+Balance`),
		dateRule(models.FieldPaymentDueDate, `Payment\s+Due\s+Date`),
		amountRule(models.FieldMinimumPaymentDue, `Minimum\s+Payment`),
		cardRule(`ending\s+in`, maskedCardDigits),
		labelRule{models.FieldBillingCycle, kindDateRange, regexp.MustCompile(`(?i)` + dateValue + rangeSep + dateValue + `\s*\|?\s*\d+\s+days`)},
		amountRule(models.FieldPreviousBalance, `Previous\s+Balance`),
		amountRule(models.FieldPaymentsCredits, `Payments`),
		amountRule(models.FieldPurchases, `Transactions`),
		amountRule(models.FieldInterestCharged, `Interest\s+Charged`),
		amountRule(models.FieldCreditAccessLine, `Credit\s+Limit`),
		amountRule(models.FieldAvailableCredit, `Available\s+Credit`),
		percentRule(`Purchase\s+APR`),
	)
}
