package parser

import "github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"

// NewDiscoverParser returns the parser for Discover card statements.
func NewDiscoverParser() *IssuerParser {
	return newIssuerParser(models.IssuerDiscover, "Discover",
		amountRule(models.FieldTotalBalanceDue, `New\s+Balance`),
		dateRule(models.FieldPaymentDueDate, `Payment\s+Due\s+Date`),
		amountRule(models.FieldMinimumPaymentDue, `Minimum\s+Payment\s+Due`),
		cardRule(`Account\s+ending\s+in`, maskedCardDigits),
		rangeRule(models.FieldBillingCycle, `(?:Open\s+to\s+Close\s+Date|Statement\s+Period)`),
		amountRule(models.FieldPreviousBalance, `Previous\s+Balance`),
		amountRule(models.FieldPaymentsCredits, `Payments\s+and\s+Credits`),
		amountRule(models.FieldPurchases, `Purchases`),
		amountRule(models.FieldInterestCharged, `Interest\s+Charged`),
		amountRule(models.FieldCreditAccessLine, `Credit\s+Line`),
		amountRule(models.FieldAvailableCredit, `Credit\s+Line\s+Available`),
		percentRule(`(?:Purchases|APR)`),
	)
}
