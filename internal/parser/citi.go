package parser

import "github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"

// NewCitiParser returns the parser for Citi card statements.
func NewCitiParser() *IssuerParser {
	return newIssuerParser(models.IssuerCiti, "Citi",
		amountRule(models.FieldTotalBalanceDue, `New\s+balance`),
		dateRule(models.FieldPaymentDueDate, `Payment\s+due\s+date`),
		amountRule(models.FieldMinimumPaymentDue, `Minimum\s+payment\s+due`),
		cardRule(`Account\s+number\s+ending\s+in`, maskedCardDigits),
		rangeRule(models.FieldBillingCycle, `Billing\s+Period`),
		amountRule(models.FieldPreviousBalance, `Previous\s+balance`),
		amountRule(models.FieldPaymentsCredits, `Payments`),
		amountRule(models.FieldPurchases, `Purchases`),
		amountRule(models.FieldInterestCharged, `Interest`),
		amountRule(models.FieldCreditAccessLine, `Credit\s+Limit`),
		amountRule(models.FieldAvailableCredit, `Available\s+credit`),
		percentRule(`(?:Standard\s+Purch|Purchases|APR)`),
	)
}
