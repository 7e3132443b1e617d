package parser

import "github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"

// NewAmexParser returns the parser for American Express statements.
//
// Amex prints the account as "Account Ending 1-01007" and labels the
// balance "New Balance" with the closing date alongside.
func NewAmexParser() *IssuerParser {
	return newIssuerParser(models.IssuerAmericanExpress, "American Express",
		amountRule(models.FieldTotalBalanceDue, `New\s+Balance`),
		dateRule(models.FieldPaymentDueDate, `Payment\s+Due\s+Date`),
		amountRule(models.FieldMinimumPaymentDue, `Minimum\s+Payment\s+Due`),
		cardRule(`Account\s+Ending`, `[^\n\d]{0,10}(?:\d-)?\d?(\d{4})\b`),
		rangeRule(models.FieldBillingCycle, `(?:Billing\s+Period|Statement\s+Period)`),
		amountRule(models.FieldPreviousBalance, `Previous\s+Balance`),
		amountRule(models.FieldPaymentsCredits, `(?:Payments/Credits|Payments)`),
		amountRule(models.FieldPurchases, `New\s+Charges`),
		amountRule(models.FieldInterestCharged, `Interest\s+Charged`),
		amountRule(models.FieldCreditAccessLine, `Credit\s+Limit`),
		amountRule(models.FieldAvailableCredit, `Available\s+Credit`),
		percentRule(`(?:Purchases|APR)`),
	)
}
