package parser

import "github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"

// NewChaseParser returns the parser for Chase card statements.
//
// Chase statements open with an ACCOUNT SUMMARY block:
//
//	Account Number: XXXX XXXX XXXX 1234
//	Previous Balance $1,000.00
//	Payment, Credits -$500.00
//	Purchases +$734.56
//	New Balance $1,234.56
//	Opening/Closing Date 03/01/24 - 03/31/24
//	Credit Access Line $5,000
//	Available Credit $3,765
//
// followed by a PAYMENT INFORMATION box with the due date and minimum.
func NewChaseParser() *IssuerParser {
	return newIssuerParser(models.IssuerChase, "Chase",
		amountRule(models.FieldTotalBalanceDue, `New\s+Balance`),
		dateRule(models.FieldPaymentDueDate, `Payment\s+Due\s+Date`),
		amountRule(models.FieldMinimumPaymentDue, `Minimum\s+Payment\s+Due`),
		cardRule(`Account\s+(?:Number|ending\s+in)`, maskedCardDigits),
		rangeRule(models.FieldBillingCycle, `Opening/Closing\s+Date`),
		amountRule(models.FieldPreviousBalance, `Previous\s+Balance`),
		amountRule(models.FieldPaymentsCredits, `Payments?,?\s+(?:and\s+)?Credits`),
		amountRule(models.FieldPurchases, `Purchases`),
		amountRule(models.FieldInterestCharged, `Interest\s+Charged`),
		amountRule(models.FieldCreditAccessLine, `(?:Credit\s+Access\s+Line|Total\s+Credit\s+Line)`),
		amountRule(models.FieldAvailableCredit, `Available\s+Credit`),
		percentRule(`(?:Purchases|Annual\s+Percentage\s+Rate)`),
	)
}
