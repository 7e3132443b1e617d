package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/money"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/tokenizer"
)

// DefaultStrategies returns the generic pipeline stages in execution order.
// Earlier stages have priority: later stages only fill fields still unset.
func DefaultStrategies() []Strategy {
	return []Strategy{
		cardLast4Strategy{},
		billingCycleStrategy{},
		paymentDueDateStrategy{},
		accountSummaryStrategy{},
		totalDueStrategy{},
		paymentsCreditsStrategy{},
		labelProximityStrategy{},
		minimumPaymentStrategy{},
		aprStrategy{},
	}
}

// Card last 4 digits

var cardKeyword = regexp.MustCompile(`(?i)\b(card|card no|card number|account number|ending in|ending)\b`)

type cardLast4Strategy struct{}

func (cardLast4Strategy) Name() string { return "card_last4" }

func (cardLast4Strategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	if !st.Unset(models.FieldCardLast4) {
		return res, nil
	}

	for _, ln := range doc.Lines {
		if !cardKeyword.MatchString(ln) {
			continue
		}
		if m := fourDigitsTail.FindAllStringSubmatch(ln, -1); len(m) > 0 {
			res.propose(models.FieldCardLast4, m[len(m)-1][1], false)
			return res, nil
		}
	}

	all := fourDigitsWord.FindAllStringSubmatch(doc.Text, -1)
	if len(all) == 0 {
		return res, nil
	}
	last := all[len(all)-1][1]
	for i := len(all) - 1; i >= 0; i-- {
		if !isCalendarYear(all[i][1]) {
			last = all[i][1]
			break
		}
	}
	res.propose(models.FieldCardLast4, last, false)
	return res, nil
}

// Billing cycle

var billingLabel = regexp.MustCompile(`(?i)(Statement Date|Statement Period|Billing Cycle)`)

type billingCycleStrategy struct{}

func (billingCycleStrategy) Name() string { return "billing_cycle" }

func (billingCycleStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	i := firstLineMatching(doc.Lines, billingLabel)
	if i < 0 {
		return res, nil
	}

	if dates := findNumericDates(doc.Lines[i]); len(dates) > 0 {
		value := dates[0]
		if len(dates) > 1 {
			value = dates[0] + " - " + dates[1]
		}
		res.propose(models.FieldBillingCycle, value, false)
		return res, nil
	}
	if i+1 < len(doc.Lines) {
		if dates := findNumericDates(doc.Lines[i+1]); len(dates) > 0 {
			res.propose(models.FieldBillingCycle, dates[0], false)
		}
	}
	return res, nil
}

// Payment due date

var (
	dueDateLabel     = regexp.MustCompile(`(?i)Payment\s*Due\s*Date`)
	dueDateFallbacks = regexp.MustCompile(`(?i)(Total\s+Dues|Minimum\s+Payment|Minimum\s+Amount)`)
)

// dueDateLookahead is the number of lines inspected from a label line.
const dueDateLookahead = 4

type paymentDueDateStrategy struct{}

func (paymentDueDateStrategy) Name() string { return "payment_due_date" }

func (paymentDueDateStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	lines := doc.Lines

	if i := firstLineMatching(lines, dueDateLabel); i >= 0 {
		if dt := scanDate(lines, i, dueDateLookahead); dt != "" {
			res.propose(models.FieldPaymentDueDate, dt, false)
			return res, nil
		}
	}

	for i, ln := range lines {
		if !dueDateFallbacks.MatchString(ln) {
			continue
		}
		if dt := scanDate(lines, i, dueDateLookahead); dt != "" {
			res.propose(models.FieldPaymentDueDate, dt, false)
			return res, nil
		}
	}
	return res, nil
}

// scanDate returns the first date in lines[from : from+n].
func scanDate(lines []string, from, n int) string {
	for j := from; j < from+n && j < len(lines); j++ {
		if dt := findDate(lines[j]); dt != "" {
			return dt
		}
	}
	return ""
}

// Account summary row

var (
	summaryHeaders = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Account\s+Summary`),
		regexp.MustCompile(`(?i)Opening\s+Payment/\s*Purchase/\s*Finance`),
		regexp.MustCompile(`(?i)Opening\s+Balance.*Payments.*Purchase`),
	}
	availableCreditDirect = regexp.MustCompile(`(?i)Available\s+(?:Credit|Credit\s+Limit)[:\s]*₹?\s*([\d,.]+)`)

	// column order of the summary row
	summaryColumns = []models.Field{
		models.FieldPreviousBalance,
		models.FieldInterestCharged,
		models.FieldPurchases,
		models.FieldPaymentsCredits,
		models.FieldTotalBalanceDue,
	}
)

const (
	summaryRowWindow     = 5
	summaryRowMinAmounts = 3
)

type accountSummaryStrategy struct{}

func (accountSummaryStrategy) Name() string { return "account_summary_row" }

func (accountSummaryStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	lines := doc.Lines
	header := firstLineMatching(lines, summaryHeaders...)
	if header < 0 {
		return res, nil
	}

	var row []string
	for j := header + 1; j <= header+summaryRowWindow && j < len(lines); j++ {
		if nums := tokenizer.FindAmounts(lines[j]); len(nums) >= summaryRowMinAmounts {
			row = nums
			break
		}
	}
	if row == nil {
		return res, nil
	}

	for col, field := range summaryColumns {
		if col >= len(row) {
			break
		}
		if v, ok := money.CleanNumericToken(row[col]); ok && v != models.NotAvailable {
			res.propose(field, v, true)
		}
	}

	if st.Unset(models.FieldAvailableCredit) {
		if m := availableCreditDirect.FindStringSubmatch(doc.Text); m != nil {
			if v, ok := money.CleanNumericToken(m[1]); ok {
				res.propose(models.FieldAvailableCredit, v, false)
			}
		}
	}
	return res, nil
}

// Total balance due

var (
	totalDueLabel  = regexp.MustCompile(`(?i)(Total\s+Dues|Total\s+Amount\s+Due|Amount\s+Payable|Outstanding\s+Balance)`)
	totalDueDirect = regexp.MustCompile(`(?i)(?:Total\s+Dues|Total\s+Amount\s+Due|Outstanding\s+Amount|Amount\s+Payable)[:\s]*₹?\s*([\d,.]+)`)
)

type totalDueStrategy struct{}

func (totalDueStrategy) Name() string { return "total_due" }

func (totalDueStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	if !st.Unset(models.FieldTotalBalanceDue) {
		return res, nil
	}

	lines := doc.Lines
	for i, ln := range lines {
		if !totalDueLabel.MatchString(ln) {
			continue
		}
		if v := lastUnclaimedAmount(ln, st); v != "" {
			res.propose(models.FieldTotalBalanceDue, v, true)
			return res, nil
		}
		if i+1 < len(lines) {
			if v := lastUnclaimedAmount(lines[i+1], st); v != "" {
				res.propose(models.FieldTotalBalanceDue, v, true)
				return res, nil
			}
		}
	}

	if m := totalDueDirect.FindStringSubmatch(doc.Text); m != nil {
		if v, ok := money.CleanNumericToken(m[1]); ok {
			res.propose(models.FieldTotalBalanceDue, v, false)
		}
	}
	return res, nil
}

// lastUnclaimedAmount cleans the last amount on a line and returns it unless
// it is missing or already claimed.
func lastUnclaimedAmount(line string, st *State) string {
	nums := tokenizer.FindAmounts(line)
	if len(nums) == 0 {
		return ""
	}
	v, ok := money.CleanNumericToken(nums[len(nums)-1])
	if !ok || st.Claimed(v) {
		return ""
	}
	return v
}

// Payments and credits

var paymentsDirect = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Payments[,\s]+Credits[:\s]*₹?\s*([\d,.]+)`),
	regexp.MustCompile(`(?i)Payments\s*[:\s]*₹?\s*([\d,.]+)`),
}

type paymentsCreditsStrategy struct{}

func (paymentsCreditsStrategy) Name() string { return "payments_credits" }

func (paymentsCreditsStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	if !st.Unset(models.FieldPaymentsCredits) {
		return res, nil
	}
	for _, re := range paymentsDirect {
		m := re.FindStringSubmatch(doc.Text)
		if m == nil {
			continue
		}
		if v, ok := money.CleanNumericToken(m[1]); ok {
			res.propose(models.FieldPaymentsCredits, v, false)
		}
		break
	}
	return res, nil
}

// Label proximity

var proximityLabels = []struct {
	field  models.Field
	labels []*regexp.Regexp
}{
	{models.FieldCreditAccessLine, labelRegexps(`Credit\s+Limit`, `Credit\s+Access\s+Line`, `Credit\s+Line`)},
	{models.FieldAvailableCredit, labelRegexps(`Available\s+Credit`, `Available\s+Limit`, `Available\s+Credit\s+Limit`)},
	{models.FieldMinimumPaymentDue, labelRegexps(`Minimum\s+(?:Payment|Amount)\s+Due`, `\bMin\s+Payment\b`)},
	{models.FieldInterestCharged, labelRegexps(`Interest\s+Charged`, `Finance\s+Charges?`, `\bInterest\b`)},
	{models.FieldPurchases, labelRegexps(`\bPurchases\b`, `Purchase\s*/\s*Debits`)},
	{models.FieldPreviousBalance, labelRegexps(`Previous\s+Balance`, `Opening\s+Balance`)},
}

type labelProximityStrategy struct{}

func (labelProximityStrategy) Name() string { return "label_proximity" }

func (labelProximityStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	for _, entry := range proximityLabels {
		if !st.Unset(entry.field) {
			continue
		}
		val, ok := ClosestToLabel(doc.Text, entry.labels, doc.Tokens)
		if !ok {
			continue
		}
		if v, ok := money.CleanNumericToken(val); ok {
			res.propose(entry.field, v, true)
		}
	}
	return res, nil
}

// Minimum payment due

var (
	minimumDueDirect  = regexp.MustCompile(`(?i)Minimum\s+(?:Amount|Payment)\s+Due[:\s]*₹?\s*([\d,.]+)`)
	minimumDueSnippet = regexp.MustCompile(`₹?\s*([\d,.]+)`)
)

const (
	minimumDueHeader    = "Minimum Amount Due"
	minimumDueSnippetSz = 120
)

type minimumPaymentStrategy struct{}

func (minimumPaymentStrategy) Name() string { return "minimum_payment_due" }

func (minimumPaymentStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	if !st.Unset(models.FieldMinimumPaymentDue) {
		return res, nil
	}

	raw := ""
	if m := minimumDueDirect.FindStringSubmatch(doc.Text); m != nil {
		raw = m[1]
	} else if idx := strings.Index(doc.Text, minimumDueHeader); idx >= 0 {
		end := idx + minimumDueSnippetSz
		if end > len(doc.Text) {
			end = len(doc.Text)
		}
		if m := minimumDueSnippet.FindStringSubmatch(doc.Text[idx:end]); m != nil {
			raw = m[1]
		}
	}
	if raw == "" {
		return res, nil
	}
	if v, ok := money.CleanNumericToken(raw); ok {
		res.propose(models.FieldMinimumPaymentDue, v, false)
	}
	return res, nil
}

// Annual percentage rate

var aprLabel = regexp.MustCompile(`(?i)(?:Annual\s+Percentage\s+Rate|\bAPR\b)[^\d\n]{0,40}(\d{1,2}(?:\.\d{1,3})?)[ \t]*%`)

type aprStrategy struct{}

func (aprStrategy) Name() string { return "annual_percentage_rate" }

func (aprStrategy) Extract(doc *Document, st *State) (Result, error) {
	var res Result
	if !st.Unset(models.FieldAPR) {
		return res, nil
	}
	m := aprLabel.FindStringSubmatch(doc.Text)
	if m == nil {
		return res, nil
	}
	if v, ok := formatPercent(m[1]); ok {
		res.propose(models.FieldAPR, v, false)
	}
	return res, nil
}

// formatPercent renders a rate as "NN.NN%".
func formatPercent(raw string) (string, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return "", false
	}
	return d.StringFixed(2) + "%", true
}
