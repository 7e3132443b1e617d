package models

import "strings"

// NotAvailable marks a field that could not be determined.
const NotAvailable = "N/A"

// Field names one entry of the statement schema. The names are part of the
// public JSON contract and must not change.
type Field string

const (
	FieldTotalBalanceDue   Field = "Total Balance Due"
	FieldPaymentDueDate    Field = "Payment Due Date"
	FieldMinimumPaymentDue Field = "Minimum Payment Due"
	FieldCardLast4         Field = "Card Last 4 Digits"
	FieldBillingCycle      Field = "Billing Cycle Dates"
	FieldPreviousBalance   Field = "Previous Balance"
	FieldPaymentsCredits   Field = "Payments/Credits"
	FieldPurchases         Field = "Purchases"
	FieldInterestCharged   Field = "Interest Charged"
	FieldCreditAccessLine  Field = "Credit Access Line"
	FieldAvailableCredit   Field = "Available Credit"
	FieldAPR               Field = "Annual Percentage Rate"
)

// AllFields lists the schema in display order.
var AllFields = []Field{
	FieldTotalBalanceDue,
	FieldPaymentDueDate,
	FieldMinimumPaymentDue,
	FieldCardLast4,
	FieldBillingCycle,
	FieldPreviousBalance,
	FieldPaymentsCredits,
	FieldPurchases,
	FieldInterestCharged,
	FieldCreditAccessLine,
	FieldAvailableCredit,
	FieldAPR,
}

// IsMoney reports whether the field holds a monetary amount.
func (f Field) IsMoney() bool {
	switch f {
	case FieldTotalBalanceDue, FieldMinimumPaymentDue, FieldPreviousBalance,
		FieldPaymentsCredits, FieldPurchases, FieldInterestCharged,
		FieldCreditAccessLine, FieldAvailableCredit:
		return true
	}
	return false
}

// Fields is the statement schema: one value per field name. An empty value
// means "not extracted yet"; the sanitized schema only holds canonical values
// or NotAvailable.
type Fields map[Field]string

// NewFields returns a schema with every field present and unset.
func NewFields() Fields {
	f := make(Fields, len(AllFields))
	for _, name := range AllFields {
		f[name] = ""
	}
	return f
}

// Unavailable returns a schema with every field set to NotAvailable.
func Unavailable() Fields {
	f := make(Fields, len(AllFields))
	for _, name := range AllFields {
		f[name] = NotAvailable
	}
	return f
}

// IsUnset reports whether the field is still empty or NotAvailable.
func (f Fields) IsUnset(name Field) bool {
	v := strings.TrimSpace(f[name])
	return v == "" || v == NotAvailable
}

// Clone returns a copy of the schema.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Issuer identifies a card issuer with a dedicated parser.
type Issuer string

const (
	IssuerGeneric         Issuer = "generic"
	IssuerChase           Issuer = "chase"
	IssuerAmericanExpress Issuer = "amex"
	IssuerCiti            Issuer = "citi"
	IssuerCapitalOne      Issuer = "capitalone"
	IssuerDiscover        Issuer = "discover"
)

// LineEntry is one row of the diagnostic line map: a text line and the
// numeric substrings found on it.
type LineEntry struct {
	Index   int      `json:"index" yaml:"index"`
	Line    string   `json:"line" yaml:"line"`
	Numbers []string `json:"numbers" yaml:"numbers"`
}

// StatementRecord is a persisted parse result.
type StatementRecord struct {
	ID        string `json:"id"`
	Source    string `json:"source,omitempty"`
	Issuer    string `json:"issuer,omitempty"`
	Parser    string `json:"parser"`
	Fields    Fields `json:"fields"`
	Summary   string `json:"summary,omitempty"`
	CreatedAt string `json:"createdAt"`
}
