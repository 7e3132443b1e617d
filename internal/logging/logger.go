// Package logging decouples the analyzer from a concrete logging framework.
package logging

// Logger is the structured logger used across the analyzer.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger carrying err on every entry.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Standardized field names.
const (
	FieldIssuer    = "issuer"
	FieldParser    = "parser"
	FieldStrategy  = "strategy"
	FieldField     = "field"
	FieldValue     = "value"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldAttempt   = "attempt"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldFile      = "file_path"
	FieldStatement = "statement_id"
)
