package parser

import (
	"fmt"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

// ErrNoText is returned for empty or whitespace-only input.
var ErrNoText = models.ErrNoText

// Strategy is one extraction stage of the generic pipeline. A strategy only
// reads the document and the current state; the pipeline decides which of
// its proposed assignments are applied.
type Strategy interface {
	Name() string
	Extract(doc *Document, st *State) (Result, error)
}

// Assignment proposes a value for a field. An exclusive assignment is
// dropped when its value was already claimed by another field, and claims
// the value once applied.
type Assignment struct {
	Field     models.Field
	Value     string
	Exclusive bool
}

// Result is the outcome of one strategy run.
type Result struct {
	Strategy    string
	Assignments []Assignment
	// Applied lists the fields the pipeline actually set from this result.
	Applied []models.Field
	Err     error
}

func (r *Result) propose(field models.Field, value string, exclusive bool) {
	r.Assignments = append(r.Assignments, Assignment{Field: field, Value: value, Exclusive: exclusive})
}

// StrategyError reports a strategy that failed or panicked. Its fields are
// left unset and the pipeline continues with the next stage.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// runStrategy calls s.Extract and converts a panic into a StrategyError.
func runStrategy(s Strategy, doc *Document, st *State) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Strategy: s.Name()}
			err = &StrategyError{Strategy: s.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	res, err = s.Extract(doc, st)
	res.Strategy = s.Name()
	if err != nil {
		return Result{Strategy: s.Name()}, &StrategyError{Strategy: s.Name(), Err: err}
	}
	return res, nil
}
