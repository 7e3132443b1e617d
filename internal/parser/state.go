package parser

import (
	"strings"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/tokenizer"
)

// Document is the read-only view of one statement shared by all strategies.
type Document struct {
	Text   string
	Lines  []string
	Tokens []tokenizer.Token
}

// NewDocument canonicalizes text and precomputes its lines and tokens.
func NewDocument(text string) *Document {
	text = tokenizer.Canonicalize(text)
	return &Document{
		Text:   text,
		Lines:  tokenizer.Lines(text),
		Tokens: tokenizer.Extract(text),
	}
}

// State holds the fields extracted so far and the set of values already
// claimed by a field. It belongs to a single parse.
type State struct {
	fields  models.Fields
	claimed map[string]bool
}

// NewState returns a state with every field unset.
func NewState() *State {
	return &State{
		fields:  models.NewFields(),
		claimed: make(map[string]bool),
	}
}

// Unset reports whether the field has no value yet.
func (s *State) Unset(f models.Field) bool {
	return s.fields.IsUnset(f)
}

// Claimed reports whether value is already owned by a field.
func (s *State) Claimed(value string) bool {
	return s.claimed[strings.TrimSpace(value)]
}

// Value returns the current value of a field.
func (s *State) Value(f models.Field) string {
	return s.fields[f]
}

// Fields returns a copy of the current field values.
func (s *State) Fields() models.Fields {
	return s.fields.Clone()
}

// Apply applies the assignments of r in order and returns the fields it set.
// Assignments to fields that already hold a value are ignored.
func (s *State) Apply(r Result) []models.Field {
	var applied []models.Field
	for _, a := range r.Assignments {
		v := strings.TrimSpace(a.Value)
		if v == "" || !s.Unset(a.Field) {
			continue
		}
		if a.Exclusive {
			if s.claimed[v] {
				continue
			}
			s.claimed[v] = true
		}
		s.fields[a.Field] = v
		applied = append(applied, a.Field)
	}
	return applied
}
