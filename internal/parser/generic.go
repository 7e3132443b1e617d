package parser

import (
	"fmt"
	"strings"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

// GenericParser is the layout-agnostic heuristic pipeline. The zero value
// runs DefaultStrategies without logging.
type GenericParser struct {
	// Logger receives strategy failures and per-stage debug output.
	Logger logging.Logger
	// Trace, when set, is called with every strategy result in order.
	Trace func(Result)
	// Strategies overrides the stage list.
	Strategies []Strategy
}

// Name returns the parser name.
func (p *GenericParser) Name() string {
	return "Generic"
}

// Parse extracts the field schema from statement text.
func (p *GenericParser) Parse(text string) (fields models.Fields, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	defer func() {
		if r := recover(); r != nil {
			fields = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	log := p.Logger
	if log == nil {
		log = logging.Discard()
	}
	strategies := p.Strategies
	if strategies == nil {
		strategies = DefaultStrategies()
	}

	doc := NewDocument(text)
	st := NewState()
	for _, s := range strategies {
		res, err := runStrategy(s, doc, st)
		if err != nil {
			log.WithError(err).Warn("Extraction stage failed",
				logging.F(logging.FieldStrategy, s.Name()))
			res.Err = err
		} else {
			res.Applied = st.Apply(res)
			for _, f := range res.Applied {
				log.Debug("Field extracted",
					logging.F(logging.FieldStrategy, res.Strategy),
					logging.F(logging.FieldField, string(f)),
					logging.F(logging.FieldValue, st.Value(f)))
			}
		}
		if p.Trace != nil {
			p.Trace(res)
		}
	}

	return Sanitize(st.Fields()), nil
}
