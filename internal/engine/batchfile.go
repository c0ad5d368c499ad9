package engine

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/tradein-valuator/pkg/inspect"
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
	"github.com/donaldgifford/tradein-valuator/pkg/valuation"
)

// batchFile is the on-disk batch format:
//
//	items:
//	  - id: tk-1001
//	    model: iphone-13-128
//	    answers: {powers_on: true, display: perfecta, glass: micro rayas, housing: algunos}
//	  - id: tk-1002
//	    strategy: simple
//	    model: galaxy-a54
//	    condition: muy_bueno
type batchFile struct {
	Items []batchEntry `yaml:"items"`
}

type batchEntry struct {
	ID         string                 `yaml:"id"`
	Strategy   valuation.Kind         `yaml:"strategy"` // default: graded
	Model      string                 `yaml:"model"`
	Answers    *inspect.Answers       `yaml:"answers"`
	BasePrice  float64                `yaml:"base_price"`
	Condition  domain.SimpleCondition `yaml:"condition"`
	Inspection *inspect.SimpleAnswers `yaml:"inspection"`
}

// ParseBatch decodes a batch file, normalizing questionnaire answers. Every
// malformed entry is reported.
func ParseBatch(data []byte) ([]BatchItem, error) {
	var f batchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing batch YAML: %w", err)
	}

	items := make([]BatchItem, 0, len(f.Items))
	var errs []error

	for i := range f.Items {
		item, err := f.Items[i].toItem()
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d (%s): %w", i, f.Items[i].ID, err))
			continue
		}
		items = append(items, item)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *batchEntry) toItem() (BatchItem, error) {
	switch b.Strategy {
	case "", valuation.KindGraded:
		if b.Model == "" {
			return BatchItem{}, errors.New("graded items need a model")
		}
		if b.Answers == nil {
			return BatchItem{}, errors.New("graded items need answers")
		}
		in, err := b.Answers.ConditionInput()
		if err != nil {
			return BatchItem{}, err
		}
		return BatchItem{Graded: &GradedRequest{ID: b.ID, Model: b.Model, Input: in}}, nil

	case valuation.KindSimple:
		req := &SimpleRequest{
			ID:        b.ID,
			Model:     b.Model,
			BasePrice: b.BasePrice,
			Condition: b.Condition,
		}
		if b.Inspection != nil {
			insp, err := b.Inspection.Inspection()
			if err != nil {
				return BatchItem{}, err
			}
			req.Inspection = &insp
		}
		return BatchItem{Simple: req}, nil

	default:
		return BatchItem{}, fmt.Errorf("unknown strategy %q", b.Strategy)
	}
}
