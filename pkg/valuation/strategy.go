package valuation

import (
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// Kind names a valuation strategy.
type Kind string

// Strategy kinds.
const (
	KindGraded Kind = "graded"
	KindSimple Kind = "simple"
)

// Strategy is a valuation request for one of the two rule sets. It is sealed;
// Graded and Simple are the only implementations.
type Strategy interface {
	Kind() Kind
	quote() Quote
}

// Graded selects the full graded model.
type Graded struct {
	Input                domain.ConditionInput
	Params               domain.GradingParams
	FunctionalPenaltyPct float64

	// Bands replaces the default floor table when non-empty.
	Bands FloorBands
}

// Simple selects the legacy three-tier model.
type Simple struct {
	Condition domain.SimpleCondition
	BasePrice float64
}

// Quote is the common result of either strategy. Valuation is set for the
// graded model and Condition for the simple one.
type Quote struct {
	Kind      Kind                   `json:"kind"`
	Offer     float64                `json:"offer"`
	Valuation *domain.Valuation      `json:"valuation,omitempty"`
	Condition domain.SimpleCondition `json:"condition,omitempty"`
}

// Kind implements Strategy.
func (Graded) Kind() Kind { return KindGraded }

// Kind implements Strategy.
func (Simple) Kind() Kind { return KindSimple }

func (g Graded) quote() Quote {
	bands := g.Bands
	if len(bands) == 0 {
		bands = DefaultFloorBands()
	}
	v := ComputeWithBands(g.Input, g.Params, g.FunctionalPenaltyPct, bands)
	return Quote{Kind: KindGraded, Offer: v.Offer, Valuation: &v}
}

func (s Simple) quote() Quote {
	return Quote{
		Kind:      KindSimple,
		Offer:     PriceSimple(s.Condition, s.BasePrice),
		Condition: s.Condition,
	}
}

// Price values a device with the rule set s selects.
func Price(s Strategy) Quote {
	return s.quote()
}
