// Package engine runs valuations against the model catalog: it resolves
// grading parameters, picks the rule set, records metrics and fans batches
// out concurrently.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/donaldgifford/tradein-valuator/internal/catalog"
	"github.com/donaldgifford/tradein-valuator/internal/metrics"
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
	"github.com/donaldgifford/tradein-valuator/pkg/valuation"
)

const (
	defaultPenaltyPct  = 0.0
	defaultConcurrency = 4
)

// Catalog resolves model ids to grading parameters.
type Catalog interface {
	Lookup(id string) (catalog.Model, error)
}

// Engine values devices using parameters from a Catalog.
type Engine struct {
	catalog     Catalog
	log         *slog.Logger
	penaltyPct  float64
	bands       valuation.FloorBands
	concurrency int
	newID       func() string
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(c Catalog, opts ...EngineOption) *Engine {
	eng := &Engine{
		catalog:     c,
		log:         slog.Default(),
		penaltyPct:  defaultPenaltyPct,
		bands:       valuation.DefaultFloorBands(),
		concurrency: defaultConcurrency,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithFunctionalPenalty sets the penalty used for models without their own.
func WithFunctionalPenalty(pct float64) EngineOption {
	return func(e *Engine) {
		e.penaltyPct = pct
	}
}

// WithFloorBands replaces the floor table. An empty table is ignored.
func WithFloorBands(b valuation.FloorBands) EngineOption {
	return func(e *Engine) {
		if len(b) > 0 {
			e.bands = b
		}
	}
}

// WithConcurrency sets how many batch items are valued at once.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithIDFunc sets the generator for request ids left empty by the caller.
// A nil generator is ignored.
func WithIDFunc(f func() string) EngineOption {
	return func(e *Engine) {
		if f != nil {
			e.newID = f
		}
	}
}

// GradedRequest asks for a graded valuation of one device.
type GradedRequest struct {
	ID    string                `json:"id,omitempty"`
	Model string                `json:"model"`
	Input domain.ConditionInput `json:"input"`
}

// SimpleRequest asks for a three-tier valuation. Condition wins over
// Inspection; BasePrice wins over the model's base price.
type SimpleRequest struct {
	ID         string                   `json:"id,omitempty"`
	Model      string                   `json:"model,omitempty"`
	BasePrice  float64                  `json:"base_price,omitempty"`
	Condition  domain.SimpleCondition   `json:"condition,omitempty"`
	Inspection *domain.SimpleInspection `json:"inspection,omitempty"`
}

// Result is the outcome of one request.
type Result struct {
	ID    string          `json:"id"`
	Model string          `json:"model,omitempty"`
	Quote valuation.Quote `json:"quote"`

	// Err is set only for failed batch items.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// Graded values a device with the graded model.
func (e *Engine) Graded(ctx context.Context, req GradedRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := req.Input.Validate(); err != nil {
		metrics.ValuationErrorsTotal.WithLabelValues("invalid_input").Inc()
		return Result{}, fmt.Errorf("validating input: %w", err)
	}

	model, err := e.lookup(req.Model)
	if err != nil {
		return Result{}, err
	}

	penalty := e.penaltyPct
	if model.Params.FunctionalPenaltyPct != nil {
		penalty = *model.Params.FunctionalPenaltyPct
	}

	q := valuation.Price(valuation.Graded{
		Input:                req.Input,
		Params:               model.Params,
		FunctionalPenaltyPct: penalty,
		Bands:                e.bands,
	})
	record(q)

	res := Result{ID: e.idOr(req.ID), Model: req.Model, Quote: q}
	e.log.Debug("graded valuation",
		"id", res.ID,
		"model", res.Model,
		"gate", q.Valuation.Gate,
		"grade", q.Valuation.Grade,
		"v_tope", q.Valuation.VTope,
		"offer", q.Offer,
	)

	return res, nil
}

// Simple values a device with the three-tier model.
func (e *Engine) Simple(ctx context.Context, req SimpleRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cond := req.Condition
	switch {
	case cond != "" && !cond.Valid():
		metrics.ValuationErrorsTotal.WithLabelValues("invalid_input").Inc()
		return Result{}, fmt.Errorf("unknown condition %q", cond)
	case cond == "" && req.Inspection == nil:
		metrics.ValuationErrorsTotal.WithLabelValues("invalid_input").Inc()
		return Result{}, errors.New("either condition or inspection is required")
	case cond == "":
		cond = valuation.DeriveCondition(*req.Inspection)
	}

	base := req.BasePrice
	if base == 0 && req.Model != "" {
		model, err := e.lookup(req.Model)
		if err != nil {
			return Result{}, err
		}
		base = model.SimpleBasePrice()
	}
	if base <= 0 {
		metrics.ValuationErrorsTotal.WithLabelValues("invalid_input").Inc()
		return Result{}, errors.New("a positive base price or a catalog model is required")
	}

	q := valuation.Price(valuation.Simple{Condition: cond, BasePrice: base})
	record(q)

	res := Result{ID: e.idOr(req.ID), Model: req.Model, Quote: q}
	e.log.Debug("simple valuation",
		"id", res.ID,
		"model", res.Model,
		"condition", cond,
		"base_price", base,
		"offer", q.Offer,
	)

	return res, nil
}

func (e *Engine) lookup(id string) (catalog.Model, error) {
	m, err := e.catalog.Lookup(id)
	if err != nil {
		metrics.ValuationErrorsTotal.WithLabelValues("unknown_model").Inc()
		return catalog.Model{}, fmt.Errorf("looking up model: %w", err)
	}
	return m, nil
}

func (e *Engine) idOr(id string) string {
	if id != "" {
		return id
	}
	return e.newID()
}

// record updates the valuation metrics for q.
func record(q valuation.Quote) {
	gate, grade := "", string(q.Condition)
	if v := q.Valuation; v != nil {
		gate, grade = string(v.Gate), string(v.Grade)
		if v.Deductions.Battery > 0 {
			metrics.DeductionsTotal.WithLabelValues("battery").Inc()
		}
		if v.Deductions.Screen > 0 {
			metrics.DeductionsTotal.WithLabelValues("screen").Inc()
		}
		if v.Deductions.Housing > 0 {
			metrics.DeductionsTotal.WithLabelValues("housing").Inc()
		}
		if v.Deductions.FunctionalPct > 0 {
			metrics.DeductionsTotal.WithLabelValues("functional").Inc()
		}
		if v.FloorApplied {
			metrics.FloorAppliedTotal.Inc()
		}
	}

	metrics.ValuationsTotal.WithLabelValues(string(q.Kind), gate, grade).Inc()
	metrics.OfferAmount.WithLabelValues(string(q.Kind)).Observe(q.Offer)
}
