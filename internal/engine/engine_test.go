package engine

import (
	"context"
	"errors"
	"testing"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/tradein-valuator/internal/catalog"
	"github.com/donaldgifford/tradein-valuator/internal/metrics"
	"github.com/donaldgifford/tradein-valuator/pkg/logger"
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
	"github.com/donaldgifford/tradein-valuator/pkg/valuation"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Lookup(id string) (catalog.Model, error) {
	args := m.Called(id)
	return args.Get(0).(catalog.Model), args.Error(1)
}

func referenceModel() catalog.Model {
	return catalog.Model{
		ID:   "iphone-13-128",
		Name: "iPhone 13 128GB",
		Params: domain.GradingParams{
			CeilingAPlus:      500,
			PctA:              0.08,
			PctB:              0.12,
			PctC:              0.15,
			FloorValue:        domain.Float(50),
			RepairCostBattery: 60,
			RepairCostScreen:  120,
			RepairCostHousing: 140,
		},
	}
}

func perfectInput() domain.ConditionInput {
	return domain.ConditionInput{
		PowersOn:         domain.Bool(true),
		Charges:          domain.Bool(true),
		BasicFunctionsOK: domain.Bool(true),
		BatteryHealthPct: domain.Float(100),
		Display:          domain.DisplayOK,
		Glass:            domain.GlassNone,
		Housing:          domain.HousingSinSignos,
	}
}

func newTestEngine(c Catalog, opts ...EngineOption) *Engine {
	opts = append([]EngineOption{
		WithLogger(logger.Discard()),
		WithIDFunc(func() string { return "generated-id" }),
	}, opts...)
	return NewEngine(c, opts...)
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	e := NewEngine(&mockCatalog{})
	assert.InDelta(t, defaultPenaltyPct, e.penaltyPct, 1e-9)
	assert.Equal(t, defaultConcurrency, e.concurrency)
	assert.Equal(t, valuation.DefaultFloorBands(), e.bands)
	assert.NotEmpty(t, e.newID())
}

func TestNewEngine_Options(t *testing.T) {
	t.Parallel()

	bands := valuation.FloorBands{{Pct: 0.5, Minimum: 5}}
	e := NewEngine(&mockCatalog{},
		WithFunctionalPenalty(0.25),
		WithFloorBands(bands),
		WithConcurrency(9),
	)
	assert.InDelta(t, 0.25, e.penaltyPct, 1e-9)
	assert.Equal(t, bands, e.bands)
	assert.Equal(t, 9, e.concurrency)

	e = NewEngine(&mockCatalog{}, WithFloorBands(nil), WithConcurrency(0), WithIDFunc(nil))
	assert.Equal(t, valuation.DefaultFloorBands(), e.bands)
	assert.Equal(t, defaultConcurrency, e.concurrency)
	require.NotNil(t, e.newID)
	assert.NotEmpty(t, e.idOr(""))
}

func TestGraded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []EngineOption
		model     func() catalog.Model
		mutate    func(in *domain.ConditionInput)
		wantGate  domain.Gate
		wantGrade domain.Grade
		wantOffer float64
	}{
		{
			name:      "perfect device",
			model:     referenceModel,
			mutate:    func(*domain.ConditionInput) {},
			wantGate:  domain.GateOK,
			wantGrade: domain.GradeAPlus,
			wantOffer: 500,
		},
		{
			name:  "defective device without a configured penalty",
			model: referenceModel,
			mutate: func(in *domain.ConditionInput) {
				in.Display = domain.DisplayLines
			},
			wantGate:  domain.GateDefectuoso,
			wantGrade: domain.GradeC,
			wantOffer: 345,
		},
		{
			name:  "defective device uses the engine penalty",
			opts:  []EngineOption{WithFunctionalPenalty(0.1)},
			model: referenceModel,
			mutate: func(in *domain.ConditionInput) {
				in.Display = domain.DisplayLines
			},
			wantGate:  domain.GateDefectuoso,
			wantGrade: domain.GradeC,
			wantOffer: 310,
		},
		{
			name: "model penalty overrides the engine penalty",
			model: func() catalog.Model {
				m := referenceModel()
				m.Params.FunctionalPenaltyPct = domain.Float(0.2)
				return m
			},
			mutate: func(in *domain.ConditionInput) {
				in.Display = domain.DisplayLines
			},
			wantGate:  domain.GateDefectuoso,
			wantGrade: domain.GradeC,
			wantOffer: 275,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mc := &mockCatalog{}
			mc.On("Lookup", "iphone-13-128").Return(tt.model(), nil).Once()

			in := perfectInput()
			tt.mutate(&in)

			res, err := newTestEngine(mc, tt.opts...).Graded(context.Background(), GradedRequest{
				Model: "iphone-13-128",
				Input: in,
			})
			require.NoError(t, err)
			mc.AssertExpectations(t)

			assert.Equal(t, "generated-id", res.ID)
			assert.Equal(t, "iphone-13-128", res.Model)
			assert.Equal(t, valuation.KindGraded, res.Quote.Kind)
			require.NotNil(t, res.Quote.Valuation)
			assert.Equal(t, tt.wantGate, res.Quote.Valuation.Gate)
			assert.Equal(t, tt.wantGrade, res.Quote.Valuation.Grade)
			assert.Equal(t, tt.wantOffer, res.Quote.Offer)
		})
	}
}

// A defective screen on an otherwise perfect device, valued with the
// engine's defaults: 500 - (120+35) = 345.
func TestGraded_DefaultsPriceScreenFailureWithoutPenalty(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(map[string]catalog.Model{"iphone-13-128": referenceModel()})
	require.NoError(t, err)

	in := perfectInput()
	in.Display = domain.DisplayLines

	res, err := NewEngine(c, WithLogger(logger.Discard())).Graded(context.Background(), GradedRequest{
		Model: "iphone-13-128",
		Input: in,
	})
	require.NoError(t, err)

	v := res.Quote.Valuation
	require.NotNil(t, v)
	assert.Equal(t, domain.GateDefectuoso, v.Gate)
	assert.Equal(t, 500.0, v.VTope)
	assert.Equal(t, 155.0, v.Deductions.Screen)
	assert.Zero(t, v.Deductions.FunctionalPct)
	assert.Equal(t, 345.0, v.Offer)
	assert.Equal(t, 345.0, res.Quote.Offer)
}

func TestGraded_KeepsCallerID(t *testing.T) {
	t.Parallel()

	mc := &mockCatalog{}
	mc.On("Lookup", mock.Anything).Return(referenceModel(), nil)

	res, err := newTestEngine(mc).Graded(context.Background(), GradedRequest{
		ID:    "tk-1001",
		Model: "iphone-13-128",
		Input: perfectInput(),
	})
	require.NoError(t, err)
	assert.Equal(t, "tk-1001", res.ID)
}

func TestGraded_Errors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		setup   func(mc *mockCatalog)
		input   func() domain.ConditionInput
		wantErr string
		wantIs  error
	}{
		{
			name:   "cancelled context",
			ctx:    cancelled,
			setup:  func(*mockCatalog) {},
			input:  perfectInput,
			wantIs: context.Canceled,
		},
		{
			name:  "invalid input",
			ctx:   context.Background(),
			setup: func(*mockCatalog) {},
			input: func() domain.ConditionInput {
				in := perfectInput()
				in.Glass = "SHATTERED"
				return in
			},
			wantErr: "validating input",
		},
		{
			name: "unknown model",
			ctx:  context.Background(),
			setup: func(mc *mockCatalog) {
				mc.On("Lookup", "iphone-13-128").
					Return(catalog.Model{}, catalog.ErrModelNotFound)
			},
			input:   perfectInput,
			wantErr: "looking up model",
			wantIs:  catalog.ErrModelNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mc := &mockCatalog{}
			tt.setup(mc)

			_, err := newTestEngine(mc).Graded(tt.ctx, GradedRequest{
				Model: "iphone-13-128",
				Input: tt.input(),
			})
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			mc.AssertExpectations(t)
		})
	}
}

func TestSimple(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		req           SimpleRequest
		lookup        bool
		wantCondition domain.SimpleCondition
		wantOffer     float64
	}{
		{
			name:          "explicit condition and base price",
			req:           SimpleRequest{Condition: domain.ConditionMuyBueno, BasePrice: 200},
			wantCondition: domain.ConditionMuyBueno,
			wantOffer:     154,
		},
		{
			name:          "base price from the catalog ceiling",
			req:           SimpleRequest{Model: "iphone-13-128", Condition: domain.ConditionExcelente},
			lookup:        true,
			wantCondition: domain.ConditionExcelente,
			wantOffer:     500,
		},
		{
			name: "condition derived from inspection",
			req: SimpleRequest{
				BasePrice: 200,
				Inspection: &domain.SimpleInspection{
					PowersOn:      true,
					FunctionsWork: true,
					Physical:      domain.PhysicalBueno,
				},
			},
			wantCondition: domain.ConditionMuyBueno,
			wantOffer:     154,
		},
		{
			name: "critical failure goes to review",
			req: SimpleRequest{
				BasePrice:  200,
				Inspection: &domain.SimpleInspection{PowersOn: false, Physical: domain.PhysicalPerfecto},
			},
			wantCondition: domain.ConditionPorRevisar,
			wantOffer:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mc := &mockCatalog{}
			if tt.lookup {
				mc.On("Lookup", tt.req.Model).Return(referenceModel(), nil).Once()
			}

			res, err := newTestEngine(mc).Simple(context.Background(), tt.req)
			require.NoError(t, err)
			mc.AssertExpectations(t)

			assert.Equal(t, valuation.KindSimple, res.Quote.Kind)
			assert.Nil(t, res.Quote.Valuation)
			assert.Equal(t, tt.wantCondition, res.Quote.Condition)
			assert.Equal(t, tt.wantOffer, res.Quote.Offer)
		})
	}
}

func TestSimple_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     SimpleRequest
		setup   func(mc *mockCatalog)
		wantErr string
	}{
		{
			name:    "unknown condition",
			req:     SimpleRequest{Condition: "nuevo", BasePrice: 200},
			wantErr: `unknown condition "nuevo"`,
		},
		{
			name:    "neither condition nor inspection",
			req:     SimpleRequest{BasePrice: 200},
			wantErr: "either condition or inspection is required",
		},
		{
			name:    "no base price and no model",
			req:     SimpleRequest{Condition: domain.ConditionBueno},
			wantErr: "positive base price",
		},
		{
			name:    "negative base price",
			req:     SimpleRequest{Condition: domain.ConditionBueno, BasePrice: -10},
			wantErr: "positive base price",
		},
		{
			name: "unknown model",
			req:  SimpleRequest{Model: "nokia-3310", Condition: domain.ConditionBueno},
			setup: func(mc *mockCatalog) {
				mc.On("Lookup", "nokia-3310").Return(catalog.Model{}, catalog.ErrModelNotFound)
			},
			wantErr: "looking up model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mc := &mockCatalog{}
			if tt.setup != nil {
				tt.setup(mc)
			}

			_, err := newTestEngine(mc).Simple(context.Background(), tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			mc.AssertExpectations(t)
		})
	}
}

// Metric tests are not parallel: they read package-level collectors.

func TestGraded_RecordsMetrics(t *testing.T) {
	mc := &mockCatalog{}
	mc.On("Lookup", mock.Anything).Return(referenceModel(), nil)
	e := newTestEngine(mc)

	valuations := metrics.ValuationsTotal.WithLabelValues("graded", "DEFECTUOSO", "C")
	floors := metrics.FloorAppliedTotal
	screens := metrics.DeductionsTotal.WithLabelValues("screen")
	housings := metrics.DeductionsTotal.WithLabelValues("housing")

	beforeValuations := ptestutil.ToFloat64(valuations)
	beforeFloors := ptestutil.ToFloat64(floors)
	beforeScreens := ptestutil.ToFloat64(screens)
	beforeHousings := ptestutil.ToFloat64(housings)

	in := perfectInput()
	in.Glass = domain.GlassCrack
	in.Housing = domain.HousingDoblado
	in.BatteryHealthPct = domain.Float(20)

	res, err := e.Graded(context.Background(), GradedRequest{Model: "iphone-13-128", Input: in})
	require.NoError(t, err)
	require.True(t, res.Quote.Valuation.FloorApplied)

	assert.InDelta(t, beforeValuations+1, ptestutil.ToFloat64(valuations), 1e-9)
	assert.InDelta(t, beforeFloors+1, ptestutil.ToFloat64(floors), 1e-9)
	assert.InDelta(t, beforeScreens+1, ptestutil.ToFloat64(screens), 1e-9)
	assert.InDelta(t, beforeHousings+1, ptestutil.ToFloat64(housings), 1e-9)
}

func TestLookup_RecordsErrorMetric(t *testing.T) {
	mc := &mockCatalog{}
	mc.On("Lookup", "missing").Return(catalog.Model{}, errors.New("boom"))

	counter := metrics.ValuationErrorsTotal.WithLabelValues("unknown_model")
	before := ptestutil.ToFloat64(counter)

	_, err := newTestEngine(mc).Graded(context.Background(), GradedRequest{
		Model: "missing",
		Input: perfectInput(),
	})
	require.Error(t, err)
	assert.InDelta(t, before+1, ptestutil.ToFloat64(counter), 1e-9)
}
