// Package domain defines the core business types for device trade-in valuation.
package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// DisplayImageStatus is the inspected state of the panel image.
type DisplayImageStatus string

// Display image status constants, in severity order.
const (
	DisplayOK     DisplayImageStatus = "OK"
	DisplayPixels DisplayImageStatus = "PIX"
	DisplayLines  DisplayImageStatus = "LINES"
	DisplayBurn   DisplayImageStatus = "BURN"
	DisplayMura   DisplayImageStatus = "MURA"
)

// GlassStatus is the inspected state of the front glass.
type GlassStatus string

// Glass status constants, in severity order.
const (
	GlassNone    GlassStatus = "NONE"
	GlassMicro   GlassStatus = "MICRO"
	GlassVisible GlassStatus = "VISIBLE"
	GlassDeep    GlassStatus = "DEEP"
	GlassChip    GlassStatus = "CHIP"
	GlassCrack   GlassStatus = "CRACK"
)

// HousingStatus is the inspected state of the frame and back.
type HousingStatus string

// Housing status constants, in severity order.
const (
	HousingSinSignos       HousingStatus = "SIN_SIGNOS"
	HousingMinimos         HousingStatus = "MINIMOS"
	HousingAlgunos         HousingStatus = "ALGUNOS"
	HousingDesgasteVisible HousingStatus = "DESGASTE_VISIBLE"
	HousingDoblado         HousingStatus = "DOBLADO"
)

// Gate is the pass/fail eligibility classification of a device.
type Gate string

// Gate constants.
const (
	GateOK         Gate = "OK"
	GateDefectuoso Gate = "DEFECTUOSO"
)

// Grade is the aesthetic tier that selects a price ceiling.
type Grade string

// Grade constants, best first.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
)

// SimpleCondition is the label used by the three-tier pricing path.
type SimpleCondition string

// Simple condition constants. ConditionPorRevisar is a sentinel outside the
// three priced tiers; devices carrying it need a manual review and price to 0.
const (
	ConditionExcelente  SimpleCondition = "excelente"
	ConditionMuyBueno   SimpleCondition = "muy_bueno"
	ConditionBueno      SimpleCondition = "bueno"
	ConditionPorRevisar SimpleCondition = "por_revisar"
)

// PhysicalCondition is the coarse cosmetic answer used to derive a SimpleCondition.
type PhysicalCondition string

// Physical condition constants.
const (
	PhysicalPerfecto PhysicalCondition = "perfecto"
	PhysicalBueno    PhysicalCondition = "bueno"
	PhysicalRegular  PhysicalCondition = "regular"
)

// AllDisplayImageStatuses returns every display status in severity order.
func AllDisplayImageStatuses() []DisplayImageStatus {
	return []DisplayImageStatus{DisplayOK, DisplayPixels, DisplayLines, DisplayBurn, DisplayMura}
}

// AllGlassStatuses returns every glass status in severity order.
func AllGlassStatuses() []GlassStatus {
	return []GlassStatus{GlassNone, GlassMicro, GlassVisible, GlassDeep, GlassChip, GlassCrack}
}

// AllHousingStatuses returns every housing status in severity order.
func AllHousingStatuses() []HousingStatus {
	return []HousingStatus{
		HousingSinSignos,
		HousingMinimos,
		HousingAlgunos,
		HousingDesgasteVisible,
		HousingDoblado,
	}
}

// AllGrades returns every grade, best first.
func AllGrades() []Grade {
	return []Grade{GradeAPlus, GradeA, GradeB, GradeC}
}

// AllSimpleConditions returns the three priced tiers plus the review sentinel.
func AllSimpleConditions() []SimpleCondition {
	return []SimpleCondition{
		ConditionExcelente,
		ConditionMuyBueno,
		ConditionBueno,
		ConditionPorRevisar,
	}
}

// AllPhysicalConditions returns every physical condition, best first.
func AllPhysicalConditions() []PhysicalCondition {
	return []PhysicalCondition{PhysicalPerfecto, PhysicalBueno, PhysicalRegular}
}

// Valid reports whether s is part of the closed vocabulary.
func (s DisplayImageStatus) Valid() bool { return slices.Contains(AllDisplayImageStatuses(), s) }

// Valid reports whether s is part of the closed vocabulary.
func (s GlassStatus) Valid() bool { return slices.Contains(AllGlassStatuses(), s) }

// Valid reports whether s is part of the closed vocabulary.
func (s HousingStatus) Valid() bool { return slices.Contains(AllHousingStatuses(), s) }

// Valid reports whether g is a known grade.
func (g Grade) Valid() bool { return slices.Contains(AllGrades(), g) }

// Valid reports whether c is a known condition label.
func (c SimpleCondition) Valid() bool { return slices.Contains(AllSimpleConditions(), c) }

// Valid reports whether c is a known physical condition.
func (c PhysicalCondition) Valid() bool { return slices.Contains(AllPhysicalConditions(), c) }

// Severity returns the position of s in severity order, or -1 if unknown.
func (s DisplayImageStatus) Severity() int { return slices.Index(AllDisplayImageStatuses(), s) }

// Severity returns the position of s in severity order, or -1 if unknown.
func (s GlassStatus) Severity() int { return slices.Index(AllGlassStatuses(), s) }

// Severity returns the position of s in severity order, or -1 if unknown.
func (s HousingStatus) Severity() int { return slices.Index(AllHousingStatuses(), s) }

// GradingParams holds the per-model pricing parameters supplied by the catalog.
type GradingParams struct {
	CeilingAPlus float64 `json:"ceiling_a_plus" yaml:"ceiling_a_plus"`
	PctA         float64 `json:"pct_a"          yaml:"pct_a"`
	PctB         float64 `json:"pct_b"          yaml:"pct_b"`
	PctC         float64 `json:"pct_c"          yaml:"pct_c"`

	// FloorValue overrides the band-resolved floor when set.
	FloorValue *float64 `json:"floor_value,omitempty" yaml:"floor_value,omitempty"`

	RepairCostBattery float64 `json:"repair_cost_battery" yaml:"repair_cost_battery"`
	RepairCostScreen  float64 `json:"repair_cost_screen"  yaml:"repair_cost_screen"`
	RepairCostHousing float64 `json:"repair_cost_housing" yaml:"repair_cost_housing"`

	// FunctionalPenaltyPct overrides the configured functional penalty for this model.
	FunctionalPenaltyPct *float64 `json:"functional_penalty_pct,omitempty" yaml:"functional_penalty_pct,omitempty"`
}

// Validate reports every constraint the parameters violate. NaN and infinite
// values are rejected before any range check.
func (p *GradingParams) Validate() error {
	var errs []error

	type field struct {
		name string
		v    float64
	}
	fields := []field{
		{"ceiling_a_plus", p.CeilingAPlus},
		{"pct_a", p.PctA},
		{"pct_b", p.PctB},
		{"pct_c", p.PctC},
		{"repair_cost_battery", p.RepairCostBattery},
		{"repair_cost_screen", p.RepairCostScreen},
		{"repair_cost_housing", p.RepairCostHousing},
	}
	if p.FloorValue != nil {
		fields = append(fields, field{"floor_value", *p.FloorValue})
	}
	if p.FunctionalPenaltyPct != nil {
		fields = append(fields, field{"functional_penalty_pct", *p.FunctionalPenaltyPct})
	}
	for _, f := range fields {
		if !Finite(f.v) {
			errs = append(errs, fmt.Errorf("%s must be a finite number (got %v)", f.name, f.v))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if p.CeilingAPlus < 0 {
		errs = append(errs, fmt.Errorf("ceiling_a_plus must be >= 0 (got %v)", p.CeilingAPlus))
	}
	for _, pct := range fields[1:4] {
		if pct.v < 0 || pct.v >= 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1) (got %v)", pct.name, pct.v))
		}
	}
	if p.FloorValue != nil && *p.FloorValue < 0 {
		errs = append(errs, fmt.Errorf("floor_value must be >= 0 (got %v)", *p.FloorValue))
	}
	if p.RepairCostBattery < 0 || p.RepairCostScreen < 0 || p.RepairCostHousing < 0 {
		errs = append(errs, errors.New("repair costs must be >= 0"))
	}
	if p.FunctionalPenaltyPct != nil && (*p.FunctionalPenaltyPct < 0 || *p.FunctionalPenaltyPct > 1) {
		errs = append(errs, fmt.Errorf(
			"functional_penalty_pct must be in [0,1] (got %v)", *p.FunctionalPenaltyPct,
		))
	}

	return errors.Join(errs...)
}

// ConditionInput is one inspection answer-set. Nil pointers mean the question
// was not answered.
type ConditionInput struct {
	PowersOn         *bool    `json:"powers_on,omitempty"          yaml:"powers_on,omitempty"`
	Charges          *bool    `json:"charges,omitempty"            yaml:"charges,omitempty"`
	BasicFunctionsOK *bool    `json:"basic_functions_ok,omitempty" yaml:"basic_functions_ok,omitempty"`
	BatteryHealthPct *float64 `json:"battery_health_pct,omitempty" yaml:"battery_health_pct,omitempty"`

	Display DisplayImageStatus `json:"display_image_status" yaml:"display_image_status"`
	Glass   GlassStatus        `json:"glass_status"         yaml:"glass_status"`
	Housing HousingStatus      `json:"housing_status"       yaml:"housing_status"`
}

// Validate rejects enum values outside the closed vocabularies.
func (in *ConditionInput) Validate() error {
	var errs []error
	if !in.Display.Valid() {
		errs = append(errs, fmt.Errorf("unknown display_image_status %q", in.Display))
	}
	if !in.Glass.Valid() {
		errs = append(errs, fmt.Errorf("unknown glass_status %q", in.Glass))
	}
	if !in.Housing.Valid() {
		errs = append(errs, fmt.Errorf("unknown housing_status %q", in.Housing))
	}
	return errors.Join(errs...)
}

// Deductions itemizes what was taken off the selected ceiling.
type Deductions struct {
	Battery       float64 `json:"battery"`
	Screen        float64 `json:"screen"`
	Housing       float64 `json:"housing"`
	FunctionalPct float64 `json:"functional_pct"`
}

// Total returns the sum of the additive repair deductions.
func (d Deductions) Total() float64 {
	return d.Battery + d.Screen + d.Housing
}

// Valuation is the complete, auditable result of the graded model.
type Valuation struct {
	Gate       Gate       `json:"gate"`
	Grade      Grade      `json:"grado_estetico"`
	VA         float64    `json:"v_a"`
	VB         float64    `json:"v_b"`
	VC         float64    `json:"v_c"`
	VTope      float64    `json:"v_tope"`
	Deductions Deductions `json:"deducciones"`
	Offer      float64    `json:"oferta"`

	Floor        float64 `json:"floor"`
	FloorApplied bool    `json:"floor_applied"`
}

// SimpleInspection holds the raw answers the three-tier path derives its
// condition label from.
type SimpleInspection struct {
	PowersOn      bool              `json:"powers_on"      yaml:"powers_on"`
	ScreenBroken  bool              `json:"screen_broken"  yaml:"screen_broken"`
	HardwareError bool              `json:"hardware_error" yaml:"hardware_error"`
	FunctionsWork bool              `json:"functions_work" yaml:"functions_work"`
	Physical      PhysicalCondition `json:"physical"       yaml:"physical"`
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Bool returns a pointer to b, for building ConditionInput literals.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
