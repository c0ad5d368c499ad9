package valuation

import (
	"math"

	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// Compute runs the graded model with the default floor table.
func Compute(in domain.ConditionInput, p domain.GradingParams, penaltyPct float64) domain.Valuation {
	return ComputeWithBands(in, p, penaltyPct, DefaultFloorBands())
}

// ComputeWithBands runs the graded model end to end:
//
//  1. gate the answer-set;
//  2. grade it (gate OK only) and select V_tope from the cascaded ceilings;
//  3. subtract the repair deductions;
//  4. apply the functional penalty unless the gate passed and basic
//     functions were confirmed working;
//  5. round to a multiple of 5 and clamp at the floor and at 0.
//
// Non-finite intermediates are coerced to 0, so the offer is always a finite,
// non-negative multiple of 5 that is never below Floor.
func ComputeWithBands(
	in domain.ConditionInput,
	p domain.GradingParams,
	penaltyPct float64,
	bands FloorBands,
) domain.Valuation {
	gate := EvaluateGate(in)

	// Defective devices are not graded; they report the lowest grade.
	grade := domain.GradeC
	if gate == domain.GateOK {
		grade = ClassifyGrade(in.Glass, in.Housing)
	}

	ceilings := Cascade(p.CeilingAPlus, p.PctA, p.PctB, p.PctC)
	vTope := SelectCeiling(gate, grade, in, ceilings)

	d := Deduct(in, p)
	v1 := vTope - d.Total()

	v2 := v1
	if gate != domain.GateOK || !isTrue(in.BasicFunctionsOK) {
		v2 = round(v1 * (1 - penaltyPct))
		d.FunctionalPct = finite(penaltyPct)
	}

	floor := floorFor(p.FloorValue, p.CeilingAPlus, bands)
	rounded := roundTo5(finite(v2))
	offer := math.Max(math.Max(rounded, floor), 0)

	return domain.Valuation{
		Gate:  gate,
		Grade: grade,
		VA:    finite(ceilings.A),
		VB:    finite(ceilings.B),
		VC:    finite(ceilings.C),
		VTope: finite(vTope),
		Deductions: domain.Deductions{
			Battery:       finite(d.Battery),
			Screen:        finite(d.Screen),
			Housing:       finite(d.Housing),
			FunctionalPct: d.FunctionalPct,
		},
		Offer:        finite(offer),
		Floor:        floor,
		FloorApplied: rounded < floor,
	}
}
