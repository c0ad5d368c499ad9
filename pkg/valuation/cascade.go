package valuation

import (
	"math"

	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// Ceilings holds the top ceiling and the three cascaded grade ceilings.
type Ceilings struct {
	APlus float64
	A     float64
	B     float64
	C     float64
}

// Cascade derives the A, B and C ceilings from the A+ ceiling. Each step
// applies its haircut to the previous, already rounded, ceiling.
func Cascade(ceilingAPlus, pctA, pctB, pctC float64) Ceilings {
	c := Ceilings{APlus: ceilingAPlus}
	c.A = round(c.APlus * (1 - pctA))
	c.B = round(c.A * (1 - pctB))
	c.C = round(c.B * (1 - pctC))
	return c
}

// ForGrade returns the ceiling matching g. Unknown grades get the lowest one.
func (c Ceilings) ForGrade(g domain.Grade) float64 {
	switch g {
	case domain.GradeAPlus:
		return c.APlus
	case domain.GradeA:
		return c.A
	case domain.GradeB:
		return c.B
	default:
		return c.C
	}
}

// Min returns the smallest of the four ceilings.
func (c Ceilings) Min() float64 {
	return math.Min(math.Min(c.APlus, c.A), math.Min(c.B, c.C))
}

// SelectCeiling picks V_tope. A device that passed the gate gets the ceiling
// of its grade. A defective device does not get a grade ceiling; instead:
//
//	screen failed, housing ok   -> A+ ceiling (deductions carry the screen)
//	screen ok, housing failed   -> B ceiling
//	otherwise                   -> lowest ceiling
//
// The defective branch is not monotonic in housing condition.
func SelectCeiling(gate domain.Gate, grade domain.Grade, in domain.ConditionInput, c Ceilings) float64 {
	if gate == domain.GateOK {
		return c.ForGrade(grade)
	}

	screenOK := glassIntact(in.Glass) && in.Display == domain.DisplayOK
	housingOK := in.Housing != domain.HousingDoblado

	switch {
	case !screenOK && housingOK:
		return c.APlus
	case screenOK && !housingOK:
		return c.B
	default:
		return c.Min()
	}
}

// glassIntact reports whether the glass finding leaves the screen usable.
func glassIntact(g domain.GlassStatus) bool {
	switch g {
	case domain.GlassNone, domain.GlassMicro, domain.GlassVisible:
		return true
	default:
		return false
	}
}
