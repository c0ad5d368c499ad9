package valuation

import (
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// EvaluateGate classifies an answer-set as OK or DEFECTUOSO. Any single
// disqualifying finding fails the gate. Unanswered (nil) questions never fail
// it.
func EvaluateGate(in domain.ConditionInput) domain.Gate {
	switch {
	case isFalse(in.PowersOn), isFalse(in.Charges):
		return domain.GateDefectuoso
	case in.Display != domain.DisplayOK:
		return domain.GateDefectuoso
	case glassBroken(in.Glass):
		return domain.GateDefectuoso
	case in.Housing == domain.HousingDoblado:
		return domain.GateDefectuoso
	case isFalse(in.BasicFunctionsOK):
		return domain.GateDefectuoso
	default:
		return domain.GateOK
	}
}

// glassBroken reports whether the glass finding needs a screen replacement.
func glassBroken(g domain.GlassStatus) bool {
	switch g {
	case domain.GlassDeep, domain.GlassChip, domain.GlassCrack:
		return true
	default:
		return false
	}
}

func isFalse(b *bool) bool { return b != nil && !*b }

func isTrue(b *bool) bool { return b != nil && *b }
