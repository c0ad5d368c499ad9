package valuation

import (
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// ClassifyGrade maps a glass/housing combination to an aesthetic grade. Rows
// are checked top-down and the first match wins; anything unmatched is C.
//
//	glass            housing               grade
//	NONE             SIN_SIGNOS            A+
//	NONE, MICRO      SIN_SIGNOS, MINIMOS   A
//	MICRO, VISIBLE   MINIMOS, ALGUNOS      B
func ClassifyGrade(glass domain.GlassStatus, housing domain.HousingStatus) domain.Grade {
	switch {
	case glass == domain.GlassNone && housing == domain.HousingSinSignos:
		return domain.GradeAPlus
	case (glass == domain.GlassNone || glass == domain.GlassMicro) &&
		(housing == domain.HousingMinimos || housing == domain.HousingSinSignos):
		return domain.GradeA
	case (glass == domain.GlassVisible || glass == domain.GlassMicro) &&
		(housing == domain.HousingAlgunos || housing == domain.HousingMinimos):
		return domain.GradeB
	default:
		return domain.GradeC
	}
}
