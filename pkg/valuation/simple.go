package valuation

import (
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// factorBand maps base prices below UpperBound to a discount factor.
type factorBand struct {
	upperBound float64 // 0 means no upper limit
	factor     float64
}

// factorBands is ordered by price; pricier devices keep more of their value.
var factorBands = [...]factorBand{
	{upperBound: 150, factor: 0.76},
	{upperBound: 300, factor: 0.77},
	{upperBound: 500, factor: 0.80},
	{upperBound: 800, factor: 0.83},
	{upperBound: 1200, factor: 0.86},
	{upperBound: 0, factor: 0.89},
}

// FactorFor returns the per-tier discount factor for a base price.
func FactorFor(basePrice float64) float64 {
	for _, b := range factorBands {
		if b.upperBound == 0 || basePrice < b.upperBound {
			return b.factor
		}
	}
	return factorBands[len(factorBands)-1].factor
}

// PriceSimple prices a device with the three-tier model. Each tier below
// excelente applies the factor once more. Labels outside the three tiers,
// including the review sentinel, price to 0.
func PriceSimple(cond domain.SimpleCondition, basePrice float64) float64 {
	f := FactorFor(basePrice)

	var price float64
	switch cond {
	case domain.ConditionExcelente:
		price = round(basePrice)
	case domain.ConditionMuyBueno:
		price = round(basePrice * f)
	case domain.ConditionBueno:
		price = round(basePrice * f * f)
	default:
		return 0
	}
	return finite(price)
}

// DeriveCondition labels raw inspection answers for the three-tier model.
// Critical failures send the device to manual review.
func DeriveCondition(insp domain.SimpleInspection) domain.SimpleCondition {
	switch {
	case !insp.PowersOn || insp.ScreenBroken || insp.HardwareError:
		return domain.ConditionPorRevisar
	case insp.Physical == domain.PhysicalPerfecto && insp.FunctionsWork:
		return domain.ConditionExcelente
	case insp.Physical == domain.PhysicalBueno && insp.FunctionsWork:
		return domain.ConditionMuyBueno
	default:
		return domain.ConditionBueno
	}
}
