package valuation

import (
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

const (
	// HandlingSurcharge is the flat cost added to every triggered repair.
	HandlingSurcharge = 35.0

	// BatteryHealthThreshold is the health percentage below which the
	// battery is replaced.
	BatteryHealthThreshold = 85.0
)

// Deduct computes the itemized repair deductions. Each item is either 0 or
// its repair cost plus HandlingSurcharge. An unknown battery health never
// triggers the battery deduction. FunctionalPct is left at 0; Compute fills
// it in when the penalty applies.
func Deduct(in domain.ConditionInput, p domain.GradingParams) domain.Deductions {
	var d domain.Deductions

	if in.BatteryHealthPct != nil && *in.BatteryHealthPct < BatteryHealthThreshold {
		d.Battery = p.RepairCostBattery + HandlingSurcharge
	}
	if in.Display != domain.DisplayOK || glassBroken(in.Glass) {
		d.Screen = p.RepairCostScreen + HandlingSurcharge
	}
	if in.Housing == domain.HousingDesgasteVisible || in.Housing == domain.HousingDoblado {
		d.Housing = p.RepairCostHousing + HandlingSurcharge
	}

	return d
}
