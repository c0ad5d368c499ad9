package valuation

import (
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// referenceParams is the reference parameter set used across the tests.
func referenceParams() domain.GradingParams {
	return domain.GradingParams{
		CeilingAPlus:      500,
		PctA:              0.08,
		PctB:              0.12,
		PctC:              0.15,
		FloorValue:        domain.Float(50),
		RepairCostBattery: 60,
		RepairCostScreen:  120,
		RepairCostHousing: 140,
	}
}

// perfectInput is a device with every answer in its best state.
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
