package inspect

import (
	"errors"
	"fmt"

	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// Answers is one questionnaire submission for the graded model, with the
// cosmetic findings still in their free-text form.
type Answers struct {
	PowersOn         *bool    `json:"powers_on,omitempty"          yaml:"powers_on,omitempty"`
	Charges          *bool    `json:"charges,omitempty"            yaml:"charges,omitempty"`
	BasicFunctionsOK *bool    `json:"basic_functions_ok,omitempty" yaml:"basic_functions_ok,omitempty"`
	BatteryHealthPct *float64 `json:"battery_health_pct,omitempty" yaml:"battery_health_pct,omitempty"`

	Display string `json:"display" yaml:"display"`
	Glass   string `json:"glass"   yaml:"glass"`
	Housing string `json:"housing" yaml:"housing"`
}

// ConditionInput normalizes the answers. Every unrecognized field is reported.
func (a *Answers) ConditionInput() (domain.ConditionInput, error) {
	var errs []error

	display, err := NormalizeDisplay(a.Display)
	if err != nil {
		errs = append(errs, err)
	}
	glass, err := NormalizeGlass(a.Glass)
	if err != nil {
		errs = append(errs, err)
	}
	housing, err := NormalizeHousing(a.Housing)
	if err != nil {
		errs = append(errs, err)
	}
	if b := a.BatteryHealthPct; b != nil && (!domain.Finite(*b) || *b < 0 || *b > 100) {
		errs = append(errs, fmt.Errorf(
			"battery_health_pct must be within [0,100] (got %v)", *b,
		))
	}

	if err := errors.Join(errs...); err != nil {
		return domain.ConditionInput{}, err
	}

	return domain.ConditionInput{
		PowersOn:         a.PowersOn,
		Charges:          a.Charges,
		BasicFunctionsOK: a.BasicFunctionsOK,
		BatteryHealthPct: a.BatteryHealthPct,
		Display:          display,
		Glass:            glass,
		Housing:          housing,
	}, nil
}

// SimpleAnswers is a questionnaire submission for the three-tier model.
type SimpleAnswers struct {
	PowersOn      bool   `json:"powers_on"      yaml:"powers_on"`
	ScreenBroken  bool   `json:"screen_broken"  yaml:"screen_broken"`
	HardwareError bool   `json:"hardware_error" yaml:"hardware_error"`
	FunctionsWork bool   `json:"functions_work" yaml:"functions_work"`
	Physical      string `json:"physical"       yaml:"physical"`
}

// Inspection normalizes the answers.
func (a *SimpleAnswers) Inspection() (domain.SimpleInspection, error) {
	physical, err := NormalizePhysical(a.Physical)
	if err != nil {
		return domain.SimpleInspection{}, err
	}
	return domain.SimpleInspection{
		PowersOn:      a.PowersOn,
		ScreenBroken:  a.ScreenBroken,
		HardwareError: a.HardwareError,
		FunctionsWork: a.FunctionsWork,
		Physical:      physical,
	}, nil
}
