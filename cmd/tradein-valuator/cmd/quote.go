package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/tradein-valuator/internal/engine"
	"github.com/donaldgifford/tradein-valuator/pkg/inspect"
	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// quoteOptions holds the quote command's flag values.
type quoteOptions struct {
	model, id               string
	display, glass, housing string
	battery                 float64
	powersOn, charges, fnOK bool
}

// answers builds the questionnaire from the flags. Functional checks and
// battery health left off the command line stay nil (unanswered).
func (o *quoteOptions) answers(c *cobra.Command) inspect.Answers {
	flags := c.Flags()

	a := inspect.Answers{
		Display: o.display,
		Glass:   o.glass,
		Housing: o.housing,
	}
	if flags.Changed("powers-on") {
		a.PowersOn = domain.Bool(o.powersOn)
	}
	if flags.Changed("charges") {
		a.Charges = domain.Bool(o.charges)
	}
	if flags.Changed("functions-ok") {
		a.BasicFunctionsOK = domain.Bool(o.fnOK)
	}
	if flags.Changed("battery") {
		a.BatteryHealthPct = domain.Float(o.battery)
	}
	return a
}

func quoteCmd() *cobra.Command {
	return newQuoteCmd(&quoteOptions{})
}

func newQuoteCmd(o *quoteOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "quote",
		Short: "Value a device with the graded model",
		Long: "Grades the device from its inspection answers and computes the offer\n" +
			"using the model's ceilings, repair costs and floor. Functional checks\n" +
			"left off the command line are treated as unanswered.",
		Example: `  tradein-valuator quote --model iphone-13-128 --powers-on --charges \
    --functions-ok --battery 91 --display perfecta --glass "micro rayas" --housing algunos
  tradein-valuator quote --model iphone-13-128 --display lineas --glass none \
    --housing minimos --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers := o.answers(cmd)
			in, err := answers.ConditionInput()
			if err != nil {
				return fmt.Errorf("reading answers: %w", err)
			}

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}

			res, err := rt.engine.Graded(cmd.Context(), engine.GradedRequest{
				ID:    o.id,
				Model: o.model,
				Input: in,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printValuation(cmd.OutOrStdout(), &res)
		},
	}

	f := c.Flags()
	f.StringVar(&o.model, "model", "", "catalog model id")
	f.StringVar(&o.id, "id", "", "request id (generated when empty)")
	f.BoolVar(&o.powersOn, "powers-on", false, "device powers on")
	f.BoolVar(&o.charges, "charges", false, "device charges")
	f.BoolVar(&o.fnOK, "functions-ok", false, "basic functions work")
	f.Float64Var(&o.battery, "battery", 0, "battery health percent")
	f.StringVar(&o.display, "display", "", "display image finding")
	f.StringVar(&o.glass, "glass", "", "glass finding")
	f.StringVar(&o.housing, "housing", "", "housing finding")
	cobra.CheckErr(c.MarkFlagRequired("model"))

	return c
}

func simpleCmd() *cobra.Command {
	var (
		model, id, condition, physical          string
		basePrice                               float64
		powersOn, screenBroken, hwError, fnWork bool
	)

	c := &cobra.Command{
		Use:   "simple",
		Short: "Value a device with the three-tier model",
		Long: "Prices a device as excelente, muy_bueno or bueno from a base price.\n" +
			"Pass --condition directly or describe the device with --physical and\n" +
			"the inspection flags. Devices needing review are offered 0.",
		Example: `  tradein-valuator simple --base-price 200 --condition muy_bueno
  tradein-valuator simple --model galaxy-a54 --powers-on --functions-work --physical bueno`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := engine.SimpleRequest{
				ID:        id,
				Model:     model,
				BasePrice: basePrice,
				Condition: domain.SimpleCondition(condition),
			}

			if condition == "" {
				answers := inspect.SimpleAnswers{
					PowersOn:      powersOn,
					ScreenBroken:  screenBroken,
					HardwareError: hwError,
					FunctionsWork: fnWork,
					Physical:      physical,
				}
				insp, err := answers.Inspection()
				if err != nil {
					return fmt.Errorf("reading answers: %w", err)
				}
				req.Inspection = &insp
			}

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}

			res, err := rt.engine.Simple(cmd.Context(), req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printSimple(cmd.OutOrStdout(), &res)
		},
	}

	f := c.Flags()
	f.StringVar(&model, "model", "", "catalog model id supplying the base price")
	f.StringVar(&id, "id", "", "request id (generated when empty)")
	f.Float64Var(&basePrice, "base-price", 0, "reference price (overrides the catalog)")
	f.StringVar(&condition, "condition", "", "excelente, muy_bueno, bueno or por_revisar")
	f.StringVar(&physical, "physical", "", "physical condition (perfecto, bueno, regular)")
	f.BoolVar(&powersOn, "powers-on", false, "device powers on")
	f.BoolVar(&screenBroken, "screen-broken", false, "screen is broken")
	f.BoolVar(&hwError, "hardware-error", false, "device reports a hardware error")
	f.BoolVar(&fnWork, "functions-work", false, "basic functions work")
	c.MarkFlagsMutuallyExclusive("condition", "physical")

	return c
}
