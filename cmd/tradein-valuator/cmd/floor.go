package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// floorView is the JSON shape of the floor command.
type floorView struct {
	Ceiling    float64 `json:"ceiling"`
	UpperBound float64 `json:"upper_bound"`
	Pct        float64 `json:"pct"`
	Minimum    float64 `json:"minimum"`
	Floor      float64 `json:"floor"`
}

func floorCmd() *cobra.Command {
	var ceiling float64

	c := &cobra.Command{
		Use:   "floor",
		Short: "Show the price floor for an A+ ceiling",
		Long: "Resolves the minimum offer for a device whose A+ ceiling is --ceiling\n" +
			"against the configured floor bands.",
		Example: `  tradein-valuator floor --ceiling 650`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ceiling < 0 {
				return fmt.Errorf("ceiling must be >= 0 (got %v)", ceiling)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			bands := cfg.Valuation.FloorBands
			band, _ := bands.Band(ceiling)
			v := floorView{
				Ceiling:    ceiling,
				UpperBound: band.UpperBound,
				Pct:        band.Pct,
				Minimum:    band.Minimum,
				Floor:      bands.Resolve(ceiling),
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), v)
			}
			return printFloor(cmd.OutOrStdout(), &v)
		},
	}

	c.Flags().Float64Var(&ceiling, "ceiling", 0, "A+ ceiling")
	cobra.CheckErr(c.MarkFlagRequired("ceiling"))

	return c
}
