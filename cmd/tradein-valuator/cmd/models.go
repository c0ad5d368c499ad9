package cmd

import (
	"github.com/spf13/cobra"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List catalog models",
		Example: `  tradein-valuator models
  tradein-valuator models --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}

			models := rt.catalog.Models()
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), models)
			}
			return printModelsTable(cmd.OutOrStdout(), models)
		},
	}
}
