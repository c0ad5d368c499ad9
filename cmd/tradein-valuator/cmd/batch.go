package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/tradein-valuator/internal/engine"
	"github.com/donaldgifford/tradein-valuator/internal/metrics"
)

func batchCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "batch",
		Short: "Value every device in a batch file",
		Long: "Reads a YAML batch of inspections and values them concurrently.\n" +
			"Items that fail are reported alongside the successful ones. When\n" +
			"metrics.pushgateway_url is set, run metrics are pushed on completion.",
		Example: `  tradein-valuator batch --file inspections.yaml
  tradein-valuator batch --file inspections.yaml --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file) //nolint:gosec // batch path from trusted CLI flag
			if err != nil {
				return fmt.Errorf("reading batch file: %w", err)
			}
			items, err := engine.ParseBatch(data)
			if err != nil {
				return err
			}

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if rt.cfg.Batch.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, rt.cfg.Batch.Timeout)
				defer cancel()
			}

			results, err := rt.engine.Batch(ctx, items)
			if err != nil {
				return err
			}

			if url := rt.cfg.Metrics.PushgatewayURL; url != "" {
				if err := metrics.Push(ctx, url, rt.cfg.Metrics.Job); err != nil {
					rt.log.Warn("metrics push failed", "error", err)
				} else {
					rt.log.Debug("metrics pushed", "url", url, "job", rt.cfg.Metrics.Job)
				}
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No items in batch.")
				return err
			}
			return printBatchTable(cmd.OutOrStdout(), results)
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "batch YAML file")
	cobra.CheckErr(c.MarkFlagRequired("file"))

	return c
}
