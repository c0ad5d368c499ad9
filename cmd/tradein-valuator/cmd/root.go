// Package cmd implements the tradein-valuator CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/tradein-valuator/internal/catalog"
	"github.com/donaldgifford/tradein-valuator/internal/config"
	"github.com/donaldgifford/tradein-valuator/internal/engine"
	"github.com/donaldgifford/tradein-valuator/pkg/logger"
)

var rootCmd = newRootCmd()

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// newRootCmd builds the command tree. The persistent flags are bound into
// viper, so each flag can also be set from a TIV_-prefixed env var.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tradein-valuator",
		Short: "Price used devices for trade-in",
		Long: "tradein-valuator turns a device inspection into a trade-in offer.\n" +
			"It grades cosmetic condition, deducts repair costs and holds every\n" +
			"offer above a price floor, using per-model parameters from a catalog.",
		SilenceUsage: true,
	}

	root.PersistentFlags().
		String("config", "config.yaml", "config file path (env TIV_CONFIG)")
	root.PersistentFlags().
		String("output", "table", "output format (table, json)")
	root.PersistentFlags().
		String("log-level", "", "override logging.level from the config file")

	cobra.CheckErr(viper.BindPFlag("config", root.PersistentFlags().Lookup("config")))
	cobra.CheckErr(viper.BindPFlag("output", root.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level")))

	root.AddCommand(quoteCmd())
	root.AddCommand(simpleCmd())
	root.AddCommand(batchCmd())
	root.AddCommand(floorCmd())
	root.AddCommand(modelsCmd())
	root.AddCommand(versionCmd())

	return root
}

func initConfig() {
	viper.SetEnvPrefix("TIV")
	viper.AutomaticEnv()
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

// loadConfig reads the config file named by --config or TIV_CONFIG.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.Logging.Level
	if override := viper.GetString("log_level"); override != "" {
		level = override
	}
	return logger.NewWithWriter(w, logger.Options{
		Level:  level,
		Format: cfg.Logging.Format,
	})
}

// app bundles what every valuation command needs.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	engine  *engine.Engine
	log     *slog.Logger
}

func loadRuntime(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg, cmd.ErrOrStderr())

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	log.Debug("catalog loaded", "path", cfg.Catalog.Path, "models", cat.Len())

	eng := engine.NewEngine(cat,
		engine.WithLogger(log),
		engine.WithFunctionalPenalty(cfg.Valuation.Penalty()),
		engine.WithFloorBands(cfg.Valuation.FloorBands),
		engine.WithConcurrency(cfg.Batch.Concurrency),
	)

	return &app{cfg: cfg, catalog: cat, engine: eng, log: log}, nil
}
