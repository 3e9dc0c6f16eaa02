package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quentinv/battrace/config"
	"github.com/quentinv/battrace/core/estimation"
	"github.com/quentinv/battrace/infra/logger"
	"github.com/quentinv/battrace/infra/samplelog"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Run both estimators once over the recorded log and print the report",
	RunE:  runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}

func openStore(cfg *config.Config) (samplelog.Store, error) {
	switch cfg.Log.Backend {
	case "jsonl":
		return samplelog.NewJSONLStore(cfg.Log.Path, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays)
	case "sqlite":
		return samplelog.NewSQLiteStore(cfg.Log.Path)
	default:
		return samplelog.NewCSVStore(cfg.Log.Path)
	}
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("sample store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.New("estimate").Errorf("store close: %v", cerr)
		}
	}()

	snap, err := store.Snapshot(cmd.Context(), samplelog.Query{})
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	engine := estimation.NewEngine(cfg.Estimator, logger.New("estimation"))
	rep := engine.Estimate(snap.Samples)
	rep.DroppedSamples = snap.Dropped

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
