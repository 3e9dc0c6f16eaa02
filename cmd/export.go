package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quentinv/battrace/config"
	"github.com/quentinv/battrace/infra/logger"
	"github.com/quentinv/battrace/infra/samplelog"
	"github.com/quentinv/battrace/pkg/export"
)

var (
	exportFormat string
	exportOut    string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the recorded sample log for external analysis",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, stdout when empty")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only export samples after this RFC3339 time")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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
			logger.New("export").Errorf("store close: %v", cerr)
		}
	}()

	var q samplelog.Query
	if exportSince != "" {
		since, err := time.Parse(time.RFC3339, exportSince)
		if err != nil {
			return fmt.Errorf("parse since: %w", err)
		}
		q.Since = since
	}
	snap, err := store.Snapshot(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.New("export").Errorf("output close: %v", cerr)
			}
		}()
		w = f
	}

	switch exportFormat {
	case "csv":
		return export.WriteCSV(w, snap.Samples)
	case "json":
		return export.WriteJSON(w, snap.Samples)
	default:
		return fmt.Errorf("unknown format %s", exportFormat)
	}
}
