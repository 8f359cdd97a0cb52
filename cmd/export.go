package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadgrid/dealerxref/internal/model"
	"github.com/leadgrid/dealerxref/internal/store"
)

var (
	exportRunID       string
	exportConfidence  string
	exportMultiSource bool
	exportLimit       int
	exportOffset      int
	exportOutput      string
	exportFormat      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export persisted entities to CSV or JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		entities, err := st.ListEntities(ctx, store.EntityFilter{
			RunID:           exportRunID,
			Confidence:      model.Confidence(exportConfidence),
			MultiSourceOnly: exportMultiSource,
			Limit:           exportLimit,
			Offset:          exportOffset,
		})
		if err != nil {
			return err
		}

		output := exportOutput
		if output == "" {
			output = "entities." + exportFormat
		}
		if err := writeEntities(entities, output, exportFormat); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.Int("entities", len(entities)),
			zap.String("output", output),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "restrict to one run ID")
	exportCmd.Flags().StringVar(&exportConfidence, "confidence", "", "restrict to one confidence label (HIGH, MEDIUM, LOW)")
	exportCmd.Flags().BoolVar(&exportMultiSource, "multi-source", false, "keep only entities seen in two or more sources")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "max entities to export (0 = all)")
	exportCmd.Flags().IntVar(&exportOffset, "offset", 0, "entities to skip")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output path (default entities.<format>)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	rootCmd.AddCommand(exportCmd)
}
