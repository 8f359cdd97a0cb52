package main

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadgrid/dealerxref/internal/export"
	"github.com/leadgrid/dealerxref/internal/ingest"
	"github.com/leadgrid/dealerxref/internal/model"
	"github.com/leadgrid/dealerxref/internal/resolve"
)

var (
	resolveOutput      string
	resolveFormat      string
	resolveMultiSource bool
	resolveThreshold   float64
	resolveTierRanks   string
	resolveSave        bool
	resolveConcurrency int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>...",
	Short: "Resolve dealer locator exports into canonical entities",
	Long: `Reads one or more locator exports (CSV or XLSX), deduplicates each
source by phone, links records across sources by phone and domain, and writes
merged canonical entities.

Each file is treated as one source, named after the file; a Source column in
the file overrides that per row.

Examples:
  # Two OEM exports, CSV out
  dealerxref resolve oem_a.csv oem_b.xlsx --output entities.csv

  # Multi-source entities only, persisted to the store
  dealerxref resolve exports/*.csv --multi-source --save --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("resolve"); err != nil {
			return err
		}

		ranks := model.DefaultTierRanks
		tierPath := resolveTierRanks
		if tierPath == "" {
			tierPath = cfg.Resolve.TierRanksPath
		}
		if tierPath != "" {
			loaded, err := model.LoadTierRanks(tierPath)
			if err != nil {
				return eris.Wrap(err, "resolve: load tier ranks")
			}
			ranks = loaded
		}

		// Ingest files concurrently, one source per file.
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(resolveConcurrency)

		var mu sync.Mutex
		sources := make(map[string][]model.RawRecord)

		for _, path := range args {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				records, err := parseFile(path)
				if err != nil {
					return err
				}
				mu.Lock()
				for _, rec := range records {
					sources[rec.SourceID] = append(sources[rec.SourceID], rec)
				}
				mu.Unlock()
				zap.L().Info("ingested file",
					zap.String("path", path),
					zap.Int("records", len(records)),
				)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var total int
		for _, recs := range sources {
			total += len(recs)
		}

		threshold := resolveThreshold
		if threshold == 0 {
			threshold = cfg.Resolve.NameSimilarityThreshold
		}

		resolver := resolve.NewResolver(resolve.Options{
			TierRanks:               ranks,
			NameSimilarityThreshold: threshold,
		})
		entities, err := resolver.Resolve(sources)
		if err != nil {
			return err
		}

		if resolveMultiSource || cfg.Resolve.MultiSourceOnly {
			entities = resolve.MultiSource(entities)
		}

		if resolveSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err := st.CreateRun(ctx, len(sources), total, len(entities))
			if err != nil {
				return err
			}
			if err := st.SaveEntities(ctx, run.ID, entities); err != nil {
				return err
			}
			zap.L().Info("saved run", zap.String("run_id", run.ID))
		}

		output := resolveOutput
		if output == "" {
			output = "entities." + resolveFormat
		}
		if err := writeEntities(entities, output, resolveFormat); err != nil {
			return err
		}

		zap.L().Info("resolve complete",
			zap.Int("sources", len(sources)),
			zap.Int("records", total),
			zap.Int("entities", len(entities)),
			zap.String("output", output),
		)
		return nil
	},
}

// parseFile dispatches on extension; the file stem names the source.
func parseFile(path string) ([]model.RawRecord, error) {
	base := filepath.Base(path)
	source := strings.TrimSuffix(base, filepath.Ext(base))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.ParseCSV(path, source)
	case ".xlsx":
		return ingest.ParseXLSX(path, source)
	default:
		return nil, eris.Errorf("resolve: unsupported file type: %s", path)
	}
}

func writeEntities(entities []model.CanonicalEntity, output, format string) error {
	switch format {
	case "csv":
		return export.WriteCSV(entities, output)
	case "json":
		return export.WriteJSON(entities, output)
	default:
		return eris.Errorf("unsupported output format: %s", format)
	}
}

func init() {
	resolveCmd.Flags().StringVar(&resolveOutput, "output", "", "output path (default entities.<format>)")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "csv", "output format: csv or json")
	resolveCmd.Flags().BoolVar(&resolveMultiSource, "multi-source", false, "keep only entities seen in two or more sources")
	resolveCmd.Flags().Float64Var(&resolveThreshold, "threshold", 0, "name similarity threshold (default from config)")
	resolveCmd.Flags().StringVar(&resolveTierRanks, "tier-ranks", "", "path to tier ranking YAML")
	resolveCmd.Flags().BoolVar(&resolveSave, "save", false, "persist entities to the store")
	resolveCmd.Flags().IntVar(&resolveConcurrency, "concurrency", 4, "max files parsed in parallel")
	rootCmd.AddCommand(resolveCmd)
}
