package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadgrid/dealerxref/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dealerxref",
	Short: "Cross-reference dealer locator records into canonical entities",
	Long:  "Normalizes dealer records from OEM locator exports, deduplicates within each source, links records across sources by phone and domain, and merges them into scored canonical entities.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
