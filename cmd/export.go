package cmd

import (
	"context"
	"fmt"
	"log"

	"op-tracker/core/storage"
	"op-tracker/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload the scan ledger to object storage",
	Long:  `Serializes every recorded scan event to CSV and uploads it to the configured bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer logg.Sync()

		led, closeLedger, err := openLedger(cfg, logg)
		if err != nil {
			return err
		}
		defer closeLedger()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		svc := export.NewService(led, client, cfg.Storage.Bucket, logg)
		result, err := svc.ExportLedger(context.Background())
		if err != nil {
			return err
		}

		logg.Info("Export finished",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("object", result.Object),
			zap.Int("events", result.Events),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}
