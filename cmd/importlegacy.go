package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"op-tracker/core/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFile   string
	importDate   string
	importDryRun bool
)

// legacyRow is one running-total line from the old conference tool.
type legacyRow struct {
	OrderCode string
	Quantity  int
	Barcode   string
}

// importLegacyCmd represents the importlegacy command
var importLegacyCmd = &cobra.Command{
	Use:   "importlegacy",
	Short: "Expand a legacy running-total CSV into the scan ledger",
	Long: `The old conference tool kept one row per order with an accumulated
quantity (COD_OP,QTD). This command expands each row into individual scan
events and appends them to the configured ledger. Barcodes and product ids
are filled in from the order catalog when the ERP is reachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer logg.Sync()

		day, err := parseDayFlag(importDate)
		if err != nil {
			return err
		}

		rows, err := readLegacyFile(importFile)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			logg.Info("Legacy file holds no rows, nothing to import")
			return nil
		}

		ctx := context.Background()

		// Enrichment is best effort; the legacy file stands on its own.
		resolve := func(orderCode string) (string, int) { return "", 0 }
		if snapshots, err := openCatalog(cfg); err != nil {
			logg.Warn("Catalog unavailable, importing without barcode enrichment", zap.Error(err))
		} else if snapshot, err := snapshots.SnapshotForDay(ctx, day); err != nil {
			logg.Warn("Catalog unavailable, importing without barcode enrichment", zap.Error(err))
		} else {
			resolve = func(orderCode string) (string, int) {
				order, ok := snapshot.Resolve(orderCode)
				if !ok {
					return "", 0
				}
				return order.ExpectedBarcode, order.ProductID
			}
		}

		total := 0
		for _, row := range rows {
			total += row.Quantity
		}
		if importDryRun {
			for _, row := range rows {
				fmt.Printf("OP %s: %d events\n", row.OrderCode, row.Quantity)
			}
			fmt.Printf("dry run: %d events across %d orders, nothing written\n", total, len(rows))
			return nil
		}

		led, closeLedger, err := openLedger(cfg, logg)
		if err != nil {
			return err
		}
		defer closeLedger()

		written := 0
		for _, row := range rows {
			barcode, productID := resolve(row.OrderCode)
			if row.Barcode != "" {
				barcode = row.Barcode
			}
			for i := 0; i < row.Quantity; i++ {
				event := ledger.ScanEvent{
					OrderCode: row.OrderCode,
					Barcode:   barcode,
					ProductID: productID,
				}
				if err := led.Append(ctx, event); err != nil {
					return fmt.Errorf("import stopped after %d of %d events: %w", written, total, err)
				}
				written++
			}
		}

		logg.Info("Legacy ledger imported",
			zap.String("file", importFile),
			zap.Int("orders", len(rows)),
			zap.Int("events", written),
		)
		return nil
	},
}

// readLegacyFile parses the running-total CSV (COD_OP,QTD with an optional
// CODIGO_BARRAS column).
func readLegacyFile(path string) ([]legacyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse legacy file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	start := 0
	if isLegacyImportHeader(records[0]) {
		start = 1
	}

	var rows []legacyRow
	for i := start; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected at least COD_OP and QTD, got %d fields", i+1, len(record))
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad quantity %q", i+1, record[1])
		}
		if quantity < 0 {
			return nil, fmt.Errorf("line %d: negative quantity %d", i+1, quantity)
		}
		row := legacyRow{OrderCode: strings.TrimSpace(record[0]), Quantity: quantity}
		if len(record) > 2 {
			row.Barcode = strings.TrimSpace(record[2])
		}
		if row.OrderCode == "" {
			return nil, fmt.Errorf("line %d: empty order code", i+1)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isLegacyImportHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(record[0]))
	second := strings.ToUpper(strings.TrimSpace(record[1]))
	return first == "COD_OP" && (second == "QTD" || second == "QUANTIDADE")
}

func init() {
	importLegacyCmd.Flags().StringVar(&importFile, "file", "", "legacy CSV file to import")
	importLegacyCmd.Flags().StringVar(&importDate, "date", "", "catalog date used for enrichment (YYYY-MM-DD)")
	importLegacyCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and count without writing")
	_ = importLegacyCmd.MarkFlagRequired("file")
	RootCmd.AddCommand(importLegacyCmd)
}
