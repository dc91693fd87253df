package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"op-tracker/core/reconcile"
	"op-tracker/feature/orders"

	"github.com/spf13/cobra"
)

var (
	reportDate       string
	reportSpecies    string
	reportSubSpecies string
	reportPending    bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the reconciliation report for a day",
	Long: `Lists every production order of the selected day with its registered
quantity and state, followed by per-species totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer logg.Sync()

		day, err := parseDayFlag(reportDate)
		if err != nil {
			return err
		}

		snapshots, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		led, closeLedger, err := openLedger(cfg, logg)
		if err != nil {
			return err
		}
		defer closeLedger()

		engine := reconcile.NewEngine(led, cfg.Reconcile.Policy())
		svc := orders.NewService(snapshots, engine, logg)

		ctx := context.Background()
		statuses, err := svc.ListOrders(ctx, day, reportSpecies, reportSubSpecies)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "OP\tPRODUCT\tSPECIES\tEXPECTED\tREGISTERED\tSTATE")
		for _, row := range statuses {
			if reportPending && row.Status.State != reconcile.StatePending {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				row.Order.OrderCode,
				row.Order.ProductName,
				row.Order.Species,
				row.Status.ExpectedQuantity,
				row.Status.RegisteredQuantity,
				row.Status.State,
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		summary, err := svc.Summarize(ctx, day, reportSpecies, reportSubSpecies)
		if err != nil {
			return err
		}
		fmt.Println()
		for _, sp := range summary.Species {
			fmt.Printf("%-20s %d/%d (%.1f%%)\n", sp.Species, sp.Registered, sp.Expected, sp.Percent)
		}
		fmt.Printf("%-20s %d/%d (%.1f%%)\n", "TOTAL", summary.TotalRegistered, summary.TotalExpected, summary.Percent)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "report date (YYYY-MM-DD), defaults to today")
	reportCmd.Flags().StringVar(&reportSpecies, "species", "", "filter by species")
	reportCmd.Flags().StringVar(&reportSubSpecies, "sub-species", "", "filter by sub-species")
	reportCmd.Flags().BoolVar(&reportPending, "pending", false, "list only orders still pending")
	RootCmd.AddCommand(reportCmd)
}
