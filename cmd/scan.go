package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"op-tracker/core/ledger"
	"op-tracker/core/reconcile"
	"op-tracker/feature/scanning"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scanDate string

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the interactive conference terminal",
	Long: `Drives one operator session on a barcode terminal: pick the day's
production order by species and sub-species, then scan units against it.
Type 'sair' to quit, 'trocar' to switch to another order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer logg.Sync()

		day, err := parseDayFlag(scanDate)
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
		svc := scanning.NewService(snapshots, engine, logg)

		ctx := context.Background()
		session, err := svc.NewSession(ctx, day)
		if err != nil {
			return err
		}

		return runTerminal(ctx, session, day, bufio.NewReader(os.Stdin), os.Stdout)
	},
}

func parseDayFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", value)
	}
	return day, nil
}

// runTerminal drives the operator dialog over the given reader and writer.
// Split out from the command so tests can feed it scripted input.
func runTerminal(ctx context.Context, session *scanning.Session, day time.Time, in *bufio.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Conference for %s\n", day.Format("2006-01-02"))

	for {
		if err := selectOrder(session, in, out); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if session.Selected() == nil {
			return nil
		}

		again, err := scanLoop(ctx, session, in, out)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// selectOrder walks species, sub-species and order selection. On EOF or the
// quit sentinel it returns with nothing selected.
func selectOrder(session *scanning.Session, in *bufio.Reader, out io.Writer) error {
	species, err := chooseFrom(in, out, "Species", session.Species())
	if err != nil {
		return err
	}
	var subSpecies string
	if species != "" {
		subSpecies, err = chooseFrom(in, out, "Sub-species", session.SubSpecies(species))
		if err != nil {
			return err
		}
	}

	orders := session.Orders(species, subSpecies)
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders for this selection.")
		return nil
	}

	fmt.Fprintln(out, "Orders:")
	for i, order := range orders {
		fmt.Fprintf(out, "  %d) OP %s  %s  (expected %d)\n", i+1, order.OrderCode, order.ProductName, order.ExpectedQuantity)
	}
	fmt.Fprint(out, "Order number or code: ")
	answer, err := readLine(in)
	if err != nil {
		return err
	}
	if answer == "" || answer == "sair" || answer == "exit" {
		return nil
	}

	code := answer
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(orders) {
		code = orders[n-1].OrderCode
	}
	if err := session.Select(code); err != nil {
		fmt.Fprintf(out, "Unknown order %q.\n", code)
	}
	return nil
}

// scanLoop registers scans against the selected order until the operator quits
// or asks to switch orders. Returns true when another order should be picked.
func scanLoop(ctx context.Context, session *scanning.Session, in *bufio.Reader, out io.Writer) (bool, error) {
	order := session.Selected()
	fmt.Fprintf(out, "Scanning OP %s (%s). 'sair' quits, 'trocar' switches order.\n", order.OrderCode, order.ProductName)

	for {
		status, err := session.Status(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "[%d/%d %s] scan> ", status.RegisteredQuantity, status.ExpectedQuantity, status.State)

		raw, err := readLine(in)
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch raw {
		case "", "sair", "exit":
			return false, nil
		case "trocar":
			return true, nil
		}

		if status.State != reconcile.StatePending {
			fmt.Fprintf(out, "Expected quantity already reached (%d/%d). Register anyway? [y/N] ", status.RegisteredQuantity, status.ExpectedQuantity)
			confirm, err := readLine(in)
			if err != nil {
				return false, err
			}
			if !strings.EqualFold(confirm, "y") && !strings.EqualFold(confirm, "s") {
				fmt.Fprintln(out, "Scan discarded.")
				continue
			}
		}

		updated, err := session.Scan(ctx, raw)
		switch {
		case err == nil:
			fmt.Fprintf(out, "OK: %d/%d (%s)\n", updated.RegisteredQuantity, updated.ExpectedQuantity, updated.State)
		case reconcile.IsRejection(err):
			fmt.Fprintf(out, "REJECTED: %s\n", reconcile.ReasonOf(err))
		default:
			var storageErr *ledger.StorageError
			if errors.As(err, &storageErr) {
				fmt.Fprintf(out, "NOT RECORDED: %v\n", err)
				zap.L().Error("Ledger append failed", zap.Error(err), zap.String("order_code", order.OrderCode))
				continue
			}
			return false, err
		}
	}
}

// chooseFrom prints a numbered list and reads one selection. Empty input
// means no filter.
func chooseFrom(in *bufio.Reader, out io.Writer, label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	fmt.Fprintf(out, "%s (empty for all):\n", label)
	for i, option := range options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, option)
	}
	fmt.Fprint(out, "> ")
	answer, err := readLine(in)
	if err != nil {
		return "", err
	}
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	return answer, nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	scanCmd.Flags().StringVar(&scanDate, "date", "", "conference date (YYYY-MM-DD), defaults to today")
	RootCmd.AddCommand(scanCmd)
}
