package cmd

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"op-tracker/core/catalog"
	"op-tracker/core/ledger"
	"op-tracker/core/reconcile"
	"op-tracker/feature/scanning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticSnapshots struct {
	snapshot *catalog.Snapshot
}

func (s *staticSnapshots) SnapshotForDay(ctx context.Context, day time.Time) (*catalog.Snapshot, error) {
	return s.snapshot, nil
}

func newTerminalSession(t *testing.T) *scanning.Session {
	t.Helper()
	led, err := ledger.NewFileLog(filepath.Join(t.TempDir(), "ledger.csv"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = led.Close() })

	orders := []catalog.ProductionOrder{
		{OrderCode: "168343", ExpectedBarcode: "7899600724613", ExpectedQuantity: 2, ProductName: "SANDALIA VERANO", Species: "CALCADOS", SubSpecies: "SANDALIA"},
	}
	svc := scanning.NewService(&staticSnapshots{snapshot: catalog.NewSnapshot(orders)}, reconcile.NewEngine(led, reconcile.PolicyPermissive), zap.NewNop())
	session, err := svc.NewSession(context.Background(), time.Now())
	require.NoError(t, err)
	return session
}

func TestRunTerminal_ScanFlow(t *testing.T) {
	session := newTerminalSession(t)

	// Pick the only species, sub-species and order, scan one unit, quit.
	input := strings.Join([]string{"1", "1", "1", "7899600724613", "sair"}, "\n") + "\n"
	var out bytes.Buffer

	err := runTerminal(context.Background(), session, time.Now(), bufio.NewReader(strings.NewReader(input)), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "OP 168343")
	assert.Contains(t, out.String(), "OK: 1/2 (pending)")

	status, err := session.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.RegisteredQuantity)
}

func TestRunTerminal_RejectsMismatch(t *testing.T) {
	session := newTerminalSession(t)

	input := strings.Join([]string{"1", "1", "168343", "9999999999999", "sair"}, "\n") + "\n"
	var out bytes.Buffer

	err := runTerminal(context.Background(), session, time.Now(), bufio.NewReader(strings.NewReader(input)), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "REJECTED: barcode_mismatch")

	status, err := session.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.RegisteredQuantity)
}

func TestRunTerminal_CeilingPrompt(t *testing.T) {
	session := newTerminalSession(t)
	ctx := context.Background()
	require.NoError(t, session.Select("168343"))
	for i := 0; i < 2; i++ {
		_, err := session.Scan(ctx, "7899600724613")
		require.NoError(t, err)
	}

	// Third scan hits the ceiling: first declined, then confirmed.
	input := strings.Join([]string{"1", "1", "1", "7899600724613", "n", "7899600724613", "y", "sair"}, "\n") + "\n"
	var out bytes.Buffer

	err := runTerminal(ctx, session, time.Now(), bufio.NewReader(strings.NewReader(input)), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Register anyway?")
	assert.Contains(t, out.String(), "Scan discarded.")
	assert.Contains(t, out.String(), "OK: 3/2 (over)")
}
