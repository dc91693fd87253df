package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"op-tracker/core/ledger"
	"op-tracker/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, ledger.Ledger) {
	t.Helper()
	svc, led := newTestService(t, catalogFixture())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, led
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHandleListOrders(t *testing.T) {
	app, led := newTestApp(t)
	require.NoError(t, led.Append(context.Background(), ledger.ScanEvent{OrderCode: "168343", Barcode: "7899600724613"}))

	code, raw := get(t, app, "/orders/")
	require.Equal(t, fiber.StatusOK, code)

	var result []OrderStatus
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result, 3)
	assert.Equal(t, int64(1), result[0].Status.RegisteredQuantity)

	code, raw = get(t, app, "/orders/?species=CALCADOS&sub_species=TENIS")
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result, 1)
	assert.Equal(t, "168344", result[0].Order.OrderCode)
}

func TestHandleListOrders_BadDate(t *testing.T) {
	app, _ := newTestApp(t)
	code, _ := get(t, app, "/orders/?date=01-09-2026")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestHandleOrderStatus(t *testing.T) {
	app, _ := newTestApp(t)

	code, raw := get(t, app, "/orders/168343/status")
	require.Equal(t, fiber.StatusOK, code)
	var status reconcile.Status
	require.NoError(t, json.Unmarshal(raw, &status))
	assert.Equal(t, "168343", status.OrderCode)
	assert.Equal(t, reconcile.StatePending, status.State)

	code, raw = get(t, app, "/orders/999999/status")
	assert.Equal(t, fiber.StatusNotFound, code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "unknown_order", body["reason"])
}

func TestHandleSummary(t *testing.T) {
	app, led := newTestApp(t)
	require.NoError(t, led.Append(context.Background(), ledger.ScanEvent{OrderCode: "168344", Barcode: "7899600724620"}))

	code, raw := get(t, app, "/orders/summary")
	require.Equal(t, fiber.StatusOK, code)

	var summary Summary
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 5, summary.TotalExpected)
	assert.Equal(t, int64(1), summary.TotalRegistered)
	assert.Len(t, summary.Species, 2)
}

func TestHandleSpeciesRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	code, raw := get(t, app, "/orders/species")
	require.Equal(t, fiber.StatusOK, code)
	var species []string
	require.NoError(t, json.Unmarshal(raw, &species))
	assert.Equal(t, []string{"BOLSAS", "CALCADOS"}, species)

	code, raw = get(t, app, "/orders/species/CALCADOS/sub")
	require.Equal(t, fiber.StatusOK, code)
	var sub []string
	require.NoError(t, json.Unmarshal(raw, &sub))
	assert.Equal(t, []string{"SANDALIA", "TENIS"}, sub)
}
