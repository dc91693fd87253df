package scanning

import (
	"errors"
	"time"

	"op-tracker/core/ledger"
	"op-tracker/core/logger"
	"op-tracker/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for scan registration.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the scanning routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/scans")
	group.Post("/", h.HandleRegisterScan)
}

// ScanRequest is the register-scan request body.
type ScanRequest struct {
	// Date selects the order snapshot (YYYY-MM-DD), defaulting to today.
	Date string `json:"date"`
	// OrderCode is the selected production order.
	OrderCode string `json:"order_code"`
	// Barcode is the raw scanned text.
	Barcode string `json:"barcode"`
	// ConfirmOver acknowledges scanning past the expected quantity.
	ConfirmOver bool `json:"confirm_over"`
}

// HandleRegisterScan registers one barcode scan against an order.
// @Summary Register Scan
// @Description Validates a scanned barcode against the selected order and appends it to the ledger. Returns 409 with the current status when the order is already at its expected quantity and confirm_over is false.
// @Tags scans
// @Accept json
// @Produce json
// @Param request body scanning.ScanRequest true "Scan"
// @Success 200 {object} reconcile.Status "Updated status"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown order"
// @Failure 409 {object} reconcile.Status "Confirmation required"
// @Failure 422 {object} map[string]string "Rejected scan"
// @Failure 503 {object} map[string]string "Ledger unavailable"
// @Router /scans [post]
func (h *Handler) HandleRegisterScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.OrderCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order_code is required"})
	}

	day := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		day = parsed
	}

	status, err := h.service.RegisterScan(c.Context(), day, req.OrderCode, req.Barcode, req.ConfirmOver)
	switch {
	case err == nil:
		l.Info("Scan registered",
			zap.String("order_code", req.OrderCode),
			zap.Int64("registered", status.RegisteredQuantity),
			zap.String("state", string(status.State)),
		)
		return c.JSON(status)

	case errors.Is(err, ErrConfirmationRequired):
		return c.Status(fiber.StatusConflict).JSON(status)

	case errors.Is(err, reconcile.ErrUnknownOrder):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":  err.Error(),
			"reason": reconcile.ReasonOf(err),
		})

	case reconcile.IsRejection(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  err.Error(),
			"reason": reconcile.ReasonOf(err),
		})

	default:
		var storageErr *ledger.StorageError
		if errors.As(err, &storageErr) {
			l.Error("Ledger append failed", zap.Error(err), zap.Bool("timeout", storageErr.Timeout))
			code := fiber.StatusServiceUnavailable
			if storageErr.Timeout {
				code = fiber.StatusGatewayTimeout
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Scan registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
