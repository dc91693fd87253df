package orders

import (
	"errors"
	"time"

	"op-tracker/core/logger"
	"op-tracker/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the order catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the orders routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Get("/", h.HandleListOrders)
	group.Get("/summary", h.HandleSummary)
	group.Get("/species", h.HandleSpecies)
	group.Get("/species/:species/sub", h.HandleSubSpecies)
	group.Get("/:code/status", h.HandleOrderStatus)
}

// parseDay reads the date query parameter, defaulting to today.
func parseDay(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// HandleListOrders lists the production orders of a day with live status.
// @Summary List Orders
// @Description Lists the production orders scheduled for a date, each with its registered quantity and reconciliation state. Optional species filters.
// @Tags orders
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param species query string false "Species filter"
// @Param sub_species query string false "Sub-species filter"
// @Success 200 {array} orders.OrderStatus "Orders with status"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders [get]
func (h *Handler) HandleListOrders(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	result, err := h.service.ListOrders(c.Context(), day, c.Query("species"), c.Query("sub_species"))
	if err != nil {
		l.Error("Order listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleOrderStatus returns the reconciliation status of one order.
// @Summary Get Order Status
// @Description Returns expected vs registered quantity and the derived state for one order.
// @Tags orders
// @Accept json
// @Produce json
// @Param code path string true "Order code"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} reconcile.Status "Order status"
// @Failure 404 {object} map[string]string "Unknown order"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/{code}/status [get]
func (h *Handler) HandleOrderStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	status, err := h.service.OrderStatus(c.Context(), day, c.Params("code"))
	if err != nil {
		if errors.Is(err, reconcile.ErrUnknownOrder) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found", "reason": reconcile.ReasonOf(err)})
		}
		l.Error("Order status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleSummary returns the per-species dashboard aggregate.
// @Summary Dashboard Summary
// @Description Aggregates expected vs registered quantities per species for a date, with completion percentages.
// @Tags orders
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param species query string false "Species filter"
// @Param sub_species query string false "Sub-species filter"
// @Success 200 {object} orders.Summary "Summary"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	summary, err := h.service.Summarize(c.Context(), day, c.Query("species"), c.Query("sub_species"))
	if err != nil {
		l.Error("Summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// HandleSpecies lists the distinct species of a day.
// @Summary List Species
// @Tags orders
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} string "Species"
// @Router /orders/species [get]
func (h *Handler) HandleSpecies(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	species, err := h.service.Species(c.Context(), day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(species)
}

// HandleSubSpecies lists the distinct sub-species of a species.
// @Summary List Sub-Species
// @Tags orders
// @Produce json
// @Param species path string true "Species"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} string "Sub-species"
// @Router /orders/species/{species}/sub [get]
func (h *Handler) HandleSubSpecies(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	sub, err := h.service.SubSpecies(c.Context(), day, c.Params("species"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sub)
}
