package export

import (
	"op-tracker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for ledger exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Post("/ledger", h.HandleExportLedger)
	group.Get("/ledger", h.HandleListArchives)
	group.Get("/ledger/download", h.HandleDownloadArchive)
}

// HandleExportLedger archives the full scan ledger to object storage.
// @Summary Export Ledger
// @Description Streams every recorded scan event into a CSV object and uploads it to the archive bucket.
// @Tags export
// @Accept json
// @Produce json
// @Success 200 {object} export.Result "Export result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /export/ledger [post]
func (h *Handler) HandleExportLedger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.ExportLedger(c.Context())
	if err != nil {
		l.Error("Ledger export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleListArchives lists previously uploaded exports.
// @Summary List Exports
// @Description Lists the ledger exports already uploaded to the archive bucket.
// @Tags export
// @Produce json
// @Success 200 {array} export.ArchiveInfo "Archives"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /export/ledger [get]
func (h *Handler) HandleListArchives(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	archives, err := h.service.ListArchives(c.Context())
	if err != nil {
		l.Error("Archive listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(archives)
}

// HandleDownloadArchive streams one uploaded export back.
// @Summary Download Export
// @Description Streams a previously uploaded ledger export as CSV.
// @Tags export
// @Produce text/csv
// @Param object query string true "Object name (ledger/...)"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /export/ledger/download [get]
func (h *Handler) HandleDownloadArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	object := c.Query("object")
	if object == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object is required"})
	}

	reader, err := h.service.OpenArchive(c.Context(), object)
	if err != nil {
		l.Error("Archive download failed", zap.Error(err), zap.String("object", object))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	return c.SendStream(reader)
}
