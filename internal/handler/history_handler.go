package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// HistoryHandler serves finished session logs and JSON exports
type HistoryHandler struct {
	sessionService *service.SessionService
	exportService  *service.ExportService
}

func NewHistoryHandler(sessionService *service.SessionService, exportService *service.ExportService) *HistoryHandler {
	return &HistoryHandler{
		sessionService: sessionService,
		exportService:  exportService,
	}
}

// List handles GET /v1/history
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	logs, err := h.sessionService.History(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"session_logs": logs})
}

// Export handles POST /v1/history/export
func (h *HistoryHandler) Export(c *fiber.Ctx) error {
	if h.exportService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "export storage is not configured",
		})
	}

	res, err := h.exportService.Export(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
