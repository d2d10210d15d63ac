package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// SyncHandler reconciles data across a user's devices
type SyncHandler struct {
	syncService *service.SyncService
}

func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Changes handles GET /v1/sync/changes?since=<RFC3339>
func (h *SyncHandler) Changes(c *fiber.Ctx) error {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "since must be RFC3339",
			})
		}
		since = parsed
	}

	changes, err := h.syncService.Changes(c.Context(), middleware.GetUserID(c), since)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(changes)
}

// Apply handles POST /v1/sync/apply
func (h *SyncHandler) Apply(c *fiber.Ctx) error {
	var req service.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.syncService.Apply(c.Context(), middleware.GetUserID(c), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "changes applied"})
}
