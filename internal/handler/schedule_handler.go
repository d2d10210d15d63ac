package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// ScheduleHandler serves the compiled program schedule
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// Get handles GET /v1/schedule
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	cs, err := h.scheduleService.Get(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cs)
}

// Hash handles GET /v1/schedule/hash. Clients poll this cheaply to detect
// whether their cached schedule is still current.
func (h *ScheduleHandler) Hash(c *fiber.Ctx) error {
	hash, err := h.scheduleService.Hash(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"source_hash": hash})
}
