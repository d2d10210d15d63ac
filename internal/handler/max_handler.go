package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// MaxHandler handles max test entry and the per-lift detail views
type MaxHandler struct {
	maxService *service.MaxService
}

func NewMaxHandler(maxService *service.MaxService) *MaxHandler {
	return &MaxHandler{maxService: maxService}
}

// RecordTest handles POST /v1/maxes
func (h *MaxHandler) RecordTest(c *fiber.Ctx) error {
	var req struct {
		Lift     domain.Lift `json:"lift"`
		Weight   float64     `json:"weight"`
		Reps     int         `json:"reps"`
		TestDate time.Time   `json:"test_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	test, err := h.maxService.RecordTest(c.Context(), middleware.GetUserID(c), service.RecordTestRequest{
		Lift:     req.Lift,
		Weight:   req.Weight,
		Reps:     req.Reps,
		TestDate: req.TestDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(test)
}

// History handles GET /v1/maxes
func (h *MaxHandler) History(c *fiber.Ctx) error {
	tests, err := h.maxService.History(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"max_tests": tests})
}

// DeleteAll handles DELETE /v1/maxes
func (h *MaxHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.maxService.DeleteAll(c.Context(), middleware.GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "max tests cleared"})
}

// Lifts handles GET /v1/lifts
func (h *MaxHandler) Lifts(c *fiber.Ctx) error {
	details, err := h.maxService.LiftDetails(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"lifts": details})
}

// LiftTable handles GET /v1/lifts/:lift/table
func (h *MaxHandler) LiftTable(c *fiber.Ctx) error {
	lift := domain.Lift(c.Params("lift"))
	table, err := h.maxService.LiftTable(c.Context(), middleware.GetUserID(c), lift)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"lift":  lift,
		"table": table,
	})
}
