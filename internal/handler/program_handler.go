package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// ProgramHandler handles template browsing and program activation
type ProgramHandler struct {
	programService *service.ProgramService
}

func NewProgramHandler(programService *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// Templates handles GET /v1/templates
func (h *ProgramHandler) Templates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": h.programService.Templates()})
}

// Get handles GET /v1/program
func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	program, err := h.programService.Get(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(program)
}

// Set handles POST /v1/program
func (h *ProgramHandler) Set(c *fiber.Ctx) error {
	var req struct {
		TemplateID domain.TemplateID        `json:"template_id"`
		StartDate  time.Time                `json:"start_date"`
		Selections map[string][]domain.Lift `json:"selections"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	program, err := h.programService.Set(c.Context(), middleware.GetUserID(c), service.SetProgramRequest{
		TemplateID: req.TemplateID,
		StartDate:  req.StartDate,
		Selections: req.Selections,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}

// Clear handles DELETE /v1/program
func (h *ProgramHandler) Clear(c *fiber.Ctx) error {
	if err := h.programService.Clear(c.Context(), middleware.GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "program cleared"})
}
