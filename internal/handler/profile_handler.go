package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// ProfileHandler handles equipment and rounding preferences
type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles GET /v1/profile
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.profileService.Get(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// Update handles PUT /v1/profile
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req struct {
		RoundingIncrement  float64               `json:"rounding_increment"`
		BarWeight          float64               `json:"bar_weight"`
		MaxType            domain.MaxType        `json:"max_type"`
		DefaultRestSeconds int                   `json:"default_rest_seconds"`
		BarbellPlates      domain.PlateInventory `json:"barbell_plates"`
		BeltPlates         domain.PlateInventory `json:"belt_plates"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	profile, err := h.profileService.Update(c.Context(), middleware.GetUserID(c), service.UpdateProfileRequest{
		RoundingIncrement:  req.RoundingIncrement,
		BarWeight:          req.BarWeight,
		MaxType:            req.MaxType,
		DefaultRestSeconds: req.DefaultRestSeconds,
		BarbellPlates:      req.BarbellPlates,
		BeltPlates:         req.BeltPlates,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
