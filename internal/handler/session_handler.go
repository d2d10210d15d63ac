package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// SessionHandler drives the live workout session
type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Start handles POST /v1/session/start
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var req struct {
		ScheduleHash string `json:"schedule_hash"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	st, err := h.sessionService.Start(c.Context(), middleware.GetUserID(c), service.StartSessionRequest{
		ScheduleHash: req.ScheduleHash,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

// State handles GET /v1/session
func (h *SessionHandler) State(c *fiber.Ctx) error {
	st, err := h.sessionService.State(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

// Snapshot handles GET /v1/session/snapshot
func (h *SessionHandler) Snapshot(c *fiber.Ctx) error {
	snap, err := h.sessionService.Snapshot(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// Tick handles GET /v1/session/tick
func (h *SessionHandler) Tick(c *fiber.Ctx) error {
	res, err := h.sessionService.Tick(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// CompleteSet handles POST /v1/session/complete-set
func (h *SessionHandler) CompleteSet(c *fiber.Ctx) error {
	if err := h.sessionService.CompleteSet(c.Context(), middleware.GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return h.State(c)
}

// Undo handles POST /v1/session/undo
func (h *SessionHandler) Undo(c *fiber.Ctx) error {
	if err := h.sessionService.Undo(c.Context(), middleware.GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return h.State(c)
}

// FinishExercise handles POST /v1/session/finish-exercise
func (h *SessionHandler) FinishExercise(c *fiber.Ctx) error {
	if err := h.sessionService.FinishExercise(c.Context(), middleware.GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return h.State(c)
}

// Navigate handles POST /v1/session/navigate
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	var req struct {
		ExerciseIndex int `json:"exercise_index"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.sessionService.Navigate(c.Context(), middleware.GetUserID(c), req.ExerciseIndex); err != nil {
		return respondError(c, err)
	}
	return h.State(c)
}

// OverrideWeight handles POST /v1/session/override-weight
func (h *SessionHandler) OverrideWeight(c *fiber.Ctx) error {
	var req struct {
		ExerciseIndex int     `json:"exercise_index"`
		Weight        float64 `json:"weight"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.sessionService.OverrideWeight(c.Context(), middleware.GetUserID(c), req.ExerciseIndex, req.Weight); err != nil {
		return respondError(c, err)
	}
	return h.State(c)
}

// Finish handles POST /v1/session/finish
func (h *SessionHandler) Finish(c *fiber.Ctx) error {
	log, err := h.sessionService.Finish(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(log)
}

// Resume handles POST /v1/session/resume
func (h *SessionHandler) Resume(c *fiber.Ctx) error {
	st, err := h.sessionService.Resume(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

// Discard handles POST /v1/session/discard
func (h *SessionHandler) Discard(c *fiber.Ctx) error {
	log, err := h.sessionService.Discard(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(log)
}
