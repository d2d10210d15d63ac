package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/runtime"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
)

// respondError maps domain errors onto HTTP statuses. Conflict-class errors
// (stale schedule, stale session, closed undo window) are 409 so clients know
// to refetch rather than retry.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownTemplate),
		errors.Is(err, domain.ErrBadSlotSelection),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, runtime.ErrExerciseIndex):
		status = fiber.StatusBadRequest

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrProgramNotFound),
		errors.Is(err, domain.ErrMaxTestNotFound),
		errors.Is(err, domain.ErrNoActiveSession):
		status = fiber.StatusNotFound

	case errors.Is(err, domain.ErrStaleSchedule),
		errors.Is(err, service.ErrSessionInProgress),
		errors.Is(err, runtime.ErrSessionStale),
		errors.Is(err, runtime.ErrSessionNotStale),
		errors.Is(err, runtime.ErrNothingToUndo),
		errors.Is(err, runtime.ErrExerciseComplete),
		errors.Is(err, runtime.ErrMinSetsNotMet),
		errors.Is(err, runtime.ErrNotEarlyFinish):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
