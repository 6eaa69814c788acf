package handlers

import (
	"errors"

	"kickoff-hq-service/services"

	"github.com/gofiber/fiber/v2"
)

// Every game action answers with the same envelope: {success, data} on the
// happy path, {success, error} otherwise. Error strings are display-safe.

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"success": false,
		"error":   messageFor(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrHQNotFound),
		errors.Is(err, services.ErrMissionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidBuilding),
		errors.Is(err, services.ErrInvalidUnit),
		errors.Is(err, services.ErrInvalidDrillType),
		errors.Is(err, services.ErrInvalidDecor),
		errors.Is(err, services.ErrInvalidSlot),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrNotEnoughEnergy),
		errors.Is(err, services.ErrDrillNotReady),
		errors.Is(err, services.ErrMissionNotDone):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrMaxLevel),
		errors.Is(err, services.ErrUnitTraining),
		errors.Is(err, services.ErrAlreadyOwned),
		errors.Is(err, services.ErrSlotOccupied),
		errors.Is(err, services.ErrSlotEmpty),
		errors.Is(err, services.ErrAlreadyClaimed):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// messageFor hides internal errors behind a generic line; sentinel messages
// pass through untouched.
func messageFor(err error) string {
	if statusFor(err) == fiber.StatusInternalServerError {
		return "something went wrong, try again"
	}
	return err.Error()
}
