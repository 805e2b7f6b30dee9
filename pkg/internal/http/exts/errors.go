package exts

import (
	"errors"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ServiceError turns an error returned by the services into a response error.
// Errors without a known cause are internal failures.
func ServiceError(err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrExternalDeleteFailed):
		status = fiber.StatusBadGateway
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	default:
		status = fiber.StatusInternalServerError
	}
	return fiber.NewError(status, err.Error())
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
