package exts

import (
	"errors"
	"fmt"
	"testing"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: gallery name cannot be empty", services.ErrInvalidInput), fiber.StatusBadRequest},
		{services.ErrUnauthorized, fiber.StatusUnauthorized},
		{services.ErrForbidden, fiber.StatusForbidden},
		{fmt.Errorf("%w: post 1", services.ErrNotFound), fiber.StatusNotFound},
		{fmt.Errorf("%w: timeout", services.ErrExternalDeleteFailed), fiber.StatusBadGateway},
		{services.ErrConflict, fiber.StatusConflict},
		{errors.New("unable to delete gallery: database is locked"), fiber.StatusInternalServerError},
	}
	for _, item := range cases {
		var fe *fiber.Error
		require.ErrorAs(t, ServiceError(item.err), &fe)
		assert.Equal(t, item.status, fe.Code, item.err.Error())
		assert.Equal(t, item.err.Error(), fe.Message)
	}
}
