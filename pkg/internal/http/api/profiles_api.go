package api

import (
	"git.solsynth.dev/hypernet/showcase/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// getOwner resolves the caller into its owner row, creating it on the first
// write.
func getOwner(c *fiber.Ctx) (models.Owner, error) {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return models.Owner{}, err
	}
	user := c.Locals("user").(models.Account)

	owner, err := services.GetOrCreateOwner(c.UserContext(), user)
	if err != nil {
		return owner, exts.ServiceError(err)
	}
	return owner, nil
}

func getOwnProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	profile, err := services.LoadProfile(c.UserContext(), exts.GetAccount(c), "")
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(profile)
}

func getProfile(c *fiber.Ctx) error {
	profile, err := services.LoadProfile(c.UserContext(), exts.GetAccount(c), c.Params("accountId"))
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(profile)
}

func editOwnProfile(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		Name        string `json:"name" validate:"required,max=256"`
		Description string `json:"description" validate:"max=4096"`
		Avatar      string `json:"avatar" validate:"omitempty,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	owner.Name = data.Name
	owner.Description = data.Description
	owner.Avatar = data.Avatar

	if owner, err = services.EditOwner(c.UserContext(), owner); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(owner)
}

func deleteOwnProfile(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	if err := services.DeleteOwner(c.UserContext(), owner); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
