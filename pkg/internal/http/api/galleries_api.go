package api

import (
	"git.solsynth.dev/hypernet/showcase/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func createGallery(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		Name   string   `json:"name" validate:"required,max=256"`
		Photos []string `json:"photos" validate:"dive,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.CreateGallery(c.UserContext(), owner, data.Name, data.Photos)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func addPhoto(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("galleryId", 0)

	var data struct {
		Image string `json:"image" validate:"required,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.AddPhoto(c.UserContext(), owner, uint(id), data.Image)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func deleteGallery(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("galleryId", 0)

	if err := services.DeleteGallery(c.UserContext(), owner, uint(id)); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func deletePhoto(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("photoId", 0)

	if err := services.DeletePhoto(c.UserContext(), owner, uint(id)); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
