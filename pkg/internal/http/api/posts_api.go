package api

import (
	"git.solsynth.dev/hypernet/showcase/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(c.UserContext(), uint(id))
	if err != nil {
		return exts.ServiceError(err)
	}

	resolved, err := services.ResolvePosts(c.UserContext(), []models.Post{item})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(resolved[0])
}

func createPost(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		Type    string   `json:"type" validate:"required,oneof=project experience education merit post"`
		DataID  *uint    `json:"data_id" validate:"required_unless=Type post"`
		Content []string `json:"content" validate:"dive,url"`
		Caption string   `json:"caption" validate:"max=4096"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(c.UserContext(), owner, models.Post{
		Type:    data.Type,
		DataID:  data.DataID,
		Content: data.Content,
		Caption: data.Caption,
	})
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func editPost(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	var data struct {
		Caption string `json:"caption" validate:"max=4096"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.EditPostCaption(c.UserContext(), owner, uint(id), data.Caption)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	if err := services.DeletePost(c.UserContext(), owner, uint(id)); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
