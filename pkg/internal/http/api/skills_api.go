package api

import (
	"git.solsynth.dev/hypernet/showcase/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func searchSkills(c *fiber.Ctx) error {
	take := c.QueryInt("take", 0)
	offset := c.QueryInt("offset", 0)

	items, err := services.SearchSkills(c.UserContext(), take, offset, c.Query("probe"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(items)
}

func getSkill(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("skillId", 0)

	item, err := services.GetSkill(c.UserContext(), uint(id))
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func attachSkill(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		Name         string `json:"name" validate:"required,max=64"`
		ProjectID    *uint  `json:"project_id"`
		ExperienceID *uint  `json:"experience_id" validate:"excluded_with=ProjectID"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	referrer := services.OwnerReferrer(owner.ID)
	if data.ProjectID != nil {
		referrer = services.ProjectReferrer(*data.ProjectID)
	} else if data.ExperienceID != nil {
		referrer = services.ExperienceReferrer(*data.ExperienceID)
	}

	item, err := services.AttachSkill(c.UserContext(), owner, data.Name, referrer)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func deleteSkill(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("skillId", 0)

	var projectID *uint
	if project := c.QueryInt("project", 0); project > 0 {
		projectID = lo.ToPtr(uint(project))
	}

	if err := services.DeleteSkill(c.UserContext(), owner, uint(id), projectID); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
