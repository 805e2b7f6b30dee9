package api

import (
	"time"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func createProject(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		Name        string                `json:"name" validate:"required,max=256"`
		Summary     string                `json:"summary" validate:"max=1024"`
		Description string                `json:"description"`
		Status      models.ContentStatus  `json:"status" validate:"min=0,max=1"`
		StartDate   *time.Time            `json:"start_date"`
		EndDate     *time.Time            `json:"end_date"`
		Thumbnail   *string               `json:"thumbnail" validate:"omitempty,url"`
		Gallery     []models.GalleryImage `json:"gallery"`
		Resources   []string              `json:"resources" validate:"dive,url"`
		Skills      []string              `json:"skills" validate:"dive,max=64"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewProject(c.UserContext(), owner, models.Project{
		Name:        data.Name,
		Summary:     data.Summary,
		Description: data.Description,
		Status:      data.Status,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		Thumbnail:   data.Thumbnail,
		Gallery:     data.Gallery,
		Resources:   data.Resources,
	}, data.Skills)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func deleteProject(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("projectId", 0)

	if err := services.DeleteProject(c.UserContext(), owner, uint(id)); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func createExperience(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		Title     string               `json:"title" validate:"required,max=256"`
		Company   string               `json:"company" validate:"max=256"`
		Summary   string               `json:"summary" validate:"max=1024"`
		Status    models.ContentStatus `json:"status" validate:"min=0,max=1"`
		StartDate *time.Time           `json:"start_date"`
		EndDate   *time.Time           `json:"end_date"`
		Skills    []string             `json:"skills" validate:"dive,max=64"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewExperience(c.UserContext(), owner, models.Experience{
		Title:     data.Title,
		Company:   data.Company,
		Summary:   data.Summary,
		Status:    data.Status,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
	}, data.Skills)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func deleteExperience(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("experienceId", 0)

	if err := services.DeleteExperience(c.UserContext(), owner, uint(id)); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func detachExperienceSkill(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("experienceId", 0)
	skillId, _ := c.ParamsInt("skillId", 0)

	if err := services.DetachSkill(c.UserContext(), owner, uint(skillId), services.ExperienceReferrer(uint(id))); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func createEducation(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		School    string     `json:"school" validate:"required,max=256"`
		Degree    string     `json:"degree" validate:"max=256"`
		Field     string     `json:"field" validate:"max=256"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewEducation(c.UserContext(), owner, models.Education{
		School:    data.School,
		Degree:    data.Degree,
		Field:     data.Field,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
	})
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func deleteEducation(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("educationId", 0)

	if err := services.DeleteEducation(c.UserContext(), owner, uint(id)); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func createMerit(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}

	var data struct {
		Title       string     `json:"title" validate:"required,max=256"`
		Issuer      string     `json:"issuer" validate:"max=256"`
		Description string     `json:"description"`
		IssueDate   *time.Time `json:"issue_date"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewMerit(c.UserContext(), owner, models.Merit{
		Title:       data.Title,
		Issuer:      data.Issuer,
		Description: data.Description,
		IssueDate:   data.IssueDate,
	})
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}

func deleteMerit(c *fiber.Ctx) error {
	owner, err := getOwner(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("meritId", 0)

	if err := services.DeleteMerit(c.UserContext(), owner, uint(id)); err != nil {
		return exts.ServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func interactWith(subjectType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner, err := getOwner(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("subjectId", 0)
		kind := c.Params("kind")

		if kind == models.InteractionView {
			if err := services.AddView(c.UserContext(), owner, subjectType, uint(id)); err != nil {
				return exts.ServiceError(err)
			}
			return c.SendStatus(fiber.StatusOK)
		}

		present, err := services.ToggleInteraction(c.UserContext(), owner, kind, subjectType, uint(id))
		if err != nil {
			return exts.ServiceError(err)
		}

		return c.Status(lo.Ternary(present, fiber.StatusCreated, fiber.StatusNoContent)).JSON(fiber.Map{
			"present": present,
		})
	}
}
