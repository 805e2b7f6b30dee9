package admin

import (
	"git.solsynth.dev/hypernet/showcase/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func ensureCurator(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	if !lo.Contains(viper.GetStringSlice("security.curators"), exts.GetAccount(c).ID) {
		return fiber.NewError(fiber.StatusForbidden, "only curators can access this resource")
	}
	return c.Next()
}

func adminTriggerSkillSweep(c *fiber.Ctx) error {
	count, err := services.SweepOrphanSkills(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"count": count})
}

func adminSetSkillIcon(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("skillId", 0)

	var data struct {
		IconImage *string `json:"icon_image" validate:"omitempty,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.SetSkillIcon(c.UserContext(), uint(id), data.IconImage)
	if err != nil {
		return exts.ServiceError(err)
	}

	return c.JSON(item)
}
