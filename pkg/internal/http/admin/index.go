package admin

import "github.com/gofiber/fiber/v2"

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL, ensureCurator)
	{
		admin.Post("/skills/sweep", adminTriggerSkillSweep)
		admin.Put("/skills/:skillId/icon", adminSetSkillIcon)
	}
}
