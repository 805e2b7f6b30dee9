package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL)
	{
		profiles := api.Group("/profiles")
		{
			profiles.Get("/me", getOwnProfile)
			profiles.Put("/me", editOwnProfile)
			profiles.Delete("/me", deleteOwnProfile)
			profiles.Get("/:accountId", getProfile)
		}

		skills := api.Group("/skills")
		{
			skills.Get("/", searchSkills)
			skills.Get("/:skillId", getSkill)
			skills.Post("/", attachSkill)
			skills.Delete("/:skillId", deleteSkill)
		}

		projects := api.Group("/projects")
		{
			projects.Post("/", createProject)
			projects.Delete("/:projectId", deleteProject)
			projects.Post("/:subjectId/interactions/:kind", interactWith("project"))
		}

		experiences := api.Group("/experiences")
		{
			experiences.Post("/", createExperience)
			experiences.Delete("/:experienceId", deleteExperience)
			experiences.Delete("/:experienceId/skills/:skillId", detachExperienceSkill)
		}

		api.Post("/educations", createEducation)
		api.Delete("/educations/:educationId", deleteEducation)
		api.Post("/merits", createMerit)
		api.Delete("/merits/:meritId", deleteMerit)

		galleries := api.Group("/galleries")
		{
			galleries.Post("/", createGallery)
			galleries.Post("/:galleryId/photos", addPhoto)
			galleries.Delete("/:galleryId", deleteGallery)
		}

		api.Delete("/photos/:photoId", deletePhoto)

		posts := api.Group("/posts")
		{
			posts.Get("/:postId", getPost)
			posts.Post("/", createPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:subjectId/interactions/:kind", interactWith("post"))
		}
	}
}
