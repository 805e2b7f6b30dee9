package database

import (
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"gorm.io/gorm"
)

// AutoMaintainRange lists every table holding rows owned by a single owner.
var AutoMaintainRange = []any{
	&models.Project{},
	&models.Experience{},
	&models.Education{},
	&models.Merit{},
	&models.Gallery{},
	&models.Post{},
	&models.Interaction{},
}

func RunMigration(source *gorm.DB) error {
	joins := []struct {
		model any
		field string
		join  any
	}{
		{&models.Owner{}, "Skills", &models.OwnerSkill{}},
		{&models.Project{}, "Skills", &models.ProjectSkill{}},
		{&models.Experience{}, "Skills", &models.ExperienceSkill{}},
	}
	for _, item := range joins {
		if err := source.SetupJoinTable(item.model, item.field, item.join); err != nil {
			return err
		}
	}

	if err := source.AutoMigrate(
		append(
			[]any{&models.Owner{}, &models.Skill{}},
			append(
				AutoMaintainRange,
				&models.Photo{},
				&models.OwnerSkill{},
				&models.ProjectSkill{},
				&models.ExperienceSkill{},
			)...,
		)...,
	); err != nil {
		return err
	}

	return nil
}
