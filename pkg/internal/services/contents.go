package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type ownedRecord interface {
	OwnedBy() uint
}

// getOwned loads a record and checks it belongs to the owner.
func getOwned[T ownedRecord](ctx context.Context, owner models.Owner, id uint) (T, error) {
	var item T
	if err := database.C.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: %T %d", ErrNotFound, item, id)
		}
		return item, err
	}
	if item.OwnedBy() != owner.ID {
		return item, ErrForbidden
	}
	return item, nil
}

func checkPeriod(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date cannot be earlier than start date", ErrInvalidInput)
	}
	return nil
}

func attachSkillNames(tx *gorm.DB, names []string, referrer SkillReferrer) ([]models.Skill, error) {
	var skills []models.Skill
	for _, name := range names {
		alias, display, err := NormalizeSkillName(name)
		if err != nil {
			continue
		}
		skill, err := attachSkill(tx, alias, display, referrer)
		if err != nil {
			return skills, err
		}
		skills = append(skills, skill)
	}
	return lo.UniqBy(skills, func(item models.Skill) uint { return item.ID }), nil
}

func NewProject(ctx context.Context, owner models.Owner, item models.Project, skills []string) (models.Project, error) {
	item.ID = 0
	item.OwnerID = owner.ID
	item.Skills = nil
	if item.Name = strings.TrimSpace(item.Name); len(item.Name) == 0 {
		return item, fmt.Errorf("%w: project name cannot be empty", ErrInvalidInput)
	}
	if err := checkPeriod(item.StartDate, item.EndDate); err != nil {
		return item, err
	}

	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skills").Create(&item).Error; err != nil {
			return err
		}
		var err error
		item.Skills, err = attachSkillNames(tx, skills, ProjectReferrer(item.ID))
		return err
	})
	return item, err
}

func NewExperience(ctx context.Context, owner models.Owner, item models.Experience, skills []string) (models.Experience, error) {
	item.ID = 0
	item.OwnerID = owner.ID
	item.Skills = nil
	if item.Title = strings.TrimSpace(item.Title); len(item.Title) == 0 {
		return item, fmt.Errorf("%w: experience title cannot be empty", ErrInvalidInput)
	}
	if err := checkPeriod(item.StartDate, item.EndDate); err != nil {
		return item, err
	}

	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skills").Create(&item).Error; err != nil {
			return err
		}
		var err error
		item.Skills, err = attachSkillNames(tx, skills, ExperienceReferrer(item.ID))
		return err
	})
	return item, err
}

func NewEducation(ctx context.Context, owner models.Owner, item models.Education) (models.Education, error) {
	item.ID = 0
	item.OwnerID = owner.ID
	if item.School = strings.TrimSpace(item.School); len(item.School) == 0 {
		return item, fmt.Errorf("%w: school cannot be empty", ErrInvalidInput)
	}
	if err := checkPeriod(item.StartDate, item.EndDate); err != nil {
		return item, err
	}

	err := database.C.WithContext(ctx).Create(&item).Error
	return item, err
}

func NewMerit(ctx context.Context, owner models.Owner, item models.Merit) (models.Merit, error) {
	item.ID = 0
	item.OwnerID = owner.ID
	if item.Title = strings.TrimSpace(item.Title); len(item.Title) == 0 {
		return item, fmt.Errorf("%w: merit title cannot be empty", ErrInvalidInput)
	}

	err := database.C.WithContext(ctx).Create(&item).Error
	return item, err
}

// DeleteProject removes the project and its skill edges. Posts pointing at
// the project are kept and resolve to no data afterwards.
func DeleteProject(ctx context.Context, owner models.Owner, id uint) error {
	item, err := getOwned[models.Project](ctx, owner, id)
	if err != nil {
		return err
	}

	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := detachReferrerSkills(tx, ProjectReferrer(item.ID)); err != nil {
			return err
		}
		if err := deleteSubjectInteractions(tx, models.SubjectProject, item.ID); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func DeleteExperience(ctx context.Context, owner models.Owner, id uint) error {
	item, err := getOwned[models.Experience](ctx, owner, id)
	if err != nil {
		return err
	}

	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := detachReferrerSkills(tx, ExperienceReferrer(item.ID)); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func DeleteEducation(ctx context.Context, owner models.Owner, id uint) error {
	item, err := getOwned[models.Education](ctx, owner, id)
	if err != nil {
		return err
	}
	return database.C.WithContext(ctx).Delete(&item).Error
}

func DeleteMerit(ctx context.Context, owner models.Owner, id uint) error {
	item, err := getOwned[models.Merit](ctx, owner, id)
	if err != nil {
		return err
	}
	return database.C.WithContext(ctx).Delete(&item).Error
}
