package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillReferrerKind int8

const (
	SkillReferrerOwner = SkillReferrerKind(iota)
	SkillReferrerProject
	SkillReferrerExperience
)

// SkillReferrer is one side of a skill edge.
type SkillReferrer struct {
	Kind SkillReferrerKind
	ID   uint
}

func OwnerReferrer(id uint) SkillReferrer {
	return SkillReferrer{Kind: SkillReferrerOwner, ID: id}
}

func ProjectReferrer(id uint) SkillReferrer {
	return SkillReferrer{Kind: SkillReferrerProject, ID: id}
}

func ExperienceReferrer(id uint) SkillReferrer {
	return SkillReferrer{Kind: SkillReferrerExperience, ID: id}
}

func (v SkillReferrer) edge(skillID uint) any {
	switch v.Kind {
	case SkillReferrerProject:
		return &models.ProjectSkill{ProjectID: v.ID, SkillID: skillID}
	case SkillReferrerExperience:
		return &models.ExperienceSkill{ExperienceID: v.ID, SkillID: skillID}
	default:
		return &models.OwnerSkill{OwnerID: v.ID, SkillID: skillID}
	}
}

// model is the empty edge row of the referrer's table. Edge tables have
// composite primary keys, so queries filtering by column must not carry any
// key value on the model.
func (v SkillReferrer) model() any {
	switch v.Kind {
	case SkillReferrerProject:
		return &models.ProjectSkill{}
	case SkillReferrerExperience:
		return &models.ExperienceSkill{}
	default:
		return &models.OwnerSkill{}
	}
}

func (v SkillReferrer) column() string {
	switch v.Kind {
	case SkillReferrerProject:
		return "project_id"
	case SkillReferrerExperience:
		return "experience_id"
	default:
		return "owner_id"
	}
}

// NormalizeSkillName returns the case-insensitive alias and the display name.
func NormalizeSkillName(name string) (string, string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if len(name) == 0 {
		return "", "", fmt.Errorf("%w: skill name cannot be empty", ErrInvalidInput)
	}
	return strings.ToLower(name), name, nil
}

func lockSkill(tx *gorm.DB, id uint) (models.Skill, error) {
	var skill models.Skill
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&skill).Error
	return skill, err
}

func lockSkillByAlias(tx *gorm.DB, alias string) (models.Skill, error) {
	var skill models.Skill
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("alias = ?", alias).
		First(&skill).Error
	return skill, err
}

// FilterOrphanSkill keeps only skills without an icon and without any edge.
func FilterOrphanSkill(tx *gorm.DB) *gorm.DB {
	sub := tx.Session(&gorm.Session{NewDB: true})
	return tx.
		Where("(skills.icon_image IS NULL OR skills.icon_image = '')").
		Where("NOT EXISTS (?)", sub.Model(&models.OwnerSkill{}).Select("1").Where("owner_skills.skill_id = skills.id")).
		Where("NOT EXISTS (?)", sub.Model(&models.ProjectSkill{}).Select("1").Where("project_skills.skill_id = skills.id")).
		Where("NOT EXISTS (?)", sub.Model(&models.ExperienceSkill{}).Select("1").Where("experience_skills.skill_id = skills.id"))
}

// collectSkill is the compare-and-delete step. The caller must hold the row
// lock taken by lockSkill inside the same transaction.
func collectSkill(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Scopes(FilterOrphanSkill).
		Where("skills.id = ?", id).
		Delete(&models.Skill{})
	if result.Error != nil {
		return false, fmt.Errorf("unable to collect skill: %v", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Debug().Uint("skill", id).Msg("Collected an unreferenced skill.")
	}
	return result.RowsAffected > 0, nil
}

// gcSkill locks the skill and deletes it when nothing refers to it anymore.
// A skill that is already gone reports ErrConflict.
func gcSkill(tx *gorm.DB, id uint) (bool, error) {
	if _, err := lockSkill(tx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrConflict
		}
		return false, err
	}
	return collectSkill(tx, id)
}

func attachSkill(tx *gorm.DB, alias, name string, referrer SkillReferrer) (models.Skill, error) {
	for attempt := 0; attempt < 3; attempt++ {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "alias"}},
			DoNothing: true,
		}).Create(&models.Skill{Alias: alias, Name: name}).Error; err != nil {
			return models.Skill{}, fmt.Errorf("unable to create skill: %v", err)
		}

		// Holding the lock keeps a concurrent collection away until the edge lands.
		skill, err := lockSkillByAlias(tx, alias)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		} else if err != nil {
			return skill, err
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(referrer.edge(skill.ID)).Error; err != nil {
			return skill, fmt.Errorf("unable to attach skill: %v", err)
		}
		return skill, nil
	}

	return models.Skill{}, fmt.Errorf("%w: skill %s vanished while attaching", ErrConflict, alias)
}

func ensureReferrerOwnership(tx *gorm.DB, owner models.Owner, referrer SkillReferrer) error {
	var ownerID uint
	switch referrer.Kind {
	case SkillReferrerOwner:
		ownerID = referrer.ID
	case SkillReferrerProject:
		var project models.Project
		if err := tx.Select("id", "owner_id").Where("id = ?", referrer.ID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: project %d", ErrNotFound, referrer.ID)
			}
			return err
		}
		ownerID = project.OwnerID
	case SkillReferrerExperience:
		var experience models.Experience
		if err := tx.Select("id", "owner_id").Where("id = ?", referrer.ID).First(&experience).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: experience %d", ErrNotFound, referrer.ID)
			}
			return err
		}
		ownerID = experience.OwnerID
	}

	if ownerID != owner.ID {
		return ErrForbidden
	}
	return nil
}

// AttachSkill links a skill to the referrer, reusing an existing skill with
// the same case-insensitive name or creating it.
func AttachSkill(ctx context.Context, owner models.Owner, name string, referrer SkillReferrer) (models.Skill, error) {
	alias, display, err := NormalizeSkillName(name)
	if err != nil {
		return models.Skill{}, err
	}

	var skill models.Skill
	err = database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferrerOwnership(tx, owner, referrer); err != nil {
			return err
		}
		skill, err = attachSkill(tx, alias, display, referrer)
		return err
	})

	return skill, err
}

// DetachSkill removes exactly one edge and collects the skill when it was the
// last one.
func DetachSkill(ctx context.Context, owner models.Owner, skillID uint, referrer SkillReferrer) error {
	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferrerOwnership(tx, owner, referrer); err != nil {
			return err
		}
		if _, err := lockSkill(tx, skillID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: skill %d", ErrNotFound, skillID)
			}
			return err
		}
		if err := tx.Where(referrer.column()+" = ? AND skill_id = ?", referrer.ID, skillID).
			Delete(referrer.model()).Error; err != nil {
			return fmt.Errorf("unable to detach skill: %v", err)
		}
		_, err := collectSkill(tx, skillID)
		return err
	})
}

// DeleteSkill removes a skill from the caller's content. With a project it
// only unlinks that project. Without one it unlinks every project and
// experience of the owner plus the owner's own edge; the skill survives as
// long as another owner, project or experience still refers to it, or it
// carries an icon.
func DeleteSkill(ctx context.Context, owner models.Owner, skillID uint, projectID *uint) error {
	if projectID != nil {
		return DetachSkill(ctx, owner, skillID, ProjectReferrer(*projectID))
	}

	var deleted bool
	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockSkill(tx, skillID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: skill %d", ErrNotFound, skillID)
			}
			return err
		}

		ownedProjects := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Project{}).Select("id").Where("owner_id = ?", owner.ID)
		if err := tx.Where("skill_id = ? AND project_id IN (?)", skillID, ownedProjects).
			Delete(&models.ProjectSkill{}).Error; err != nil {
			return fmt.Errorf("unable to detach skill from projects: %v", err)
		}

		ownedExperiences := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Experience{}).Select("id").Where("owner_id = ?", owner.ID)
		if err := tx.Where("skill_id = ? AND experience_id IN (?)", skillID, ownedExperiences).
			Delete(&models.ExperienceSkill{}).Error; err != nil {
			return fmt.Errorf("unable to detach skill from experiences: %v", err)
		}

		if err := tx.Where("owner_id = ? AND skill_id = ?", owner.ID, skillID).
			Delete(&models.OwnerSkill{}).Error; err != nil {
			return fmt.Errorf("unable to detach skill from owner: %v", err)
		}

		var err error
		deleted, err = collectSkill(tx, skillID)
		return err
	})
	if err != nil {
		return err
	}

	log.Debug().
		Uint("owner", owner.ID).
		Uint("skill", skillID).
		Bool("collected", deleted).
		Msg("Removed skill from owner content.")
	return nil
}

// detachReferrerSkills drops every edge of the referrer and collects the
// skills left without references. Skills are locked in id order.
func detachReferrerSkills(tx *gorm.DB, referrer SkillReferrer) error {
	var skillIDs []uint
	if err := tx.Model(referrer.model()).
		Where(referrer.column()+" = ?", referrer.ID).
		Pluck("skill_id", &skillIDs).Error; err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	sort.Slice(skillIDs, func(i, j int) bool { return skillIDs[i] < skillIDs[j] })

	for _, id := range skillIDs {
		if _, err := lockSkill(tx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if err := tx.Where(referrer.column()+" = ?", referrer.ID).
		Delete(referrer.model()).Error; err != nil {
		return fmt.Errorf("unable to detach skills: %v", err)
	}

	for _, id := range skillIDs {
		if _, err := collectSkill(tx, id); err != nil {
			return err
		}
	}
	return nil
}

func GetSkill(ctx context.Context, id uint) (models.Skill, error) {
	var skill models.Skill
	if err := database.C.WithContext(ctx).Where("id = ?", id).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skill, fmt.Errorf("%w: skill %d", ErrNotFound, id)
		}
		return skill, err
	}
	return skill, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func SearchSkills(ctx context.Context, take int, offset int, query string) ([]models.Skill, error) {
	if take > 100 || take <= 0 {
		take = 100
	}

	tx := database.C.WithContext(ctx)
	if alias, _, err := NormalizeSkillName(query); err == nil {
		tx = tx.Where(`alias LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(alias)+"%")
	}

	var skills []models.Skill
	err := tx.Order("name ASC").Offset(offset).Limit(take).Find(&skills).Error
	return skills, err
}

// SetSkillIcon curates a skill. Removing the icon makes the skill collectable
// again.
func SetSkillIcon(ctx context.Context, id uint, icon *string) (models.Skill, error) {
	if icon != nil && len(strings.TrimSpace(*icon)) == 0 {
		icon = nil
	}

	var skill models.Skill
	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if skill, err = lockSkill(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: skill %d", ErrNotFound, id)
			}
			return err
		}
		skill.IconImage = icon
		if err := tx.Model(&skill).Update("icon_image", icon).Error; err != nil {
			return err
		}
		if icon == nil {
			_, err = collectSkill(tx, id)
		}
		return err
	})

	return skill, err
}

// SweepOrphanSkills collects every skill left without icon and references.
// Each candidate is re-checked under its own lock.
func SweepOrphanSkills(ctx context.Context) (int, error) {
	var candidates []uint
	if err := database.C.WithContext(ctx).
		Model(&models.Skill{}).
		Scopes(FilterOrphanSkill).
		Pluck("skills.id", &candidates).Error; err != nil {
		return 0, fmt.Errorf("unable to list orphan skills: %v", err)
	}

	var count int
	for _, id := range candidates {
		var deleted bool
		err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			deleted, err = gcSkill(tx, id)
			return err
		})
		if errors.Is(err, ErrConflict) {
			continue
		} else if err != nil {
			return count, err
		}
		count += lo.Ternary(deleted, 1, 0)
	}

	return count, nil
}
