package services

import (
	"context"
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ensureSubject(tx *gorm.DB, subjectType string, subjectID uint) error {
	var count int64
	switch subjectType {
	case models.SubjectProject:
		tx = tx.Model(&models.Project{})
	case models.SubjectPost:
		tx = tx.Model(&models.Post{})
	default:
		return fmt.Errorf("%w: unknown interaction subject %q", ErrInvalidInput, subjectType)
	}
	if err := tx.Where("id = ?", subjectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, subjectType, subjectID)
	}
	return nil
}

// ToggleInteraction flips a like or save of the owner on the subject and
// reports whether the edge is present afterwards.
func ToggleInteraction(ctx context.Context, owner models.Owner, kind, subjectType string, subjectID uint) (bool, error) {
	if kind != models.InteractionLike && kind != models.InteractionSave {
		return false, fmt.Errorf("%w: interaction %q cannot be toggled", ErrInvalidInput, kind)
	}

	var present bool
	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSubject(tx, subjectType, subjectID); err != nil {
			return err
		}

		edge := models.Interaction{
			Kind:        kind,
			SubjectType: subjectType,
			SubjectID:   subjectID,
			OwnerID:     owner.ID,
		}
		var existing models.Interaction
		if err := tx.Where(&edge).First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			present = true
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
		}

		present = false
		return tx.Delete(&existing).Error
	})

	return present, err
}

// AddView records that the owner viewed the subject. Repeated views count once.
func AddView(ctx context.Context, owner models.Owner, subjectType string, subjectID uint) error {
	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSubject(tx, subjectType, subjectID); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Interaction{
			Kind:        models.InteractionView,
			SubjectType: subjectType,
			SubjectID:   subjectID,
			OwnerID:     owner.ID,
		}).Error
	})
}

func deleteSubjectInteractions(tx *gorm.DB, subjectType string, subjectIDs ...uint) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	return tx.
		Where("subject_type = ? AND subject_id IN ?", subjectType, subjectIDs).
		Delete(&models.Interaction{}).Error
}

// CountContentMetrics sums up the interactions of many subjects at once.
func CountContentMetrics(tx *gorm.DB, subjectType string, subjectIDs []uint) (map[uint]models.ContentMetric, error) {
	out := make(map[uint]models.ContentMetric, len(subjectIDs))
	subjectIDs = lo.Uniq(subjectIDs)
	if len(subjectIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		SubjectID uint
		Kind      string
		Count     int64
	}
	if err := tx.Model(&models.Interaction{}).
		Select("subject_id, kind, COUNT(id) AS count").
		Where("subject_type = ? AND subject_id IN ?", subjectType, subjectIDs).
		Group("subject_id, kind").
		Scan(&rows).Error; err != nil {
		return out, fmt.Errorf("unable to count interactions: %v", err)
	}

	for _, row := range rows {
		metric := out[row.SubjectID]
		switch row.Kind {
		case models.InteractionLike:
			metric.TotalLikes = row.Count
		case models.InteractionSave:
			metric.TotalSaves = row.Count
		case models.InteractionView:
			metric.TotalViews = row.Count
		}
		out[row.SubjectID] = metric
	}
	return out, nil
}
