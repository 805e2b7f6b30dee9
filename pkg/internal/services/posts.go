package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/media"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var PostTypes = []string{
	models.PostTypeProject,
	models.PostTypeExperience,
	models.PostTypeEducation,
	models.PostTypeMerit,
	models.PostTypeStandalone,
}

func GetPost(ctx context.Context, id uint) (models.Post, error) {
	var item models.Post
	if err := database.C.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return item, err
	}
	return item, nil
}

func ensurePostTarget(ctx context.Context, owner models.Owner, postType string, dataID uint) error {
	var err error
	switch postType {
	case models.PostTypeProject:
		_, err = getOwned[models.Project](ctx, owner, dataID)
	case models.PostTypeExperience:
		_, err = getOwned[models.Experience](ctx, owner, dataID)
	case models.PostTypeEducation:
		_, err = getOwned[models.Education](ctx, owner, dataID)
	case models.PostTypeMerit:
		_, err = getOwned[models.Merit](ctx, owner, dataID)
	}
	return err
}

// NewPost publishes either a self-contained post carrying content media, or a
// pointer post sharing one of the owner's entities.
func NewPost(ctx context.Context, owner models.Owner, item models.Post) (models.Post, error) {
	item.ID = 0
	item.OwnerID = owner.ID
	item.Caption = strings.TrimSpace(item.Caption)
	if !lo.Contains(PostTypes, item.Type) {
		return item, fmt.Errorf("%w: unknown post type %q", ErrInvalidInput, item.Type)
	}

	if item.IsStandalone() {
		item.DataID = nil
		item.Content = lo.Compact(item.Content)
		if len(item.Content) == 0 && len(item.Caption) == 0 {
			return item, fmt.Errorf("%w: post must have either content or caption", ErrInvalidInput)
		}
	} else {
		if item.DataID == nil {
			return item, fmt.Errorf("%w: post of type %s must point to an entity", ErrInvalidInput, item.Type)
		}
		if err := ensurePostTarget(ctx, owner, item.Type, *item.DataID); err != nil {
			return item, err
		}
		item.Content = nil
	}

	item.Language = DetectLanguage(item.Caption)

	if err := database.C.WithContext(ctx).Create(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func EditPostCaption(ctx context.Context, owner models.Owner, id uint, caption string) (models.Post, error) {
	item, err := getOwned[models.Post](ctx, owner, id)
	if err != nil {
		return item, err
	}

	item.Caption = strings.TrimSpace(caption)
	item.Language = DetectLanguage(item.Caption)
	err = database.C.WithContext(ctx).
		Model(&item).
		Select("Caption", "Language").
		Updates(&item).Error
	return item, err
}

// DeletePost removes a post. The content media of a self-contained post are
// deleted first and the row stays when any of them failed.
func DeletePost(ctx context.Context, owner models.Owner, id uint) error {
	item, err := getOwned[models.Post](ctx, owner, id)
	if err != nil {
		return err
	}

	if item.IsStandalone() {
		if err := purgeMediaAllOrNothing(ctx, owner, media.NamespacePosts, item.Content); err != nil {
			log.Warn().Err(err).Uint("post", item.ID).Msg("Post kept because its content could not be deleted.")
			return err
		}
	}

	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteSubjectInteractions(tx, models.SubjectPost, item.ID); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}
