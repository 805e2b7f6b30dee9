package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	localCache "git.solsynth.dev/hypernet/showcase/pkg/internal/cache"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/media"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetOwnerCacheKey(accountID string) string {
	return fmt.Sprintf("owner-by-account#%s", accountID)
}

func getOwnerMarshal() *marshaler.Marshaler {
	if localCache.S == nil {
		return nil
	}
	return marshaler.New(cache.New[any](localCache.S))
}

// GetOwnerByAccount finds the owner bound to an account without creating one.
func GetOwnerByAccount(ctx context.Context, accountID string) (models.Owner, error) {
	var owner models.Owner

	marshal := getOwnerMarshal()
	if marshal != nil {
		if cached, err := marshal.Get(ctx, GetOwnerCacheKey(accountID), new(models.Owner)); err == nil {
			return *cached.(*models.Owner), nil
		}
	}

	if err := database.C.WithContext(ctx).Where("account_id = ?", accountID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return owner, fmt.Errorf("%w: no profile for account %s", ErrNotFound, accountID)
		}
		return owner, fmt.Errorf("unable to get owner: %v", err)
	}

	cacheOwner(ctx, marshal, owner)
	return owner, nil
}

// GetOrCreateOwner returns the owner bound to the account, creating an empty
// one on the first visit. Concurrent callers for the same account all end up
// with the single row guarded by the unique account index.
func GetOrCreateOwner(ctx context.Context, user models.Account) (models.Owner, error) {
	if len(user.ID) == 0 {
		return models.Owner{}, ErrUnauthorized
	}

	if owner, err := GetOwnerByAccount(ctx, user.ID); err == nil {
		return owner, nil
	} else if !errors.Is(err, ErrNotFound) {
		return owner, err
	}

	owner := models.Owner{
		AccountID: user.ID,
		Name:      user.Name,
	}
	if err := database.C.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoNothing: true,
		}).
		Create(&owner).Error; err != nil {
		return owner, fmt.Errorf("unable to create owner: %v", err)
	}

	return GetOwnerByAccount(ctx, user.ID)
}

func EditOwner(ctx context.Context, owner models.Owner) (models.Owner, error) {
	err := database.C.WithContext(ctx).
		Model(&owner).
		Select("Name", "Description", "Avatar").
		Updates(&owner).Error
	if err == nil {
		InvalidateOwnerCache(ctx, owner.AccountID)
	}
	return owner, err
}

func cacheOwner(ctx context.Context, marshal *marshaler.Marshaler, owner models.Owner) {
	if marshal == nil {
		return
	}
	ttl := viper.GetDuration("cache.owner_ttl")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	_ = marshal.Set(
		ctx,
		GetOwnerCacheKey(owner.AccountID),
		models.Owner{
			BaseModel:   owner.BaseModel,
			AccountID:   owner.AccountID,
			Name:        owner.Name,
			Description: owner.Description,
			Avatar:      owner.Avatar,
		},
		store.WithExpiration(ttl),
		store.WithTags([]string{"owner", fmt.Sprintf("account#%s", owner.AccountID)}),
	)
}

func InvalidateOwnerCache(ctx context.Context, accountID string) {
	marshal := getOwnerMarshal()
	if marshal == nil {
		return
	}
	_ = marshal.Invalidate(ctx, store.WithInvalidateTags([]string{fmt.Sprintf("account#%s", accountID)}))
}

// DeleteOwner removes the owner with everything it owns. Media are purged on
// a best-effort basis, then the rows go in one transaction and the skills the
// owner referred to are collected when nobody else uses them.
func DeleteOwner(ctx context.Context, owner models.Owner) error {
	tx := database.C.WithContext(ctx)
	newQuery := func() *gorm.DB { return tx.Session(&gorm.Session{NewDB: true}) }
	ownedGalleries := newQuery().Model(&models.Gallery{}).Select("id").Where("owner_id = ?", owner.ID)
	ownedProjects := newQuery().Model(&models.Project{}).Select("id").Where("owner_id = ?", owner.ID)
	ownedExperiences := newQuery().Model(&models.Experience{}).Select("id").Where("owner_id = ?", owner.ID)
	ownedPosts := newQuery().Model(&models.Post{}).Select("id").Where("owner_id = ?", owner.ID)

	var photos []string
	if err := tx.Model(&models.Photo{}).
		Where("gallery_id IN (?)", ownedGalleries).
		Pluck("image", &photos).Error; err != nil {
		return fmt.Errorf("unable to list photos: %v", err)
	}
	var posts []models.Post
	if err := tx.Where("owner_id = ? AND type = ?", owner.ID, models.PostTypeStandalone).
		Select("id", "content").
		Find(&posts).Error; err != nil {
		return fmt.Errorf("unable to list posts: %v", err)
	}

	purgeMediaBestEffort(ctx, owner, media.NamespacePhotos, photos)
	purgeMediaBestEffort(ctx, owner, media.NamespacePosts, lo.FlatMap(posts, func(item models.Post, _ int) []string {
		return item.Content
	}))

	var skillIDs []uint
	err := tx.Transaction(func(tx *gorm.DB) error {
		sub := func() *gorm.DB { return tx.Session(&gorm.Session{NewDB: true}) }
		for _, query := range []*gorm.DB{
			sub().Model(&models.OwnerSkill{}).Where("owner_id = ?", owner.ID),
			sub().Model(&models.ProjectSkill{}).Where("project_id IN (?)", ownedProjects),
			sub().Model(&models.ExperienceSkill{}).Where("experience_id IN (?)", ownedExperiences),
		} {
			var ids []uint
			if err := query.Pluck("skill_id", &ids).Error; err != nil {
				return err
			}
			skillIDs = append(skillIDs, ids...)
		}
		skillIDs = lo.Uniq(skillIDs)
		sort.Slice(skillIDs, func(i, j int) bool { return skillIDs[i] < skillIDs[j] })
		for _, id := range skillIDs {
			if _, err := lockSkill(tx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if err := tx.Where("subject_type = ? AND subject_id IN (?)", models.SubjectProject, ownedProjects).
			Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_type = ? AND subject_id IN (?)", models.SubjectPost, ownedPosts).
			Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", owner.ID).Delete(&models.OwnerSkill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id IN (?)", ownedProjects).Delete(&models.ProjectSkill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experience_id IN (?)", ownedExperiences).Delete(&models.ExperienceSkill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("gallery_id IN (?)", ownedGalleries).Delete(&models.Photo{}).Error; err != nil {
			return err
		}

		for _, model := range database.AutoMaintainRange {
			if err := tx.Delete(model, "owner_id = ?", owner.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Owner{}, "id = ?", owner.ID).Error; err != nil {
			return err
		}

		for _, id := range skillIDs {
			if _, err := collectSkill(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to delete owner: %v", err)
	}

	InvalidateOwnerCache(ctx, owner.AccountID)
	log.Info().
		Uint("owner", owner.ID).
		Str("account", owner.AccountID).
		Int("skills", len(skillIDs)).
		Msg("Deleted an owner and all of its content.")
	return nil
}
