package services

import (
	"context"
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// ProfileAggregate is an owner with every collection loaded for display.
type ProfileAggregate struct {
	models.Owner
	Posts []ResolvedPost `json:"posts"`
}

func orderTimeline(tx *gorm.DB) *gorm.DB {
	return tx.
		Order("status ASC").
		Order("end_date DESC NULLS LAST").
		Order("start_date DESC")
}

// PreloadProfile loads the profile collections in display order.
func PreloadProfile(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Skills", orderSkills).
		Preload("Projects", orderTimeline).
		Preload("Projects.Skills", orderSkills).
		Preload("Experiences", orderTimeline).
		Preload("Experiences.Skills", orderSkills).
		Preload("Educations", func(db *gorm.DB) *gorm.DB {
			return db.Order("end_date DESC NULLS LAST").Order("start_date DESC")
		}).
		Preload("Merits", func(db *gorm.DB) *gorm.DB {
			return db.Order("issue_date DESC NULLS LAST").Order("created_at DESC")
		}).
		Preload("Galleries", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Galleries.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("updated_at DESC")
		})
}

// LoadProfile loads the profile of accountID, or of the caller when accountID
// is empty. The caller's own profile is created on the first visit; other
// profiles must exist.
func LoadProfile(ctx context.Context, caller *models.Account, accountID string) (ProfileAggregate, error) {
	var err error
	var owner models.Owner
	if len(accountID) > 0 {
		owner, err = GetOwnerByAccount(ctx, accountID)
	} else if caller == nil {
		err = ErrUnauthorized
	} else {
		owner, err = GetOrCreateOwner(ctx, *caller)
	}
	if err != nil {
		return ProfileAggregate{}, err
	}

	tx := database.C.WithContext(ctx)
	if err := PreloadProfile(tx).Where("id = ?", owner.ID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileAggregate{}, fmt.Errorf("%w: profile %d", ErrNotFound, owner.ID)
		}
		return ProfileAggregate{}, fmt.Errorf("unable to load profile: %v", err)
	}

	projectMetrics, err := CountContentMetrics(tx, models.SubjectProject, lo.Map(owner.Projects, func(item models.Project, _ int) uint {
		return item.ID
	}))
	if err != nil {
		return ProfileAggregate{}, err
	}
	for idx := range owner.Projects {
		owner.Projects[idx].Metric = projectMetrics[owner.Projects[idx].ID]
	}

	postMetrics, err := CountContentMetrics(tx, models.SubjectPost, lo.Map(owner.Posts, func(item models.Post, _ int) uint {
		return item.ID
	}))
	if err != nil {
		return ProfileAggregate{}, err
	}
	for idx := range owner.Posts {
		owner.Posts[idx].Metric = postMetrics[owner.Posts[idx].ID]
	}

	posts, err := ResolvePosts(ctx, owner.Posts)
	if err != nil {
		return ProfileAggregate{}, err
	}
	owner.Posts = nil

	return ProfileAggregate{Owner: owner, Posts: posts}, nil
}
