package services

import (
	"context"
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// PostContent is the typed entity a pointer post resolves to.
type PostContent interface {
	PostType() string
}

type ProjectContent struct {
	models.Project
}

type ExperienceContent struct {
	models.Experience
}

type EducationContent struct {
	models.Education
}

type MeritContent struct {
	models.Merit
}

func (ProjectContent) PostType() string    { return models.PostTypeProject }
func (ExperienceContent) PostType() string { return models.PostTypeExperience }
func (EducationContent) PostType() string  { return models.PostTypeEducation }
func (MeritContent) PostType() string      { return models.PostTypeMerit }

// PostRef is the lookup a post needs before it can be shown.
type PostRef struct {
	Type   string
	DataID uint
}

// ResolvePostRef tells which entity the post points at. Self-contained posts,
// unknown types and pointers without data id need no lookup.
func ResolvePostRef(postType string, dataID *uint) (PostRef, bool) {
	if dataID == nil {
		return PostRef{}, false
	}
	switch postType {
	case models.PostTypeProject, models.PostTypeExperience, models.PostTypeEducation, models.PostTypeMerit:
		return PostRef{Type: postType, DataID: *dataID}, true
	default:
		return PostRef{}, false
	}
}

type ResolvedPost struct {
	models.Post
	Data PostContent `json:"data"`
}

const resolvePostConcurrency = 8

// ResolvePosts hydrates the posts with their pointed entities, keeping the
// input order. A pointer to a deleted entity resolves to no data.
func ResolvePosts(ctx context.Context, posts []models.Post) ([]ResolvedPost, error) {
	out := make([]ResolvedPost, len(posts))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(resolvePostConcurrency)
	for idx, post := range posts {
		out[idx] = ResolvedPost{Post: post}
		ref, ok := ResolvePostRef(post.Type, post.DataID)
		if !ok {
			continue
		}
		group.Go(func() error {
			data, err := fetchPostContent(database.C.WithContext(ctx), ref)
			if err != nil {
				return fmt.Errorf("unable to resolve post %d: %v", post.ID, err)
			}
			out[idx].Data = data
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func fetchPostContent(tx *gorm.DB, ref PostRef) (PostContent, error) {
	var err error
	var data PostContent
	switch ref.Type {
	case models.PostTypeProject:
		var item models.Project
		if err = PreloadProjectSummary(tx).Where("id = ?", ref.DataID).First(&item).Error; err == nil {
			var metrics map[uint]models.ContentMetric
			if metrics, err = CountContentMetrics(tx, models.SubjectProject, []uint{item.ID}); err == nil {
				item.Metric = metrics[item.ID]
				data = ProjectContent{item}
			}
		}
	case models.PostTypeExperience:
		var item models.Experience
		if err = PreloadExperienceSummary(tx).Where("id = ?", ref.DataID).First(&item).Error; err == nil {
			data = ExperienceContent{item}
		}
	case models.PostTypeEducation:
		var item models.Education
		if err = tx.Where("id = ?", ref.DataID).First(&item).Error; err == nil {
			data = EducationContent{item}
		}
	case models.PostTypeMerit:
		var item models.Merit
		if err = tx.Where("id = ?", ref.DataID).First(&item).Error; err == nil {
			data = MeritContent{item}
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return data, err
}

func orderSkills(tx *gorm.DB) *gorm.DB {
	return tx.Order("skills.name ASC")
}

// PreloadProjectSummary selects the columns a project card shows.
func PreloadProjectSummary(tx *gorm.DB) *gorm.DB {
	return tx.
		Select("id", "created_at", "updated_at", "name", "summary", "status",
			"start_date", "end_date", "thumbnail", "gallery", "owner_id").
		Preload("Skills", orderSkills)
}

func PreloadExperienceSummary(tx *gorm.DB) *gorm.DB {
	return tx.
		Select("id", "created_at", "updated_at", "title", "company", "summary", "status",
			"start_date", "end_date", "owner_id").
		Preload("Skills", orderSkills)
}
