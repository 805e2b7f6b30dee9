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

func CreateGallery(ctx context.Context, owner models.Owner, name string, images []string) (models.Gallery, error) {
	gallery := models.Gallery{
		Name:    strings.TrimSpace(name),
		OwnerID: owner.ID,
		Photos: lo.FilterMap(images, func(item string, _ int) (models.Photo, bool) {
			return models.Photo{Image: item}, len(item) > 0
		}),
	}
	if len(gallery.Name) == 0 {
		return gallery, fmt.Errorf("%w: gallery name cannot be empty", ErrInvalidInput)
	}

	err := database.C.WithContext(ctx).Create(&gallery).Error
	return gallery, err
}

func AddPhoto(ctx context.Context, owner models.Owner, galleryID uint, image string) (models.Photo, error) {
	photo := models.Photo{Image: image, GalleryID: galleryID}
	if len(image) == 0 {
		return photo, fmt.Errorf("%w: photo image cannot be empty", ErrInvalidInput)
	}
	if _, err := getOwned[models.Gallery](ctx, owner, galleryID); err != nil {
		return photo, err
	}

	err := database.C.WithContext(ctx).Create(&photo).Error
	return photo, err
}

// DeleteGallery tears down a gallery. Media that failed to delete are left
// behind in the storage; the rows are removed regardless.
func DeleteGallery(ctx context.Context, owner models.Owner, galleryID uint) error {
	gallery, err := getOwned[models.Gallery](ctx, owner, galleryID)
	if err != nil {
		return err
	}

	var photos []models.Photo
	if err := database.C.WithContext(ctx).
		Where("gallery_id = ?", gallery.ID).
		Find(&photos).Error; err != nil {
		return fmt.Errorf("unable to list photos: %v", err)
	}

	purgeMediaBestEffort(ctx, owner, media.NamespacePhotos, lo.Map(photos, func(item models.Photo, _ int) string {
		return item.Image
	}))

	if err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", gallery.ID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&gallery).Error
	}); err != nil {
		return fmt.Errorf("unable to delete gallery: %v", err)
	}

	log.Debug().Uint("gallery", gallery.ID).Int("photos", len(photos)).Msg("Deleted a gallery.")
	return nil
}

// DeletePhoto removes one photo. The row is kept when its media could not be
// deleted so the object never loses its last reference.
func DeletePhoto(ctx context.Context, owner models.Owner, photoID uint) error {
	var photo models.Photo
	if err := database.C.WithContext(ctx).Where("id = ?", photoID).First(&photo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: photo %d", ErrNotFound, photoID)
		}
		return err
	}
	if _, err := getOwned[models.Gallery](ctx, owner, photo.GalleryID); err != nil {
		return err
	}

	if err := purgeMediaAllOrNothing(ctx, owner, media.NamespacePhotos, []string{photo.Image}); err != nil {
		return err
	}

	return database.C.WithContext(ctx).Delete(&photo).Error
}
