package services

import (
	"context"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteGalleryBestEffort(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")

	gallery, err := CreateGallery(ctx, alice, "Trip", []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.png",
		"https://cdn.example.com/c.webp",
	})
	require.NoError(t, err)
	require.Len(t, gallery.Photos, 3)
	store.failing[alice.AccountID+"/photos/b"] = true

	require.NoError(t, DeleteGallery(ctx, alice, gallery.ID))

	assert.ElementsMatch(t, []string{
		alice.AccountID + "/photos/a",
		alice.AccountID + "/photos/c",
	}, store.Deleted())

	var count int64
	require.NoError(t, database.C.Model(&models.Photo{}).Where("gallery_id = ?", gallery.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, database.C.Model(&models.Gallery{}).Where("id = ?", gallery.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, DeleteGallery(ctx, alice, gallery.ID), ErrNotFound)
}

func TestDeleteGalleryOfAnotherOwner(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")
	bob := newOwner(t, "bob")

	gallery, err := CreateGallery(ctx, alice, "Trip", []string{"https://cdn.example.com/a.jpg"})
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteGallery(ctx, bob, gallery.ID), ErrForbidden)
	assert.Empty(t, store.Deleted())
}

func TestDeletePhoto(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")
	bob := newOwner(t, "bob")

	gallery, err := CreateGallery(ctx, alice, "Trip", nil)
	require.NoError(t, err)
	photo, err := AddPhoto(ctx, alice, gallery.ID, "https://cdn.example.com/uploads/sunset.tar.gz")
	require.NoError(t, err)

	assert.ErrorIs(t, DeletePhoto(ctx, bob, photo.ID), ErrForbidden)

	require.NoError(t, DeletePhoto(ctx, alice, photo.ID))
	assert.Equal(t, []string{alice.AccountID + "/photos/sunset.tar"}, store.Deleted())
	assert.ErrorIs(t, DeletePhoto(ctx, alice, photo.ID), ErrNotFound)
}

func TestDeletePhotoKeepsRowOnFailure(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")

	gallery, err := CreateGallery(ctx, alice, "Trip", []string{"https://cdn.example.com/a.jpg"})
	require.NoError(t, err)
	store.failing[alice.AccountID+"/photos/a"] = true

	err = DeletePhoto(ctx, alice, gallery.Photos[0].ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExternalDeleteFailed)

	var count int64
	require.NoError(t, database.C.Model(&models.Photo{}).Where("id = ?", gallery.Photos[0].ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeletePhotoTimeout(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	store.hang = true
	viper.Set("media.timeout", 20*time.Millisecond)
	t.Cleanup(func() { viper.Set("media.timeout", nil) })
	ctx := context.Background()
	alice := newOwner(t, "alice")

	gallery, err := CreateGallery(ctx, alice, "Trip", []string{"https://cdn.example.com/a.jpg"})
	require.NoError(t, err)

	assert.ErrorIs(t, DeletePhoto(ctx, alice, gallery.Photos[0].ID), ErrExternalDeleteFailed)
}

func TestDeletePhotoWithoutFilename(t *testing.T) {
	setupDatabase(t)
	useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")

	gallery, err := CreateGallery(ctx, alice, "Trip", []string{"https://cdn.example.com/"})
	require.NoError(t, err)

	assert.ErrorIs(t, DeletePhoto(ctx, alice, gallery.Photos[0].ID), ErrExternalDeleteFailed)
}
