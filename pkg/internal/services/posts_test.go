package services

import (
	"context"
	"testing"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPosts(t *testing.T, id uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.C.Model(&models.Post{}).Where("id = ?", id).Count(&count).Error)
	return count
}

func TestNewPost(t *testing.T) {
	setupDatabase(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")
	bob := newOwner(t, "bob")
	project := newProject(t, alice, "Compiler")

	post, err := NewPost(ctx, alice, models.Post{
		Type:    models.PostTypeStandalone,
		DataID:  lo.ToPtr(project.ID),
		Content: []string{"https://cdn.example.com/a.jpg", ""},
		Caption: "  We finally shipped the new compiler to everyone today  ",
	})
	require.NoError(t, err)
	assert.Nil(t, post.DataID)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, []string(post.Content))
	assert.Equal(t, "We finally shipped the new compiler to everyone today", post.Caption)
	assert.Equal(t, "en", post.Language)

	shared, err := NewPost(ctx, alice, models.Post{
		Type:    models.PostTypeProject,
		DataID:  lo.ToPtr(project.ID),
		Content: []string{"https://cdn.example.com/ignored.jpg"},
	})
	require.NoError(t, err)
	assert.Empty(t, shared.Content)

	_, err = NewPost(ctx, bob, models.Post{Type: models.PostTypeProject, DataID: lo.ToPtr(project.ID)})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = NewPost(ctx, alice, models.Post{Type: models.PostTypeMerit, DataID: lo.ToPtr(uint(999))})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = NewPost(ctx, alice, models.Post{Type: models.PostTypeProject})
	assert.Error(t, err)
	_, err = NewPost(ctx, alice, models.Post{Type: "story", Caption: "hello"})
	assert.Error(t, err)
	_, err = NewPost(ctx, alice, models.Post{Type: models.PostTypeStandalone})
	assert.Error(t, err)
}

func TestDeleteStandalonePost(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")
	bob := newOwner(t, "bob")

	post, err := NewPost(ctx, alice, models.Post{
		Type:    models.PostTypeStandalone,
		Content: []string{"https://cdn.example.com/p/one.jpg", "https://cdn.example.com/p/two.mp4"},
	})
	require.NoError(t, err)
	_, err = ToggleInteraction(ctx, bob, models.InteractionLike, models.SubjectPost, post.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, DeletePost(ctx, bob, post.ID), ErrForbidden)
	require.NoError(t, DeletePost(ctx, alice, post.ID))

	assert.Equal(t, []string{
		alice.AccountID + "/posts/one",
		alice.AccountID + "/posts/two",
	}, store.Deleted())
	assert.EqualValues(t, 0, countPosts(t, post.ID))

	var interactions int64
	require.NoError(t, database.C.Model(&models.Interaction{}).Count(&interactions).Error)
	assert.EqualValues(t, 0, interactions)

	assert.ErrorIs(t, DeletePost(ctx, alice, post.ID), ErrNotFound)
}

func TestDeletePostAbortsOnFirstFailure(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")

	post, err := NewPost(ctx, alice, models.Post{
		Type:    models.PostTypeStandalone,
		Content: []string{"https://cdn.example.com/p/one.jpg", "https://cdn.example.com/p/two.jpg"},
	})
	require.NoError(t, err)
	store.failing[alice.AccountID+"/posts/one"] = true

	err = DeletePost(ctx, alice, post.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExternalDeleteFailed)
	assert.Empty(t, store.Deleted())
	assert.EqualValues(t, 1, countPosts(t, post.ID))
}

func TestDeletePointerPostSkipsMedia(t *testing.T) {
	setupDatabase(t)
	store := useFakeStore(t)
	ctx := context.Background()
	alice := newOwner(t, "alice")
	project := newProject(t, alice, "Compiler")

	post, err := NewPost(ctx, alice, models.Post{Type: models.PostTypeProject, DataID: lo.ToPtr(project.ID)})
	require.NoError(t, err)

	require.NoError(t, DeletePost(ctx, alice, post.ID))
	assert.Empty(t, store.Deleted())
	assert.EqualValues(t, 0, countPosts(t, post.ID))

	var projects int64
	require.NoError(t, database.C.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projects).Error)
	assert.EqualValues(t, 1, projects)
}

func TestDetectLanguage(t *testing.T) {
	assert.Empty(t, DetectLanguage("   "))
	assert.Equal(t, "en", DetectLanguage("The quick brown fox jumps over the lazy dog near the river bank"))
}
