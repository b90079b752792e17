package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

func openTestRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.CreateCategory(context.Background(), &simpleblog.Category{Name: "General"}))
	return repo
}

func seedPost(t *testing.T, repo *Repository) *simpleblog.Post {
	t.Helper()

	post := &simpleblog.Post{
		Title:       "first",
		Description: "desc",
		Content:     "content",
		PublishDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PublishTime: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		ImagePath:   "/files/cat.png",
		CategoryID:  1,
	}
	require.NoError(t, repo.CreatePost(context.Background(), post))
	require.NotZero(t, post.ID)
	return post
}

func TestPostLifecycle(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	post := seedPost(t, repo)

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, "/files/cat.png", got.ImagePath)
	assert.Equal(t, int64(1), got.CategoryID)

	got.Title = "second"
	require.NoError(t, repo.UpdatePost(ctx, got))
	got, err = repo.GetPost(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)

	require.NoError(t, repo.DeletePost(ctx, got.ID))
	_, err = repo.GetPost(ctx, got.ID)
	assert.ErrorIs(t, err, simpleblog.ErrPostNotFound)
	assert.ErrorIs(t, repo.DeletePost(ctx, got.ID), simpleblog.ErrPostNotFound)
}

func TestUpdateMissingPostIsConflict(t *testing.T) {
	repo := openTestRepository(t)
	err := repo.UpdatePost(context.Background(), &simpleblog.Post{ID: 42, CategoryID: 1})
	assert.ErrorIs(t, err, simpleblog.ErrUpdateConflict)
}

func TestListPostsFilterAndOrder(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &simpleblog.Category{Name: "Travel"}))

	a := seedPost(t, repo)
	b := seedPost(t, repo)
	b.CategoryID = 2
	require.NoError(t, repo.UpdatePost(ctx, b))
	seedPost(t, repo)

	all, err := repo.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, a.ID, all[0].ID)

	travel, err := repo.ListPosts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, travel, 1)
	assert.Equal(t, b.ID, travel[0].ID)
}

func TestCountPostsByImagePath(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	seedPost(t, repo)
	seedPost(t, repo)
	other := seedPost(t, repo)
	other.ImagePath = "/files/dog.jpg"
	require.NoError(t, repo.UpdatePost(ctx, other))

	count, err := repo.CountPostsByImagePath(ctx, "/files/cat.png")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCommentLifecycle(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	post := seedPost(t, repo)
	authorID := uuid.New()

	comment := &simpleblog.Comment{
		Content:        "hello",
		PublishDate:    time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		PublishTime:    time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		AuthorUserID:   authorID,
		AuthorUserName: "alice",
		PostID:         post.ID,
	}
	require.NoError(t, repo.CreateComment(ctx, comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, authorID, got.AuthorUserID)
	assert.Equal(t, "alice", got.AuthorUserName)
	assert.Equal(t, post.ID, got.PostID)

	got.Content = "edited"
	require.NoError(t, repo.UpdateComment(ctx, got))

	err = repo.UpdateComment(ctx, &simpleblog.Comment{ID: 42})
	assert.ErrorIs(t, err, simpleblog.ErrUpdateConflict)

	list, err := repo.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "edited", list[0].Content)

	require.NoError(t, repo.DeleteComment(ctx, comment.ID))
	_, err = repo.GetComment(ctx, comment.ID)
	assert.ErrorIs(t, err, simpleblog.ErrCommentNotFound)
}

func TestCategories(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &simpleblog.Category{Name: "Travel"}))

	got, err := repo.GetCategory(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Travel", got.Name)

	_, err = repo.GetCategory(ctx, 99)
	assert.ErrorIs(t, err, simpleblog.ErrCategoryNotFound)

	all, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
