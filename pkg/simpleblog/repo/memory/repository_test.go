package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

func newPost(title string, categoryID int64) *simpleblog.Post {
	return &simpleblog.Post{
		Title:       title,
		Description: "desc",
		Content:     "content",
		PublishDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PublishTime: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		ImagePath:   "/files/cat.png",
		CategoryID:  categoryID,
	}
}

func TestPostCRUD(t *testing.T) {
	repo := New()
	ctx := context.Background()

	post := newPost("first", 1)
	require.NoError(t, repo.CreatePost(ctx, post))
	assert.Equal(t, int64(1), post.ID)

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	// The stored copy is isolated from later mutations of the argument.
	post.Title = "mutated"
	got, err = repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	got.Title = "second"
	require.NoError(t, repo.UpdatePost(ctx, got))
	got, err = repo.GetPost(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)

	require.NoError(t, repo.DeletePost(ctx, got.ID))
	_, err = repo.GetPost(ctx, got.ID)
	assert.ErrorIs(t, err, simpleblog.ErrPostNotFound)
}

func TestUpdateMissingPostIsConflict(t *testing.T) {
	repo := New()
	ctx := context.Background()

	err := repo.UpdatePost(ctx, &simpleblog.Post{ID: 42})
	assert.ErrorIs(t, err, simpleblog.ErrUpdateConflict)
}

func TestDeleteMissingPost(t *testing.T) {
	repo := New()
	err := repo.DeletePost(context.Background(), 42)
	assert.ErrorIs(t, err, simpleblog.ErrPostNotFound)
}

func TestListPostsFilterAndOrder(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, newPost("a", 1)))
	require.NoError(t, repo.CreatePost(ctx, newPost("b", 2)))
	require.NoError(t, repo.CreatePost(ctx, newPost("c", 1)))

	all, err := repo.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	filtered, err := repo.ListPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].Title)
	assert.Equal(t, "c", filtered[1].Title)
}

func TestCountPostsByImagePath(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, newPost("a", 1)))
	require.NoError(t, repo.CreatePost(ctx, newPost("b", 1)))

	other := newPost("c", 1)
	other.ImagePath = "/files/dog.jpg"
	require.NoError(t, repo.CreatePost(ctx, other))

	count, err := repo.CountPostsByImagePath(ctx, "/files/cat.png")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountPostsByImagePath(ctx, "/files/missing.png")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCommentCRUD(t *testing.T) {
	repo := New()
	ctx := context.Background()
	authorID := uuid.New()

	comment := &simpleblog.Comment{
		Content:        "hello",
		PublishDate:    time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		PublishTime:    time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		AuthorUserID:   authorID,
		AuthorUserName: "alice",
		PostID:         1,
	}
	require.NoError(t, repo.CreateComment(ctx, comment))
	assert.Equal(t, int64(1), comment.ID)

	got, err := repo.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, authorID, got.AuthorUserID)
	assert.Equal(t, "alice", got.AuthorUserName)

	got.Content = "edited"
	require.NoError(t, repo.UpdateComment(ctx, got))

	err = repo.UpdateComment(ctx, &simpleblog.Comment{ID: 42})
	assert.ErrorIs(t, err, simpleblog.ErrUpdateConflict)

	require.NoError(t, repo.DeleteComment(ctx, comment.ID))
	_, err = repo.GetComment(ctx, comment.ID)
	assert.ErrorIs(t, err, simpleblog.ErrCommentNotFound)
	assert.ErrorIs(t, repo.DeleteComment(ctx, comment.ID), simpleblog.ErrCommentNotFound)
}

func TestListCommentsByPost(t *testing.T) {
	repo := New()
	ctx := context.Background()

	for _, postID := range []int64{1, 2, 1} {
		require.NoError(t, repo.CreateComment(ctx, &simpleblog.Comment{
			Content:        "c",
			AuthorUserName: "alice",
			PostID:         postID,
		}))
	}

	forPost, err := repo.ListComments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, forPost, 2)
	assert.Equal(t, int64(1), forPost[0].ID)
	assert.Equal(t, int64(3), forPost[1].ID)

	all, err := repo.ListComments(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCategories(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &simpleblog.Category{Name: "General"}))
	require.NoError(t, repo.CreateCategory(ctx, &simpleblog.Category{Name: "Travel"}))

	got, err := repo.GetCategory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "General", got.Name)

	_, err = repo.GetCategory(ctx, 99)
	assert.ErrorIs(t, err, simpleblog.ErrCategoryNotFound)

	all, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Travel", all[1].Name)
}
