package simpleblog

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// BlobStore defines the interface for attachment storage backends. Keys are
// storage-relative (no leading slash); the service maps the public
// "/files/<name>" path onto them.
type BlobStore interface {
	// Upload writes the content under key, replacing any existing bytes.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download opens the content stored under key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content under key. Deleting an absent key is a
	// no-op, not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether content is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Repository defines the interface for post, comment and category
// persistence. Update methods return ErrUpdateConflict when the targeted
// row changed or vanished since it was read.
type Repository interface {
	// Post operations
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id int64) (*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id int64) error
	// ListPosts returns posts ordered by id ascending. A categoryID of 0
	// means all categories.
	ListPosts(ctx context.Context, categoryID int64) ([]*Post, error)
	// CountPostsByImagePath returns the number of post rows whose ImagePath
	// currently equals path.
	CountPostsByImagePath(ctx context.Context, path string) (int, error)

	// Comment operations
	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id int64) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, id int64) error
	// ListComments returns comments in insertion order. A postID of 0 means
	// all posts.
	ListComments(ctx context.Context, postID int64) ([]*Comment, error)

	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, id int64) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}

// UserDirectory resolves the current display name for a user id. Ownership
// checks only need this single capability of the user store.
type UserDirectory interface {
	ResolveDisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}

// EventSink defines the interface for event handling. Sink failures are
// logged by callers and never fail the originating operation.
type EventSink interface {
	// PostCreated is fired when a post is created
	PostCreated(ctx context.Context, post *Post) error

	// PostUpdated is fired when a post is updated
	PostUpdated(ctx context.Context, post *Post) error

	// PostDeleted is fired when a post is deleted
	PostDeleted(ctx context.Context, postID int64) error

	// CommentCreated is fired when a comment is created
	CommentCreated(ctx context.Context, comment *Comment) error

	// CommentUpdated is fired when a comment is updated
	CommentUpdated(ctx context.Context, comment *Comment) error

	// CommentDeleted is fired when a comment is deleted
	CommentDeleted(ctx context.Context, commentID int64) error
}
