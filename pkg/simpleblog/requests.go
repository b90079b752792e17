package simpleblog

import (
	"io"
	"time"
)

// Request DTOs

// Upload carries one uploaded file. Filename is the original client-side
// name; the service derives the storage path from it.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// ListPostsRequest contains parameters for a filtered, paginated listing.
// CategoryID 0 means all categories. Page values below 1 are treated as 1;
// PageSize 0 falls back to DefaultPageSize.
type ListPostsRequest struct {
	CategoryID int64
	Page       int
	PageSize   int
}

// CreatePostRequest contains parameters for creating a post. Upload is
// mandatory on create.
type CreatePostRequest struct {
	Identity    Identity
	Title       string
	Description string
	Content     string
	PublishDate time.Time
	PublishTime time.Time
	CategoryID  int64
	Upload      *Upload
}

// UpdatePostRequest contains parameters for updating a post. A nil Upload
// leaves the stored image untouched.
type UpdatePostRequest struct {
	Identity    Identity
	ID          int64
	Title       string
	Description string
	Content     string
	PublishDate time.Time
	PublishTime time.Time
	CategoryID  int64
	Upload      *Upload
}

// DeletePostRequest contains parameters for deleting a post.
type DeletePostRequest struct {
	Identity Identity
	ID       int64
}

// CreateCommentRequest contains parameters for creating a comment.
type CreateCommentRequest struct {
	Identity    Identity
	PostID      int64
	Content     string
	PublishDate time.Time
	PublishTime time.Time
}

// UpdateCommentRequest contains parameters for updating a comment. Author
// fields are never updatable; they stay as snapshotted at creation.
type UpdateCommentRequest struct {
	Identity    Identity
	ID          int64
	Content     string
	PublishDate time.Time
	PublishTime time.Time
}

// DeleteCommentRequest contains parameters for deleting a comment.
type DeleteCommentRequest struct {
	Identity Identity
	ID       int64
}
