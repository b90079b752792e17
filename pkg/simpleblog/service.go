package simpleblog

import (
	"context"
	"io"
)

// Service defines the main interface for the simple-blog library
type Service interface {
	// Post operations
	ListPosts(ctx context.Context, req ListPostsRequest) (*PostPage, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, req DeletePostRequest) error

	// Comment operations
	ListComments(ctx context.Context, postID int64) ([]*Comment, error)
	GetComment(ctx context.Context, id int64) (*Comment, error)
	CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, req DeleteCommentRequest) error

	// Category operations
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)

	// OpenAttachment opens the stored image at a "/files/<name>" path for
	// serving.
	OpenAttachment(ctx context.Context, path string) (io.ReadCloser, error)
}
