package simpleblog

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink.
// Useful when no event handling is needed, or for testing.
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) PostCreated(ctx context.Context, post *Post) error          { return nil }
func (n *NoopEventSink) PostUpdated(ctx context.Context, post *Post) error          { return nil }
func (n *NoopEventSink) PostDeleted(ctx context.Context, postID int64) error        { return nil }
func (n *NoopEventSink) CommentCreated(ctx context.Context, comment *Comment) error { return nil }
func (n *NoopEventSink) CommentUpdated(ctx context.Context, comment *Comment) error { return nil }
func (n *NoopEventSink) CommentDeleted(ctx context.Context, commentID int64) error  { return nil }

// LogEventSink writes every event to a structured logger.
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates an event sink backed by logger. A nil logger uses
// slog.Default().
func NewLogEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

func (l *LogEventSink) PostCreated(ctx context.Context, post *Post) error {
	l.logger.InfoContext(ctx, "post created", "post_id", post.ID, "category_id", post.CategoryID, "image_path", post.ImagePath)
	return nil
}

func (l *LogEventSink) PostUpdated(ctx context.Context, post *Post) error {
	l.logger.InfoContext(ctx, "post updated", "post_id", post.ID, "category_id", post.CategoryID, "image_path", post.ImagePath)
	return nil
}

func (l *LogEventSink) PostDeleted(ctx context.Context, postID int64) error {
	l.logger.InfoContext(ctx, "post deleted", "post_id", postID)
	return nil
}

func (l *LogEventSink) CommentCreated(ctx context.Context, comment *Comment) error {
	l.logger.InfoContext(ctx, "comment created", "comment_id", comment.ID, "post_id", comment.PostID, "author", comment.AuthorUserName)
	return nil
}

func (l *LogEventSink) CommentUpdated(ctx context.Context, comment *Comment) error {
	l.logger.InfoContext(ctx, "comment updated", "comment_id", comment.ID, "post_id", comment.PostID)
	return nil
}

func (l *LogEventSink) CommentDeleted(ctx context.Context, commentID int64) error {
	l.logger.InfoContext(ctx, "comment deleted", "comment_id", commentID)
	return nil
}
