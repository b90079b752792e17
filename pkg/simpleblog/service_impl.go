package simpleblog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// service implements the Service interface
type service struct {
	repository  Repository
	attachments *attachmentStore
	users       UserDirectory
	eventSink   EventSink
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the attachment storage backend
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.attachments = &attachmentStore{blobs: store}
	}
}

// WithUserDirectory sets the user directory used to snapshot author names.
// When unset, the display name carried by the acting identity is used.
func WithUserDirectory(users UserDirectory) Option {
	return func(s *service) {
		s.users = users
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.attachments == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	s.attachments.repo = s.repository

	return s, nil
}

// Post operations

func (s *service) ListPosts(ctx context.Context, req ListPostsRequest) (*PostPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered, err := s.repository.ListPosts(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	count := len(filtered)
	low := (page - 1) * pageSize
	high := low + pageSize
	if low > count {
		low = count
	}
	if high > count {
		high = count
	}

	return &PostPage{
		Items:      filtered[low:high],
		TotalCount: count,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *service) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repository.GetPost(ctx, id)
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if !HasRole(req.Identity, RoleSuperAdmin) {
		return nil, ErrAccessDenied
	}
	if err := validatePostFields(postFields{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
	}); err != nil {
		return nil, err
	}
	if req.Upload == nil {
		return nil, ErrMissingUpload
	}
	if !ValidExtension(req.Upload.Filename) {
		return nil, ErrUnsupportedMediaType
	}

	path := ResolveAttachmentPath(req.Upload.Filename)
	if err := s.attachments.store(ctx, path, req.Upload.Reader); err != nil {
		// No row is committed referencing a path whose bytes never landed.
		return nil, err
	}

	post := &Post{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		PublishDate: req.PublishDate,
		PublishTime: req.PublishTime,
		ImagePath:   path,
		CategoryID:  req.CategoryID,
	}

	if err := s.repository.CreatePost(ctx, post); err != nil {
		return nil, &PostError{PostID: post.ID, Op: "create", Err: err}
	}

	s.firePostEvent(ctx, "created", func() error { return s.eventSink.PostCreated(ctx, post) })

	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if !HasRole(req.Identity, RoleSuperAdmin) {
		return nil, ErrAccessDenied
	}
	if err := validatePostFields(postFields{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
	}); err != nil {
		return nil, err
	}

	prev, err := s.repository.GetPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	post := &Post{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		PublishDate: req.PublishDate,
		PublishTime: req.PublishTime,
		ImagePath:   prev.ImagePath,
		CategoryID:  req.CategoryID,
	}

	// Image replace protocol: an upload resolving to the current path is an
	// idempotent no-op (no write, no delete); a different path gets its
	// bytes stored now and the old path released after the row repoints.
	replacedPath := ""
	if req.Upload != nil {
		if !ValidExtension(req.Upload.Filename) {
			return nil, ErrUnsupportedMediaType
		}
		newPath := ResolveAttachmentPath(req.Upload.Filename)
		if newPath != prev.ImagePath {
			if err := s.attachments.store(ctx, newPath, req.Upload.Reader); err != nil {
				return nil, err
			}
			post.ImagePath = newPath
			replacedPath = prev.ImagePath
		}
	}

	if err := s.repository.UpdatePost(ctx, post); err != nil {
		err = resolveUpdateConflict(ctx, err, s.postExists(req.ID), ErrPostNotFound)
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		return nil, &PostError{PostID: req.ID, Op: "update", Err: err}
	}

	if replacedPath != "" {
		if err := s.attachments.release(ctx, replacedPath); err != nil {
			return nil, err
		}
	}

	s.firePostEvent(ctx, "updated", func() error { return s.eventSink.PostUpdated(ctx, post) })

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, req DeletePostRequest) error {
	if !HasRole(req.Identity, RoleSuperAdmin) {
		return ErrAccessDenied
	}

	prev, err := s.repository.GetPost(ctx, req.ID)
	if err != nil {
		return err
	}
	imagePath := prev.ImagePath

	if err := s.repository.DeletePost(ctx, req.ID); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return err
		}
		return &PostError{PostID: req.ID, Op: "delete", Err: err}
	}

	// The reference count is computed after the row is gone, so a path
	// still shared with other posts survives.
	if err := s.attachments.release(ctx, imagePath); err != nil {
		return err
	}

	s.firePostEvent(ctx, "deleted", func() error { return s.eventSink.PostDeleted(ctx, req.ID) })

	return nil
}

func (s *service) postExists(id int64) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		_, err := s.repository.GetPost(ctx, id)
		if errors.Is(err, ErrPostNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
}

// Comment operations

func (s *service) ListComments(ctx context.Context, postID int64) ([]*Comment, error) {
	return s.repository.ListComments(ctx, postID)
}

func (s *service) GetComment(ctx context.Context, id int64) (*Comment, error) {
	return s.repository.GetComment(ctx, id)
}

func (s *service) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	if !req.Identity.IsAuthenticated() {
		return nil, ErrAccessDenied
	}
	if err := validateCommentContent(req.Content); err != nil {
		return nil, err
	}

	// The comment must land on an existing post.
	if _, err := s.repository.GetPost(ctx, req.PostID); err != nil {
		return nil, err
	}

	name, err := s.resolveDisplayName(ctx, req.Identity)
	if err != nil {
		return nil, err
	}
	if err := validateAuthorName(name); err != nil {
		return nil, err
	}

	comment := &Comment{
		Content:        req.Content,
		PublishDate:    req.PublishDate,
		PublishTime:    req.PublishTime,
		AuthorUserID:   req.Identity.ID,
		AuthorUserName: name,
		PostID:         req.PostID,
	}

	if err := s.repository.CreateComment(ctx, comment); err != nil {
		return nil, &CommentError{CommentID: comment.ID, Op: "create", Err: err}
	}

	s.fireCommentEvent(ctx, "created", func() error { return s.eventSink.CommentCreated(ctx, comment) })

	return comment, nil
}

func (s *service) UpdateComment(ctx context.Context, req UpdateCommentRequest) (*Comment, error) {
	if !req.Identity.IsAuthenticated() {
		return nil, ErrAccessDenied
	}

	target, err := s.repository.GetComment(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !OwnsByName(target.AuthorUserName, req.Identity) {
		return nil, ErrAccessDenied
	}
	if err := validateCommentContent(req.Content); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:             req.ID,
		Content:        req.Content,
		PublishDate:    req.PublishDate,
		PublishTime:    req.PublishTime,
		AuthorUserID:   target.AuthorUserID,
		AuthorUserName: target.AuthorUserName,
		PostID:         target.PostID,
	}

	if err := s.repository.UpdateComment(ctx, comment); err != nil {
		err = resolveUpdateConflict(ctx, err, s.commentExists(req.ID), ErrCommentNotFound)
		if errors.Is(err, ErrCommentNotFound) {
			return nil, err
		}
		return nil, &CommentError{CommentID: req.ID, Op: "update", Err: err}
	}

	s.fireCommentEvent(ctx, "updated", func() error { return s.eventSink.CommentUpdated(ctx, comment) })

	return comment, nil
}

func (s *service) DeleteComment(ctx context.Context, req DeleteCommentRequest) error {
	if !req.Identity.IsAuthenticated() {
		return ErrAccessDenied
	}

	target, err := s.repository.GetComment(ctx, req.ID)
	if err != nil {
		return err
	}
	if !OwnsByName(target.AuthorUserName, req.Identity) {
		return ErrAccessDenied
	}

	if err := s.repository.DeleteComment(ctx, req.ID); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return err
		}
		return &CommentError{CommentID: req.ID, Op: "delete", Err: err}
	}

	s.fireCommentEvent(ctx, "deleted", func() error { return s.eventSink.CommentDeleted(ctx, req.ID) })

	return nil
}

func (s *service) commentExists(id int64) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		_, err := s.repository.GetComment(ctx, id)
		if errors.Is(err, ErrCommentNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
}

// Category operations

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repository.ListCategories(ctx)
}

func (s *service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.repository.GetCategory(ctx, id)
}

// Attachment serving

func (s *service) OpenAttachment(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.attachments.open(ctx, path)
}

// Event helpers

func (s *service) resolveDisplayName(ctx context.Context, identity Identity) (string, error) {
	if s.users == nil {
		return identity.DisplayName, nil
	}
	return s.users.ResolveDisplayName(ctx, identity.ID)
}

func (s *service) firePostEvent(ctx context.Context, op string, fire func() error) {
	if s.eventSink == nil {
		return
	}
	if err := fire(); err != nil {
		slog.Error("post event sink failed", "op", op, "error", err)
	}
}

func (s *service) fireCommentEvent(ctx context.Context, op string, fire func() error) {
	if s.eventSink == nil {
		return
	}
	if err := fire(); err != nil {
		slog.Error("comment event sink failed", "op", op, "error", err)
	}
}
