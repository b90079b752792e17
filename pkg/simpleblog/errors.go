package simpleblog

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrPostNotFound indicates a post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound indicates a comment was not found
	ErrCommentNotFound = errors.New("comment not found")

	// ErrCategoryNotFound indicates a category was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUnsupportedMediaType indicates an upload with an extension outside
	// the permitted set
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrMissingUpload indicates a post mutation that requires a file upload
	// arrived without one
	ErrMissingUpload = errors.New("missing upload")

	// ErrAccessDenied indicates a role or ownership check failed
	ErrAccessDenied = errors.New("access denied")

	// ErrUpdateConflict indicates a write was rejected because the target row
	// changed or vanished since it was read. Repositories return it raw; the
	// service re-checks existence and either downgrades it to a not-found
	// error or propagates it as a fatal conflict. It is never retried.
	ErrUpdateConflict = errors.New("update conflict")
)

// PostError represents an error related to post operations
type PostError struct {
	PostID int64
	Op     string
	Err    error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post operation %s failed for post %d: %v", e.Op, e.PostID, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// CommentError represents an error related to comment operations
type CommentError struct {
	CommentID int64
	Op        string
	Err       error
}

func (e *CommentError) Error() string {
	return fmt.Sprintf("comment operation %s failed for comment %d: %v", e.Op, e.CommentID, e.Err)
}

func (e *CommentError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to attachment storage operations
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for path %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the field-level failures of a validated request.
// Validation runs before any mutation is attempted.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
