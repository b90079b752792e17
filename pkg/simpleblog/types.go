package simpleblog

import (
	"time"

	"github.com/google/uuid"
)

// Role names a membership granted to an identity by the authentication
// system. Role semantics live outside this library; the service only
// compares names.
type Role string

// RoleSuperAdmin is required for every post mutation.
const RoleSuperAdmin Role = "superadmin"

// Identity is the resolved caller of a mutating operation. It is produced
// outside the library (session, JWT, test fixture) and threaded through
// every request explicitly.
type Identity struct {
	ID          uuid.UUID
	DisplayName string
	Roles       []Role
}

// IsAuthenticated reports whether the identity belongs to a signed-in user.
func (i Identity) IsAuthenticated() bool {
	return i.ID != uuid.Nil
}

// Post is a published content item. ImagePath, when non-empty, is a
// relative URL of the form "/files/<name>" and may be shared by multiple
// posts; sharing is the normal case, not an error state.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	PublishDate time.Time `json:"publish_date"`
	PublishTime time.Time `json:"publish_time"`
	ImagePath   string    `json:"image_path,omitempty"`
	CategoryID  int64     `json:"category_id"`
}

// Comment is a user reply to a post. AuthorUserName is a denormalized
// snapshot of the author's display name captured at creation time; it is
// the field ownership checks compare against, not AuthorUserID.
type Comment struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	PublishDate    time.Time `json:"publish_date"`
	PublishTime    time.Time `json:"publish_time"`
	AuthorUserID   uuid.UUID `json:"author_user_id"`
	AuthorUserName string    `json:"author_user_name"`
	PostID         int64     `json:"post_id"`
}

// Category is a labeling group for posts, used as a listing filter.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultPageSize is the page size used when a listing request does not
// specify one.
const DefaultPageSize = 3

// PostPage is one page of a filtered post listing.
type PostPage struct {
	Items      []*Post `json:"items"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

// TotalPages returns ceil(TotalCount / PageSize).
func (p *PostPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// HasPrevious reports whether a page precedes the current one.
func (p *PostPage) HasPrevious() bool {
	return p.Page > 1
}

// HasNext reports whether a page follows the current one.
func (p *PostPage) HasNext() bool {
	return p.Page < p.TotalPages()
}

// Field length limits, matching the persisted column constraints.
const (
	MaxCommentContentLen = 256
	MaxAuthorNameLen     = 100
	MaxCategoryNameLen   = 50
)
