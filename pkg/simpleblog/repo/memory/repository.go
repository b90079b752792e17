package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// Repository implements simpleblog.Repository using in-memory storage
type Repository struct {
	mu            sync.RWMutex
	posts         map[int64]*simpleblog.Post
	comments      map[int64]*simpleblog.Comment
	categories    map[int64]*simpleblog.Category
	nextPostID    int64
	nextCommentID int64
	nextCategory  int64
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		posts:      make(map[int64]*simpleblog.Post),
		comments:   make(map[int64]*simpleblog.Comment),
		categories: make(map[int64]*simpleblog.Category),
	}
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *simpleblog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == 0 {
		r.nextPostID++
		post.ID = r.nextPostID
	} else if post.ID > r.nextPostID {
		r.nextPostID = post.ID
	}

	// Store a copy to avoid external modifications
	postCopy := *post
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*simpleblog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, simpleblog.ErrPostNotFound
	}

	postCopy := *post
	return &postCopy, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *simpleblog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.ID]; !exists {
		return simpleblog.ErrUpdateConflict
	}

	postCopy := *post
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return simpleblog.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, categoryID int64) ([]*simpleblog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simpleblog.Post, 0, len(r.posts))
	for _, post := range r.posts {
		if categoryID != 0 && post.CategoryID != categoryID {
			continue
		}
		postCopy := *post
		result = append(result, &postCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *Repository) CountPostsByImagePath(ctx context.Context, path string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, post := range r.posts {
		if post.ImagePath == path {
			count++
		}
	}
	return count, nil
}

// Comment operations

func (r *Repository) CreateComment(ctx context.Context, comment *simpleblog.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == 0 {
		r.nextCommentID++
		comment.ID = r.nextCommentID
	} else if comment.ID > r.nextCommentID {
		r.nextCommentID = comment.ID
	}

	commentCopy := *comment
	r.comments[comment.ID] = &commentCopy

	return nil
}

func (r *Repository) GetComment(ctx context.Context, id int64) (*simpleblog.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, exists := r.comments[id]
	if !exists {
		return nil, simpleblog.ErrCommentNotFound
	}

	commentCopy := *comment
	return &commentCopy, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *simpleblog.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[comment.ID]; !exists {
		return simpleblog.ErrUpdateConflict
	}

	commentCopy := *comment
	r.comments[comment.ID] = &commentCopy

	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[id]; !exists {
		return simpleblog.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *Repository) ListComments(ctx context.Context, postID int64) ([]*simpleblog.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simpleblog.Comment, 0, len(r.comments))
	for _, comment := range r.comments {
		if postID != 0 && comment.PostID != postID {
			continue
		}
		commentCopy := *comment
		result = append(result, &commentCopy)
	}

	// Ids are assigned in insertion order.
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *simpleblog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == 0 {
		r.nextCategory++
		category.ID = r.nextCategory
	} else if category.ID > r.nextCategory {
		r.nextCategory = category.ID
	}

	categoryCopy := *category
	r.categories[category.ID] = &categoryCopy

	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*simpleblog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, simpleblog.ErrCategoryNotFound
	}

	categoryCopy := *category
	return &categoryCopy, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*simpleblog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simpleblog.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categoryCopy := *category
		result = append(result, &categoryCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
