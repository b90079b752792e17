package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simpleblog.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simpleblog.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simpleblog.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "category") {
				return fmt.Errorf("category already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *simpleblog.Post) error {
	query := `
		INSERT INTO post (
			title, description, content, publish_date, publish_time,
			image_path, category_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		post.Title, post.Description, post.Content,
		post.PublishDate, post.PublishTime,
		post.ImagePath, post.CategoryID).Scan(&post.ID)

	if err != nil {
		return r.handlePostgresError("create post", err)
	}

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*simpleblog.Post, error) {
	query := `
		SELECT id, title, description, content, publish_date, publish_time,
		       image_path, category_id
		FROM post WHERE id = $1`

	var post simpleblog.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Description, &post.Content,
		&post.PublishDate, &post.PublishTime,
		&post.ImagePath, &post.CategoryID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpleblog.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}

	return &post, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *simpleblog.Post) error {
	query := `
		UPDATE post SET
			title = $2, description = $3, content = $4, publish_date = $5,
			publish_time = $6, image_path = $7, category_id = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Description, post.Content,
		post.PublishDate, post.PublishTime,
		post.ImagePath, post.CategoryID)

	if err != nil {
		return r.handlePostgresError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return simpleblog.ErrUpdateConflict
	}

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM post WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return simpleblog.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, categoryID int64) ([]*simpleblog.Post, error) {
	query := `
		SELECT id, title, description, content, publish_date, publish_time,
		       image_path, category_id
		FROM post`
	args := []interface{}{}
	if categoryID != 0 {
		query += ` WHERE category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list posts", err)
	}
	defer rows.Close()

	var posts []*simpleblog.Post
	for rows.Next() {
		var post simpleblog.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Description, &post.Content,
			&post.PublishDate, &post.PublishTime,
			&post.ImagePath, &post.CategoryID); err != nil {
			return nil, r.handlePostgresError("list posts", err)
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list posts", err)
	}

	return posts, nil
}

func (r *Repository) CountPostsByImagePath(ctx context.Context, path string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM post WHERE image_path = $1`, path).Scan(&count)
	if err != nil {
		return 0, r.handlePostgresError("count posts by image path", err)
	}
	return count, nil
}

// Comment operations

func (r *Repository) CreateComment(ctx context.Context, comment *simpleblog.Comment) error {
	query := `
		INSERT INTO comment (
			content, publish_date, publish_time,
			author_user_id, author_user_name, post_id
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		comment.Content, comment.PublishDate, comment.PublishTime,
		comment.AuthorUserID, comment.AuthorUserName, comment.PostID).Scan(&comment.ID)

	if err != nil {
		return r.handlePostgresError("create comment", err)
	}

	return nil
}

func (r *Repository) GetComment(ctx context.Context, id int64) (*simpleblog.Comment, error) {
	query := `
		SELECT id, content, publish_date, publish_time,
		       author_user_id, author_user_name, post_id
		FROM comment WHERE id = $1`

	var comment simpleblog.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.Content, &comment.PublishDate, &comment.PublishTime,
		&comment.AuthorUserID, &comment.AuthorUserName, &comment.PostID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpleblog.ErrCommentNotFound
		}
		return nil, r.handlePostgresError("get comment", err)
	}

	return &comment, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *simpleblog.Comment) error {
	query := `
		UPDATE comment SET
			content = $2, publish_date = $3, publish_time = $4,
			author_user_id = $5, author_user_name = $6, post_id = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		comment.ID, comment.Content, comment.PublishDate, comment.PublishTime,
		comment.AuthorUserID, comment.AuthorUserName, comment.PostID)

	if err != nil {
		return r.handlePostgresError("update comment", err)
	}
	if tag.RowsAffected() == 0 {
		return simpleblog.ErrUpdateConflict
	}

	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comment WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return simpleblog.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) ListComments(ctx context.Context, postID int64) ([]*simpleblog.Comment, error) {
	query := `
		SELECT id, content, publish_date, publish_time,
		       author_user_id, author_user_name, post_id
		FROM comment`
	args := []interface{}{}
	if postID != 0 {
		query += ` WHERE post_id = $1`
		args = append(args, postID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list comments", err)
	}
	defer rows.Close()

	var comments []*simpleblog.Comment
	for rows.Next() {
		var comment simpleblog.Comment
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.PublishDate, &comment.PublishTime,
			&comment.AuthorUserID, &comment.AuthorUserName, &comment.PostID); err != nil {
			return nil, r.handlePostgresError("list comments", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list comments", err)
	}

	return comments, nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *simpleblog.Category) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO category (name) VALUES ($1) RETURNING id`,
		category.Name).Scan(&category.ID)
	if err != nil {
		return r.handlePostgresError("create category", err)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*simpleblog.Category, error) {
	var category simpleblog.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM category WHERE id = $1`, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpleblog.ErrCategoryNotFound
		}
		return nil, r.handlePostgresError("get category", err)
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*simpleblog.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM category ORDER BY id`)
	if err != nil {
		return nil, r.handlePostgresError("list categories", err)
	}
	defer rows.Close()

	var categories []*simpleblog.Category
	for rows.Next() {
		var category simpleblog.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, r.handlePostgresError("list categories", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list categories", err)
	}

	return categories, nil
}
