package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

//go:embed schema.sql
var schemaFS embed.FS

// Repository implements simpleblog.Repository over a SQLite database.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// applies the schema.
func Open(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

// New wraps an already opened database. The schema must be in place.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

func migrate(db *sql.DB) error {
	sqlBytes, err := fs.ReadFile(schemaFS, "schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(sqlBytes)); err != nil {
		return err
	}
	return nil
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *simpleblog.Post) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO post (title, description, content, publish_date, publish_time, image_path, category_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.Title, post.Description, post.Content,
		post.PublishDate, post.PublishTime, post.ImagePath, post.CategoryID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	post.ID = id
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*simpleblog.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, content, publish_date, publish_time, image_path, category_id
		 FROM post WHERE id = ?`, id)
	var post simpleblog.Post
	err := row.Scan(&post.ID, &post.Title, &post.Description, &post.Content,
		&post.PublishDate, &post.PublishTime, &post.ImagePath, &post.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, simpleblog.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *simpleblog.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE post SET title = ?, description = ?, content = ?, publish_date = ?,
		 publish_time = ?, image_path = ?, category_id = ? WHERE id = ?`,
		post.Title, post.Description, post.Content, post.PublishDate,
		post.PublishTime, post.ImagePath, post.CategoryID, post.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return simpleblog.ErrUpdateConflict
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return simpleblog.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, categoryID int64) ([]*simpleblog.Post, error) {
	query := `SELECT id, title, description, content, publish_date, publish_time, image_path, category_id FROM post`
	args := []interface{}{}
	if categoryID != 0 {
		query += ` WHERE category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*simpleblog.Post
	for rows.Next() {
		var post simpleblog.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Description, &post.Content,
			&post.PublishDate, &post.PublishTime, &post.ImagePath, &post.CategoryID); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

func (r *Repository) CountPostsByImagePath(ctx context.Context, path string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post WHERE image_path = ?`, path).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Comment operations

func (r *Repository) CreateComment(ctx context.Context, comment *simpleblog.Comment) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comment (content, publish_date, publish_time, author_user_id, author_user_name, post_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		comment.Content, comment.PublishDate, comment.PublishTime,
		comment.AuthorUserID.String(), comment.AuthorUserName, comment.PostID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = id
	return nil
}

func (r *Repository) GetComment(ctx context.Context, id int64) (*simpleblog.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, content, publish_date, publish_time, author_user_id, author_user_name, post_id
		 FROM comment WHERE id = ?`, id)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, simpleblog.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *simpleblog.Comment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comment SET content = ?, publish_date = ?, publish_time = ?,
		 author_user_id = ?, author_user_name = ?, post_id = ? WHERE id = ?`,
		comment.Content, comment.PublishDate, comment.PublishTime,
		comment.AuthorUserID.String(), comment.AuthorUserName, comment.PostID, comment.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return simpleblog.ErrUpdateConflict
	}
	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comment WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return simpleblog.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) ListComments(ctx context.Context, postID int64) ([]*simpleblog.Comment, error) {
	query := `SELECT id, content, publish_date, publish_time, author_user_id, author_user_name, post_id FROM comment`
	args := []interface{}{}
	if postID != 0 {
		query += ` WHERE post_id = ?`
		args = append(args, postID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*simpleblog.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*simpleblog.Comment, error) {
	var comment simpleblog.Comment
	var authorID string
	if err := row.Scan(&comment.ID, &comment.Content, &comment.PublishDate, &comment.PublishTime,
		&authorID, &comment.AuthorUserName, &comment.PostID); err != nil {
		return nil, err
	}
	id, err := parseUserID(authorID)
	if err != nil {
		return nil, err
	}
	comment.AuthorUserID = id
	return &comment, nil
}

func parseUserID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *simpleblog.Category) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO category (name) VALUES (?)`, category.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = id
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*simpleblog.Category, error) {
	var category simpleblog.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM category WHERE id = ?`, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, simpleblog.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*simpleblog.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM category ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*simpleblog.Category
	for rows.Next() {
		var category simpleblog.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}
