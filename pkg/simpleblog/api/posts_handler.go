package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

const maxUploadBytes = 32 << 20

// uploadFieldName is the multipart form field carrying the post image.
const uploadFieldName = "upload_file"

// PostsHandler handles HTTP requests for posts
type PostsHandler struct {
	service simpleblog.Service
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(service simpleblog.Service) *PostsHandler {
	return &PostsHandler{service: service}
}

// Routes returns the routes for posts
func (h *PostsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPosts)
	r.Post("/", h.CreatePost)
	r.Get("/{id}", h.GetPost)
	r.Put("/{id}", h.UpdatePost)
	r.Delete("/{id}", h.DeletePost)

	return r
}

// PostPageResponse is the response body for a post listing page.
type PostPageResponse struct {
	Items      []*simpleblog.Post `json:"items"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ListPosts lists posts, filtered by category_id and paginated by page /
// page_size.
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	req := simpleblog.ListPostsRequest{
		CategoryID: queryInt64(r, "category_id"),
		Page:       int(queryInt64(r, "page")),
		PageSize:   int(queryInt64(r, "page_size")),
	}

	page, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, PostPageResponse{
		Items:      page.Items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	})
}

// GetPost fetches a single post
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, simpleblog.ErrPostNotFound)
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, post)
}

// CreatePost creates a post from a multipart form carrying the fields and
// the image upload.
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("failed to parse multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := simpleblog.CreatePostRequest{
		Identity:    IdentityFromContext(r.Context()),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Content:     r.FormValue("content"),
		PublishDate: formDate(r, "publish_date"),
		PublishTime: formTime(r, "publish_time"),
		CategoryID:  formInt64(r, "category_id"),
		Upload:      formUpload(r),
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, post)
}

// UpdatePost updates a post from a multipart form. The image upload is
// optional on update.
func (h *PostsHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, simpleblog.ErrPostNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("failed to parse multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := simpleblog.UpdatePostRequest{
		Identity:    IdentityFromContext(r.Context()),
		ID:          id,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Content:     r.FormValue("content"),
		PublishDate: formDate(r, "publish_date"),
		PublishTime: formTime(r, "publish_time"),
		CategoryID:  formInt64(r, "category_id"),
		Upload:      formUpload(r),
	}

	post, err := h.service.UpdatePost(r.Context(), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, post)
}

// DeletePost deletes a post
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, simpleblog.ErrPostNotFound)
		return
	}

	if err := h.service.DeletePost(r.Context(), simpleblog.DeletePostRequest{
		Identity: IdentityFromContext(r.Context()),
		ID:       id,
	}); err != nil {
		renderError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// Form helpers

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}

func formInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.FormValue(key), 10, 64)
	return v
}

func formDate(r *http.Request, key string) time.Time {
	if t, err := time.Parse("2006-01-02", r.FormValue(key)); err == nil {
		return t
	}
	return time.Now().UTC()
}

func formTime(r *http.Request, key string) time.Time {
	if t, err := time.Parse("15:04", r.FormValue(key)); err == nil {
		return t
	}
	return time.Now().UTC()
}

func formUpload(r *http.Request) *simpleblog.Upload {
	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		return nil
	}
	return &simpleblog.Upload{Filename: sanitizeUploadFilename(header.Filename), Reader: file}
}
