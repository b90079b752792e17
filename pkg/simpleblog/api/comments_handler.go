package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// CommentsHandler handles HTTP requests for comments
type CommentsHandler struct {
	service simpleblog.Service
}

// NewCommentsHandler creates a new comments handler
func NewCommentsHandler(service simpleblog.Service) *CommentsHandler {
	return &CommentsHandler{service: service}
}

// Routes returns the routes for comments
func (h *CommentsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListComments)
	r.Post("/", h.CreateComment)
	r.Get("/{id}", h.GetComment)
	r.Put("/{id}", h.UpdateComment)
	r.Delete("/{id}", h.DeleteComment)

	return r
}

// CommentRequest is the request body for creating or updating a comment
type CommentRequest struct {
	PostID      int64     `json:"post_id,omitempty"`
	Content     string    `json:"content"`
	PublishDate time.Time `json:"publish_date"`
	PublishTime time.Time `json:"publish_time"`
}

// ListComments lists comments, optionally filtered by post_id.
func (h *CommentsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(r.Context(), queryInt64(r, "post_id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, comments)
}

// GetComment fetches a single comment
func (h *CommentsHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, simpleblog.ErrCommentNotFound)
		return
	}

	comment, err := h.service.GetComment(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, comment)
}

// CreateComment creates a comment for the authenticated identity
func (h *CommentsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), simpleblog.CreateCommentRequest{
		Identity:    IdentityFromContext(r.Context()),
		PostID:      req.PostID,
		Content:     req.Content,
		PublishDate: defaultNow(req.PublishDate),
		PublishTime: defaultNow(req.PublishTime),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, comment)
}

// UpdateComment updates a comment owned by the authenticated identity
func (h *CommentsHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, simpleblog.ErrCommentNotFound)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), simpleblog.UpdateCommentRequest{
		Identity:    IdentityFromContext(r.Context()),
		ID:          id,
		Content:     req.Content,
		PublishDate: defaultNow(req.PublishDate),
		PublishTime: defaultNow(req.PublishTime),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, comment)
}

// DeleteComment deletes a comment owned by the authenticated identity
func (h *CommentsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, simpleblog.ErrCommentNotFound)
		return
	}

	if err := h.service.DeleteComment(r.Context(), simpleblog.DeleteCommentRequest{
		Identity: IdentityFromContext(r.Context()),
		ID:       id,
	}); err != nil {
		renderError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

func defaultNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
