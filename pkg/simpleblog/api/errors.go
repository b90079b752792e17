package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Fields []simpleblog.FieldError `json:"fields,omitempty"`
}

// renderError maps service errors onto HTTP statuses:
// validation and missing-upload failures bounce back to the caller,
// not-found resolves to 404, denied role/ownership checks to 403, fatal
// write conflicts to 409, and storage failures surface as unrecovered 500s.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var ve simpleblog.ValidationError
	var se *simpleblog.StorageError

	switch {
	case errors.As(err, &ve):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "validation failed", Fields: ve})
	case errors.Is(err, simpleblog.ErrMissingUpload):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "an image upload is required"})
	case errors.Is(err, simpleblog.ErrUnsupportedMediaType):
		render.Status(r, http.StatusUnsupportedMediaType)
		render.JSON(w, r, ErrorResponse{Error: "unsupported image extension"})
	case errors.Is(err, simpleblog.ErrPostNotFound),
		errors.Is(err, simpleblog.ErrCommentNotFound),
		errors.Is(err, simpleblog.ErrCategoryNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "not found"})
	case errors.Is(err, simpleblog.ErrAccessDenied):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "access denied"})
	case errors.Is(err, simpleblog.ErrUpdateConflict):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Error: "concurrent update conflict"})
	case errors.As(err, &se):
		slog.Error("storage failure", "path", se.Path, "op", se.Op, "error", se.Err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "storage failure"})
	default:
		slog.Error("request failed", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "internal error"})
	}
}
