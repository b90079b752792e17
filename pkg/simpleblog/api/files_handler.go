package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// FilesHandler serves stored post images under their public /files/<name>
// paths.
type FilesHandler struct {
	service simpleblog.Service
}

// NewFilesHandler creates a new files handler
func NewFilesHandler(service simpleblog.Service) *FilesHandler {
	return &FilesHandler{service: service}
}

// Routes returns the routes for files
func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{name}", h.ServeFile)
	return r
}

// ServeFile streams the stored image bytes, sniffing the content type from
// the leading bytes.
func (h *FilesHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, err := h.service.OpenAttachment(r.Context(), simpleblog.ResolveAttachmentPath(name))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	buffer := make([]byte, 512)
	n, err := io.ReadFull(rc, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		slog.Error("failed to read attachment", "name", name, "error", err)
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(buffer[:n]))
	if _, err := w.Write(buffer[:n]); err != nil {
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("failed to stream attachment", "name", name, "error", err)
	}
}
