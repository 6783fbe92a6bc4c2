package webhttp

import (
	"bytes"
	"net/http"

	"github.com/sir_venger/s3_gallery/internal/view"
)

// getPage рендерит страницу с формой и уже загруженной галереей.
func (s *Server) getPage(w http.ResponseWriter, r *http.Request) {
	page := view.Page(view.PageData{
		MaxUploadBytes: s.Cfg.Upload.MaxBytes,
		Gallery:        view.NewGallery(s.Images.List(r.Context())),
	})

	// рендерим в буфер, чтобы при ошибке успеть ответить 500
	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		s.Logger.Error("render page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
