package webhttp

import (
	"net/http"
	"strconv"

	"github.com/sir_venger/s3_gallery/internal/view"
	"github.com/sir_venger/s3_gallery/pkg/httperrors"
)

// getImages — список для галереи. Всегда 200: сбой Storage API даёт [].
func (s *Server) getImages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	httperrors.WriteJSON(w, http.StatusOK, s.Images.List(r.Context()))
}

// getGallery отдаёт HTML-фрагмент галереи; refresh — номер обновления со стороны формы.
func (s *Server) getGallery(w http.ResponseWriter, r *http.Request) {
	refresh, err := strconv.Atoi(r.URL.Query().Get("refresh"))
	if err != nil || refresh < 0 {
		refresh = 0
	}

	g := view.NewGallery(s.Images.List(r.Context())).WithRefresh(refresh)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err = view.GalleryView(g).Render(r.Context(), w); err != nil {
		s.Logger.Error("render gallery", "error", err)
	}
}
