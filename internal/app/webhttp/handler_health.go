package webhttp

import (
	"net/http"

	"github.com/sir_venger/s3_gallery/pkg/httperrors"
)

// healthStats — payload ответа /healthz и /readyz.
type healthStats struct {
	OK       bool   `json:"ok"`
	Upstream string `json:"upstream,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, healthStats{OK: true})
}

// readyz: 503 во время остановки. С ?deep=1 дополнительно проверяет list-эндпоинт.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		httperrors.WriteJSON(w, http.StatusServiceUnavailable, healthStats{OK: false, Error: "shutting down"})
		return
	}

	if r.URL.Query().Get("deep") == "" {
		httperrors.WriteJSON(w, http.StatusOK, healthStats{OK: true})
		return
	}

	if _, err := s.Images.ListDetailed(r.Context()); err != nil {
		s.Logger.Warn("readiness probe: storage list failed", "error", err)
		httperrors.WriteJSON(w, http.StatusServiceUnavailable, healthStats{OK: false, Upstream: "unavailable", Error: err.Error()})
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, healthStats{OK: true, Upstream: "ok"})
}
