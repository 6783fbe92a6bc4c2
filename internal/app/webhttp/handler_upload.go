package webhttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/pkg/httperrors"
	"github.com/sir_venger/s3_gallery/pkg/storageproto"
)

// postUpload читает сырое тело (не больше upload.max_bytes) и отдаёт его прокси.
func (s *Server) postUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.Upload.MaxBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperrors.Write(w, models.ErrPayloadTooLarge)
			return
		}
		s.Logger.Warn("read upload body", "error", err)
		httperrors.Write(w, fmt.Errorf("read upload body: %w", err))
		return
	}

	res, err := s.Images.Upload(r.Context(), models.UploadRequest{
		Filename:    extractFileName(r),
		ContentType: r.Header.Get(storageproto.HeaderContentType),
		Body:        body,
	})
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, res)
}

// extractFileName пытается вытащить имя файла из заголовков или query-параметра.
func extractFileName(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(storageproto.HeaderFilename)); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("X-File-Name")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("filename")); v != "" {
		return v
	}
	return ""
}
