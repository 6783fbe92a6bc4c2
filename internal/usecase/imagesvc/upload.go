package imagesvc

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/pkg/storageproto"
)

const fileKeyPrefix = "uploads/"

// Upload пересылает байты в Storage API без изменений и собирает UploadResult.
// До сети не доходят только пустое тело и (при RequireImageType) не-картинка.
func (s *Images) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResult, error) {
	if len(req.Body) == 0 {
		return models.UploadResult{}, models.ErrEmptyPayload
	}
	if strings.TrimSpace(req.Filename) == "" {
		req.Filename = storageproto.DefaultFilename
	}
	if strings.TrimSpace(req.ContentType) == "" {
		req.ContentType = storageproto.ContentTypeBinary
	}

	if !IsImageType(req.ContentType) {
		if s.RequireImageType {
			return models.UploadResult{}, models.ErrNotImage
		}
		s.Logger.Warn("forwarding non-image upload",
			"filename", req.Filename,
			"content_type", req.ContentType,
		)
	}

	resp, err := s.StorageCli.Upload(ctx, req)
	if err != nil {
		s.observe(OpUpload)
		s.Logger.Error("storage upload failed",
			"filename", req.Filename,
			"size", len(req.Body),
			"error", err,
		)
		return models.UploadResult{}, fmt.Errorf("upload %q: %w", req.Filename, err)
	}

	s.Logger.Info("image uploaded",
		"filename", req.Filename,
		"size", len(req.Body),
		"url", resp.URL,
	)

	return models.UploadResult{
		Success: true,
		URL:     resp.URL,
		FileKey: s.fileKey(req.Filename),
		Key:     resp.Key,
	}, nil
}

// fileKey — локальная подпись вида uploads/<uuid>-<имя>; ключом в хранилище она не является.
func (s *Images) fileKey(filename string) string {
	return fileKeyPrefix + s.NewID() + "-" + SanitizeFilename(filename)
}

// IsImageType сообщает, относится ли Content-Type к image/*.
func IsImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// SanitizeFilename оставляет только базовое имя и заменяет пробельные символы на "-".
func SanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if strings.TrimSpace(name) == "" {
		return storageproto.DefaultFilename
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, name)
}
