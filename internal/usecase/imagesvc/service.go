package imagesvc

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/pkg/storageclient"
)

type (
	// Observer получает события об ошибках Storage API (метрики).
	Observer interface {
		UpstreamError(op string)
	}

	// Service объединяет прокси загрузки и получение списка для галереи.
	Service interface {
		Upload(ctx context.Context, req models.UploadRequest) (models.UploadResult, error)
		// List никогда не возвращает ошибку: при любом сбое — пустой список.
		List(ctx context.Context) []models.ImageDescriptor
		ListDetailed(ctx context.Context) ([]models.ImageDescriptor, error)
	}
)

// Операции для логов и метрик.
const (
	OpUpload = "upload"
	OpList   = "list"
)

type Deps struct {
	StorageCli storageclient.Client
	Logger     *slog.Logger
	Observer   Observer
	// RequireImageType — отклонять не-image/* вместо предупреждения в логе.
	RequireImageType bool
	// NewID генерирует уникальный префикс fileKey; nil — uuid.NewString.
	NewID func() string
}

type Images struct {
	Deps
}

// New конструирует сервис с заданными зависимостями.
func New(deps Deps) *Images {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &Images{Deps: deps}
}

var _ Service = (*Images)(nil)

func (s *Images) observe(op string) {
	if s.Observer != nil {
		s.Observer.UpstreamError(op)
	}
}
