package imagesvc

import (
	"context"
	"fmt"

	"github.com/sir_venger/s3_gallery/internal/models"
)

// ListDetailed возвращает список изображений вместе с причиной сбоя.
func (s *Images) ListDetailed(ctx context.Context) ([]models.ImageDescriptor, error) {
	images, err := s.StorageCli.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	return images, nil
}

// List деградирует до пустого списка: ошибка только логируется и считается в метриках.
func (s *Images) List(ctx context.Context) []models.ImageDescriptor {
	images, err := s.ListDetailed(ctx)
	if err != nil {
		s.observe(OpList)
		s.Logger.Error("storage list failed", "error", err)
		return []models.ImageDescriptor{}
	}

	return images
}
