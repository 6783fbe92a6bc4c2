package models

import (
	"path"
	"strings"
	"time"
)

// ImageDescriptor описывает одно изображение, которое вернул list-эндпоинт стораджа.
// Пустая строка в опциональных полях означает «поле отсутствует».
type ImageDescriptor struct {
	Key          string     `json:"key,omitempty"`
	URL          string     `json:"url,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
	Name         string     `json:"name,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
}

// Thumbnail возвращает thumbnailUrl, а если его нет — url.
func (d ImageDescriptor) Thumbnail() string {
	if d.ThumbnailURL != "" {
		return d.ThumbnailURL
	}
	return d.URL
}

// FullSize возвращает imageUrl для полноразмерного просмотра, иначе url.
func (d ImageDescriptor) FullSize() string {
	if d.ImageURL != "" {
		return d.ImageURL
	}
	return d.URL
}

// DisplayName подбирает подпись для плитки галереи.
func (d ImageDescriptor) DisplayName() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	if key := strings.Trim(strings.TrimSpace(d.Key), "/"); key != "" {
		return path.Base(key)
	}
	return "Image"
}

// ID — стабильный идентификатор плитки: key, затем name, затем url.
func (d ImageDescriptor) ID() string {
	switch {
	case d.Key != "":
		return d.Key
	case d.Name != "":
		return d.Name
	default:
		return d.URL
	}
}
