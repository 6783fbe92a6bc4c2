// Package view рендерит страницу загрузки и галерею: модель галереи,
// templ-компоненты и встроенные JS/CSS.
package view

import (
	"fmt"

	"github.com/sir_venger/s3_gallery/internal/models"
)

// Status — состояние галереи.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusEmpty
	StatusLoaded
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Тексты галереи.
const (
	LoadingMessage = "Loading images..."
	ErrorHeader    = "Error loading images"
	ErrorMessage   = "Failed to load images"
	EmptyMessage   = "No images found"
	EmptyHint      = "Upload your first image to see it here!"
)

const dateLayout = "2006-01-02"

// Gallery — модель галереи. Каждое обновление заменяет её целиком.
type Gallery struct {
	Status     Status
	Images     []models.ImageDescriptor
	Err        string
	RefreshKey int
}

// NewGallery строит модель по результату list-запроса.
func NewGallery(images []models.ImageDescriptor) Gallery {
	if len(images) == 0 {
		return Gallery{Status: StatusEmpty, Images: []models.ImageDescriptor{}}
	}
	return Gallery{Status: StatusLoaded, Images: images}
}

func LoadingGallery() Gallery {
	return Gallery{Status: StatusLoading}
}

// FailedGallery — статичное сообщение об ошибке; причина уходит только в лог.
func FailedGallery() Gallery {
	return Gallery{Status: StatusError, Err: ErrorMessage}
}

// WithRefresh проставляет ключ обновления, которым отрендерена галерея.
func (g Gallery) WithRefresh(key int) Gallery {
	g.RefreshKey = key
	return g
}

// Header — подзаголовок галереи.
func (g Gallery) Header() string {
	switch g.Status {
	case StatusLoading:
		return LoadingMessage
	case StatusError:
		return ErrorHeader
	case StatusEmpty:
		return EmptyMessage
	}

	if len(g.Images) == 1 {
		return "Showing 1 image"
	}
	return fmt.Sprintf("Showing %d images", len(g.Images))
}

// Tile — то, что нужно для отрисовки одной плитки.
type Tile struct {
	ID        string
	Name      string
	Thumbnail string
	FullSize  string
	Modified  string
}

// Tiles возвращает плитки в порядке, в котором их отдал Storage API.
func (g Gallery) Tiles() []Tile {
	if g.Status != StatusLoaded {
		return nil
	}

	tiles := make([]Tile, 0, len(g.Images))
	for _, img := range g.Images {
		t := Tile{
			ID:        img.ID(),
			Name:      img.DisplayName(),
			Thumbnail: img.Thumbnail(),
			FullSize:  img.FullSize(),
		}
		if img.LastModified != nil {
			t.Modified = img.LastModified.Format(dateLayout)
		}
		tiles = append(tiles, t)
	}

	return tiles
}
