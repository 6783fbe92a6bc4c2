package webclient

import (
	"context"
	"sync"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/internal/view"
)

// Lister — источник списка изображений (обычно *Client).
type Lister interface {
	ListImages(ctx context.Context) ([]models.ImageDescriptor, error)
}

// Gallery перечитывает весь список при монтировании и при каждой смене ключа обновления.
type Gallery struct {
	mu      sync.Mutex
	lister  Lister
	model   view.Gallery
	key     int
	mounted bool
	gen     uint64
}

func NewGallery(lister Lister) *Gallery {
	return &Gallery{lister: lister, model: view.LoadingGallery()}
}

// Mount выполняет первую загрузку.
func (g *Gallery) Mount(ctx context.Context) view.Gallery {
	g.mu.Lock()
	key := g.key
	g.mu.Unlock()
	return g.fetch(ctx, key)
}

// Sync перечитывает список, если key отличается от последнего увиденного.
func (g *Gallery) Sync(ctx context.Context, key int) view.Gallery {
	g.mu.Lock()
	if g.mounted && key == g.key {
		m := g.model
		g.mu.Unlock()
		return m
	}
	g.mu.Unlock()
	return g.fetch(ctx, key)
}

// Follow возвращает подписчика для UploadForm.OnRefresh.
func (g *Gallery) Follow(ctx context.Context) func(key int) {
	return func(key int) { g.Sync(ctx, key) }
}

// Model — текущее состояние галереи.
func (g *Gallery) Model() view.Gallery {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.model
}

func (g *Gallery) fetch(ctx context.Context, key int) view.Gallery {
	g.mu.Lock()
	g.gen++
	gen := g.gen
	g.key = key
	g.mounted = true
	g.model = view.LoadingGallery().WithRefresh(key)
	g.mu.Unlock()

	images, err := g.lister.ListImages(ctx)

	next := view.FailedGallery()
	if err == nil {
		next = view.NewGallery(images)
	}
	next = next.WithRefresh(key)

	g.mu.Lock()
	defer g.mu.Unlock()
	// результат устаревшего запроса не затирает более свежий
	if gen == g.gen {
		g.model = next
	}
	return g.model
}
