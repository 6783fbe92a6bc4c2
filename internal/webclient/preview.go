package webclient

import (
	"sync"

	"github.com/google/uuid"
)

const previewScheme = "blob:"

// PreviewStore выдаёт локальные ссылки на байты выбранного файла, как URL.createObjectURL.
// Каждую ссылку нужно отозвать, иначе байты остаются в памяти.
type PreviewStore struct {
	mu      sync.Mutex
	handles map[string][]byte
}

func NewPreviewStore() *PreviewStore {
	return &PreviewStore{handles: make(map[string][]byte)}
}

// Create регистрирует данные и возвращает ссылку вида blob:<uuid>.
func (p *PreviewStore) Create(data []byte) string {
	handle := previewScheme + uuid.NewString()

	p.mu.Lock()
	p.handles[handle] = data
	p.mu.Unlock()

	return handle
}

// Get возвращает данные по живой ссылке.
func (p *PreviewStore) Get(handle string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.handles[handle]
	return data, ok
}

// Revoke освобождает ссылку; повторный вызов безопасен.
func (p *PreviewStore) Revoke(handle string) {
	if handle == "" {
		return
	}
	p.mu.Lock()
	delete(p.handles, handle)
	p.mu.Unlock()
}

// Len — число неотозванных ссылок.
func (p *PreviewStore) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles)
}
