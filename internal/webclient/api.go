package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/pkg/storageproto"
)

// ErrUnexpectedResponse — ответ прокси не разбирается как JSON.
var ErrUnexpectedResponse = errors.New("unexpected response from server")

type Client struct {
	base string
	c    *http.Client
}

// New создаёт клиент к серверу галереи; hc nil — http.DefaultClient.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), c: hc}
}

// Upload отправляет файл на POST /api/upload сырыми байтами.
// Success определяется статусом ответа; ошибкой считается только сбой транспорта или разбора.
func (c *Client) Upload(ctx context.Context, f File) (models.UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/upload", bytes.NewReader(f.Data))
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set(storageproto.HeaderContentType, f.ContentType)
	req.Header.Set(storageproto.HeaderFilename, f.Name)

	resp, err := c.c.Do(req)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("POST /api/upload: %w", err)
	}
	defer resp.Body.Close()

	var out models.UploadResult
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: status %d: %v", ErrUnexpectedResponse, resp.StatusCode, err)
	}
	out.Success = resp.StatusCode >= 200 && resp.StatusCode < 300

	return out, nil
}

// ListImages запрашивает GET /api/images.
func (c *Client) ListImages(ctx context.Context) ([]models.ImageDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/images", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET /api/images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /api/images: %s", resp.Status)
	}

	var images []models.ImageDescriptor
	if err = json.NewDecoder(resp.Body).Decode(&images); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}

	return images, nil
}
