package storageclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/pkg/storageproto"
)

// maxErrorBody ограничивает, сколько текста ошибки читаем из ответа стораджа.
const maxErrorBody = 64 << 10

// UploadResponse — тело успешного ответа upload-эндпоинта.
type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// StatusError возвращается, когда сторадж ответил не 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storage responded %d: %s", e.Code, e.Body)
}

// Message возвращает текст для пользователя: тело ответа, а если оно пустое — статус.
func (e *StatusError) Message() string {
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.Code)
}

// ErrMalformedResponse — сторадж вернул 2xx, но тело не разбирается как JSON.
var ErrMalformedResponse = errors.New("malformed storage response")

type Client interface {
	// Upload отправляет байты в сторадж без изменений.
	Upload(ctx context.Context, req models.UploadRequest) (UploadResponse, error)
	// List запрашивает список изображений.
	List(ctx context.Context) ([]models.ImageDescriptor, error)
}

// Config задаёт адреса Storage API.
type Config struct {
	UploadURL string
	ListURL   string
	// Timeout 0 — без таймаута, запрос живёт столько же, сколько входящий.
	Timeout time.Duration
	// OnBytes вызывается по мере отправки тела; nil — не считаем.
	OnBytes func(n int64)
}

type httpClient struct {
	c       *http.Client
	upload  string
	list    string
	onBytes func(n int64)
}

// New создаёт HTTP-клиент Storage API.
func New(cfg Config) Client {
	return &httpClient{
		c:       &http.Client{Timeout: cfg.Timeout},
		upload:  cfg.UploadURL,
		list:    cfg.ListURL,
		onBytes: cfg.OnBytes,
	}
}

// Upload пересылает тело как есть: тот же метод, Content-Type и X-Filename.
func (h *httpClient) Upload(ctx context.Context, req models.UploadRequest) (UploadResponse, error) {
	body := newCountingReader(bytes.NewReader(req.Body), h.onBytes)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.upload, body)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.ContentLength = int64(len(req.Body))
	httpReq.Header.Set(storageproto.HeaderContentType, req.ContentType)
	httpReq.Header.Set(storageproto.HeaderFilename, req.Filename)

	resp, err := h.c.Do(httpReq)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("storage POST failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return UploadResponse{}, readStatusError(resp)
	}

	var out UploadResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return UploadResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return out, nil
}

// List выполняет GET на list-эндпоинт и разбирает массив дескрипторов.
func (h *httpClient) List(ctx context.Context) ([]models.ImageDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.list, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	req.Header.Set(storageproto.HeaderContentType, storageproto.ContentTypeJSON)

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readStatusError(resp)
	}

	var images []models.ImageDescriptor
	if err = json.NewDecoder(resp.Body).Decode(&images); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if images == nil {
		images = []models.ImageDescriptor{}
	}

	return images, nil
}

func readStatusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Code: resp.StatusCode,
		Body: strings.TrimSpace(string(b)),
	}
}
