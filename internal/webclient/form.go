package webclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sir_venger/s3_gallery/internal/models"
)

// State — состояние формы загрузки.
type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateUploading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "selected"
	case StateUploading:
		return "uploading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Тексты сообщений формы.
const (
	MsgNoFile     = "No file selected"
	MsgUploaded   = "Image uploaded successfully!"
	MsgUnexpected = "An unexpected error occurred"
)

var (
	ErrNoFileSelected   = errors.New("no file selected")
	ErrUploadInProgress = errors.New("upload already in progress")
	// ErrUploadFailed — прокси ответил success:false.
	ErrUploadFailed = errors.New("upload failed")
)

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

type Message struct {
	Kind MessageKind
	Text string
}

// Uploader — сторона, которая реально отправляет файл (обычно *Client).
type Uploader interface {
	Upload(ctx context.Context, f File) (models.UploadResult, error)
}

// Snapshot — состояние формы на момент вызова.
type Snapshot struct {
	State      State
	FileName   string
	Preview    string
	Message    *Message
	RefreshKey int
}

// Uploading — флаг, которым блокируется кнопка отправки.
func (s Snapshot) Uploading() bool {
	return s.State == StateUploading
}

// UploadForm — автомат Idle → FileSelected → Uploading → Success|Error.
// Превью существует ровно пока выбран файл; одновременно идёт не больше одной загрузки.
type UploadForm struct {
	mu        sync.Mutex
	uploader  Uploader
	previews  *PreviewStore
	state     State
	file      *File
	preview   string
	message   *Message
	refresh   int
	onRefresh func(key int)
}

func NewUploadForm(uploader Uploader, previews *PreviewStore) *UploadForm {
	if previews == nil {
		previews = NewPreviewStore()
	}
	return &UploadForm{uploader: uploader, previews: previews}
}

// OnRefresh задаёт подписчика на сигнал обновления галереи.
func (f *UploadForm) OnRefresh(fn func(key int)) {
	f.mu.Lock()
	f.onRefresh = fn
	f.mu.Unlock()
}

// Select выбирает файл (nil — снять выбор). Старое превью отзывается.
func (f *UploadForm) Select(file *File) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateUploading {
		return ErrUploadInProgress
	}

	f.releaseLocked()
	f.message = nil
	if file == nil {
		f.state = StateIdle
		return nil
	}

	selected := *file
	f.file = &selected
	f.preview = f.previews.Create(selected.Data)
	f.state = StateFileSelected

	return nil
}

// Submit отправляет выбранный файл. Без файла, с не-картинкой или во время
// другой загрузки сеть не трогается.
func (f *UploadForm) Submit(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	if f.state == StateUploading {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, ErrUploadInProgress
	}

	f.message = nil
	if f.file == nil {
		f.message = &Message{Kind: MessageError, Text: MsgNoFile}
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, ErrNoFileSelected
	}
	if !f.file.IsImage() {
		f.message = &Message{Kind: MessageError, Text: models.NotImageMessage}
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, models.ErrNotImage
	}

	file := *f.file
	f.state = StateUploading
	f.mu.Unlock()

	res, err := f.uploader.Upload(ctx, file)

	f.mu.Lock()
	var notify func(int)
	switch {
	case err != nil:
		f.state = StateError
		f.message = &Message{Kind: MessageError, Text: MsgUnexpected}
		err = fmt.Errorf("upload %q: %w", file.Name, err)
	case !res.Success:
		text := res.Error
		if text == "" {
			text = models.GenericUploadFailure
		}
		f.state = StateError
		f.message = &Message{Kind: MessageError, Text: text}
		err = fmt.Errorf("%w: %s", ErrUploadFailed, text)
	default:
		f.releaseLocked()
		f.state = StateSuccess
		f.message = &Message{Kind: MessageSuccess, Text: successText(res.URL)}
		f.refresh++
		notify = f.onRefresh
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()

	if notify != nil {
		notify(snap.RefreshKey)
	}

	return snap, err
}

// Snapshot возвращает текущее состояние.
func (f *UploadForm) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Close отзывает превью; форму после этого не используют.
func (f *UploadForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releaseLocked()
}

func (f *UploadForm) releaseLocked() {
	f.previews.Revoke(f.preview)
	f.preview = ""
	f.file = nil
}

func (f *UploadForm) snapshotLocked() Snapshot {
	s := Snapshot{
		State:      f.state,
		Preview:    f.preview,
		RefreshKey: f.refresh,
	}
	if f.file != nil {
		s.FileName = f.file.Name
	}
	if f.message != nil {
		m := *f.message
		s.Message = &m
	}
	return s
}

func successText(url string) string {
	if url == "" {
		return MsgUploaded
	}
	return MsgUploaded + " URL: " + url
}
