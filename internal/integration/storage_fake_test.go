package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sir_venger/s3_gallery/internal/app/webhttp"
	"github.com/sir_venger/s3_gallery/internal/config"
	"github.com/sir_venger/s3_gallery/internal/logging"
)

// storedObject — то, что получил фейковый Storage API.
type storedObject struct {
	Name        string
	ContentType string
	Body        []byte
	At          time.Time
}

// fakeStorage — in-memory Storage API: POST /upload и GET /images.
type fakeStorage struct {
	mu      sync.Mutex
	base    string
	objects []storedObject
	uploads int
	lists   int
	listCT  string

	// принудительные ответы; 0 — обычное поведение
	uploadStatus int
	uploadBody   string
	listStatus   int
	listBody     string
}

func newFakeStorage(t *testing.T) (*fakeStorage, *httptest.Server) {
	t.Helper()
	fs := &fakeStorage{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", fs.upload)
	mux.HandleFunc("GET /images", fs.list)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	fs.base = srv.URL
	return fs, srv
}

func (f *fakeStorage) upload(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++

	if f.uploadStatus != 0 {
		w.WriteHeader(f.uploadStatus)
		_, _ = io.WriteString(w, f.uploadBody)
		return
	}

	obj := storedObject{
		Name:        r.Header.Get("X-Filename"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
		At:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.objects = append(f.objects, obj)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"url": f.base + "/objects/" + obj.Name,
		"key": obj.Name,
	})
}

func (f *fakeStorage) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	f.listCT = r.Header.Get("Content-Type")

	if f.listStatus != 0 || f.listBody != "" {
		if f.listStatus != 0 {
			w.WriteHeader(f.listStatus)
		}
		_, _ = io.WriteString(w, f.listBody)
		return
	}

	type item struct {
		Key          string    `json:"key"`
		URL          string    `json:"url"`
		LastModified time.Time `json:"lastModified"`
	}
	out := make([]item, 0, len(f.objects))
	for _, o := range f.objects {
		out = append(out, item{Key: "uploads/" + o.Name, URL: f.base + "/objects/" + o.Name, LastModified: o.At})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (f *fakeStorage) snapshot() (objects []storedObject, uploads, lists int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storedObject(nil), f.objects...), f.uploads, f.lists
}

// newGallery поднимает сервер галереи поверх фейкового Storage API.
func newGallery(t *testing.T, storage *httptest.Server, tweak func(*config.Config)) (*webhttp.Server, *httptest.Server) {
	t.Helper()

	cfg := config.Default()
	cfg.ListenAddr = ":0"
	cfg.UploadAPIURL = storage.URL + "/upload"
	cfg.ListAPIURL = storage.URL + "/images"
	if tweak != nil {
		tweak(cfg)
	}

	handler, srv, err := webhttp.NewServer(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("new gallery server: %v", err)
	}
	gallery := httptest.NewServer(handler)
	t.Cleanup(gallery.Close)

	return srv, gallery
}
