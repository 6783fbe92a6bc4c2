package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	var gotType, gotName string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		gotType = r.Header.Get("Content-Type")
		gotName = r.Header.Get("X-Filename")
		gotBody, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "url": "https://cdn/x.jpg", "fileKey": "uploads/1-x.jpg"})
	}))
	t.Cleanup(srv.Close)

	res, err := New(srv.URL+"/", nil).Upload(context.Background(), *jpeg("x.jpg"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "https://cdn/x.jpg", res.URL)
	assert.Equal(t, "uploads/1-x.jpg", res.FileKey)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, "x.jpg", gotName)
	assert.Equal(t, jpegHeader, gotBody)
}

func TestClient_UploadFailureBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"success":false,"error":"quota exceeded"}`)
	}))
	t.Cleanup(srv.Close)

	res, err := New(srv.URL, nil).Upload(context.Background(), *jpeg("x.jpg"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "quota exceeded", res.Error)
}

func TestClient_UploadNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, nil).Upload(context.Background(), *jpeg("x.jpg"))
	require.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestClient_ListImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/images", r.URL.Path)
		_, _ = io.WriteString(w, `[{"key":"uploads/a.jpg","url":"https://cdn/a.jpg"}]`)
	}))
	t.Cleanup(srv.Close)

	images, err := New(srv.URL, nil).ListImages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.ImageDescriptor{{Key: "uploads/a.jpg", URL: "https://cdn/a.jpg"}}, images)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo one.jpg")
	require.NoError(t, os.WriteFile(path, jpegHeader, 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "photo one.jpg", f.Name)
	assert.True(t, f.IsImage())

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
}

type stubLister struct {
	calls  atomic.Int32
	images []models.ImageDescriptor
	err    error
}

func (s *stubLister) ListImages(context.Context) ([]models.ImageDescriptor, error) {
	s.calls.Add(1)
	return s.images, s.err
}

func TestGallery_MountAndSync(t *testing.T) {
	lister := &stubLister{images: []models.ImageDescriptor{}}
	g := NewGallery(lister)
	assert.Equal(t, view.StatusLoading, g.Model().Status)

	m := g.Mount(context.Background())
	assert.Equal(t, view.StatusEmpty, m.Status)
	assert.Equal(t, "No images found", m.Header())
	assert.EqualValues(t, 1, lister.calls.Load())

	g.Sync(context.Background(), 0)
	assert.EqualValues(t, 1, lister.calls.Load(), "same key does not refetch")

	lister.images = []models.ImageDescriptor{{Key: "a"}, {Key: "b"}}
	m = g.Sync(context.Background(), 1)
	assert.Equal(t, view.StatusLoaded, m.Status)
	assert.Len(t, m.Tiles(), 2)
	assert.Equal(t, 1, m.RefreshKey)
	assert.EqualValues(t, 2, lister.calls.Load())

	lister.err = errors.New("offline")
	m = g.Sync(context.Background(), 2)
	assert.Equal(t, view.StatusError, m.Status)
	assert.Equal(t, view.ErrorMessage, m.Err)
}

func TestGallery_FollowsUploadForm(t *testing.T) {
	lister := &stubLister{}
	g := NewGallery(lister)
	g.Mount(context.Background())

	form := NewUploadForm(&stubUploader{result: models.UploadResult{Success: true}}, nil)
	form.OnRefresh(g.Follow(context.Background()))

	lister.images = []models.ImageDescriptor{{Key: "new.jpg"}}
	require.NoError(t, form.Select(jpeg("new.jpg")))
	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, lister.calls.Load())
	assert.Equal(t, view.StatusLoaded, g.Model().Status)
	assert.Equal(t, 1, g.Model().RefreshKey)
}
