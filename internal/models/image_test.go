package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageDescriptor_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		in        models.ImageDescriptor
		thumbnail string
		fullSize  string
		display   string
		id        string
	}{
		{
			name:      "all fields",
			in:        models.ImageDescriptor{Key: "uploads/cat.jpg", URL: "u", Name: "Cat", ThumbnailURL: "t", ImageURL: "i"},
			thumbnail: "t",
			fullSize:  "i",
			display:   "Cat",
			id:        "uploads/cat.jpg",
		},
		{
			name:      "only key and url",
			in:        models.ImageDescriptor{Key: "uploads/dog.png", URL: "u"},
			thumbnail: "u",
			fullSize:  "u",
			display:   "dog.png",
			id:        "uploads/dog.png",
		},
		{
			name:      "list lambda shape",
			in:        models.ImageDescriptor{Name: "bird.gif", ThumbnailURL: "t", ImageURL: "i"},
			thumbnail: "t",
			fullSize:  "i",
			display:   "bird.gif",
			id:        "bird.gif",
		},
		{
			name:    "empty",
			display: "Image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.thumbnail, tt.in.Thumbnail())
			assert.Equal(t, tt.fullSize, tt.in.FullSize())
			assert.Equal(t, tt.display, tt.in.DisplayName())
			assert.Equal(t, tt.id, tt.in.ID())
		})
	}
}

func TestImageDescriptor_DecodeOptionalFields(t *testing.T) {
	raw := `[
		{"key":"uploads/a.jpg","url":"https://cdn/a.jpg","lastModified":"2024-06-01T12:00:00+00:00","size":2048},
		{"name":"b.jpg","thumbnailUrl":"https://cdn/t/b.jpg","imageUrl":"https://cdn/b.jpg"}
	]`

	var got []models.ImageDescriptor
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Len(t, got, 2)

	require.NotNil(t, got[0].LastModified)
	assert.True(t, got[0].LastModified.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	require.NotNil(t, got[0].Size)
	assert.EqualValues(t, 2048, *got[0].Size)

	assert.Nil(t, got[1].LastModified)
	assert.Nil(t, got[1].Size)
	assert.Empty(t, got[1].Key)
}

func TestUploadResult_OmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(models.Failure("quota exceeded"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"quota exceeded"}`, string(b))
}
