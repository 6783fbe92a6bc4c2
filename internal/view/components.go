package view

import (
	"fmt"

	"github.com/a-h/templ"
)

//go:generate templ generate

// AlertKind — вид сообщения под формой.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

const defaultTitle = "S3 Image Uploader"

// PageData — всё, что нужно главной странице.
type PageData struct {
	Title          string
	MaxUploadBytes int64
	Gallery        Gallery
}

func (p PageData) PageTitle() string {
	if p.Title == "" {
		return defaultTitle
	}
	return p.Title
}

// safeURL отбрасывает javascript: и прочие небезопасные схемы.
func safeURL(s string) string {
	return string(templ.URL(s))
}

func humanBytes(n int64) string {
	const mb = 1 << 20
	if n > 0 && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
