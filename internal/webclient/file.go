package webclient

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File — выбранный пользователем файл.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewFile определяет тип содержимого по первым байтам, как браузер по File.type.
func NewFile(name string, data []byte) File {
	return File{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}
}

// OpenFile читает файл с диска.
func OpenFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return NewFile(filepath.Base(path), data), nil
}

// IsImage сообщает, что тип содержимого image/*.
func (f File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}
