// Package storageproto описывает HTTP-контракт с внешним Storage API:
// POST сырых байт с Content-Type и X-Filename, GET списка изображений.
package storageproto

// Заголовки и типы содержимого контракта.
const (
	HeaderFilename    = "X-Filename"
	HeaderContentType = "Content-Type"

	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"

	DefaultFilename = "upload.bin"
)
