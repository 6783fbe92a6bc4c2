package models

// UploadRequest — то, что прокси получил от браузера и отдаёт стораджу без изменений.
type UploadRequest struct {
	Filename    string
	ContentType string
	Body        []byte
}

// UploadResult возвращается браузеру после каждой попытки загрузки.
// FileKey синтезируется локально и служит только подписью; Key, если есть,
// пришёл от стораджа и считается настоящим ключом объекта.
type UploadResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	FileKey string `json:"fileKey,omitempty"`
	Key     string `json:"key,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failure собирает неуспешный результат с текстом ошибки.
func Failure(msg string) UploadResult {
	return UploadResult{Success: false, Error: msg}
}
