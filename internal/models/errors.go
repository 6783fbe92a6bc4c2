package models

import "errors"

var (
	ErrEmptyPayload    = errors.New("empty payload")
	ErrNotImage        = errors.New("file must be an image")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrRateLimited     = errors.New("rate limit exceeded")
)

// Тексты, которые видит пользователь.
const (
	NotImageMessage      = "File must be an image"
	GenericUploadFailure = "Failed to upload image"
)
