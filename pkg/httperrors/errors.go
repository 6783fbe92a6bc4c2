package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/pkg/storageclient"
)

// Write переводит ошибку загрузки в HTTP-статус и тело {success:false,error}.
// Детали сетевых ошибок наружу не отдаются, только текст ответа стораджа.
func Write(w http.ResponseWriter, err error) {
	var statusErr *storageclient.StatusError

	switch {
	case errors.Is(err, models.ErrEmptyPayload):
		WriteJSON(w, http.StatusBadRequest, models.Failure(err.Error()))
	case errors.Is(err, models.ErrNotImage):
		WriteJSON(w, http.StatusUnsupportedMediaType, models.Failure(models.NotImageMessage))
	case errors.Is(err, models.ErrPayloadTooLarge):
		WriteJSON(w, http.StatusRequestEntityTooLarge, models.Failure(err.Error()))
	case errors.Is(err, models.ErrRateLimited):
		WriteJSON(w, http.StatusTooManyRequests, models.Failure(err.Error()))
	case errors.As(err, &statusErr):
		WriteJSON(w, http.StatusInternalServerError, models.Failure(statusErr.Message()))
	default:
		WriteJSON(w, http.StatusInternalServerError, models.Failure(models.GenericUploadFailure))
	}
}

// WriteJSON пишет payload как JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
