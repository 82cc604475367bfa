package response

import (
	"errors"
	"net/http"

	"eventflow/internal/clients/remote"
	"eventflow/internal/domain"
)

// StatusCode maps an engine error to its HTTP status. Authoritative
// downstream rejections keep the status they arrived with.
func StatusCode(err error) int {
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
