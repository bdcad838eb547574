package repository

import (
	"errors"
	"net/http"

	"movie-catalog/internal/apperr"
	"movie-catalog/pkg/httpclient"
)

// mapError translates transport failures into the apperr taxonomy.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return &apperr.Error{
			Kind:    kindForStatus(statusErr.StatusCode),
			Op:      op,
			Message: statusErr.Message,
			Err:     err,
		}
	}
	return apperr.Wrap(apperr.ErrTransport, op, err)
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.ErrValidation
	case http.StatusUnauthorized:
		return apperr.ErrUnauthenticated
	case http.StatusForbidden:
		return apperr.ErrForbidden
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusConflict:
		return apperr.ErrConflict
	default:
		return apperr.ErrTransport
	}
}
