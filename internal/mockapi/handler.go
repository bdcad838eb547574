package mockapi

import (
	"errors"
	"net/http"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie    *MovieHandler
	Director *ReferenceHandler[entity.Director]
	Actor    *ReferenceHandler[entity.Actor]
	Language *ReferenceHandler[entity.Language]
	Review   *ReviewHandler
	User     *UserHandler
	Upload   *UploadHandler
}

func NewHandler(backend *Backend, log *zap.Logger) *Handler {
	return &Handler{
		Movie: NewMovieHandler(backend, log),
		Director: NewReferenceHandler(&backend.directors, "director", func(id, name string) entity.Director {
			return entity.Director{ID: id, Name: name}
		}, log),
		Actor: NewReferenceHandler(&backend.actors, "actor", func(id, name string) entity.Actor {
			return entity.Actor{ID: id, Name: name}
		}, log),
		// languages keep the legacy "language" label field
		Language: NewReferenceHandler(&backend.languages, "language", func(id, name string) entity.Language {
			return entity.Language{ID: id, Language: name}
		}, log),
		Review: NewReviewHandler(backend, log),
		User:   NewUserHandler(backend, log),
		Upload: &UploadHandler{backend: backend},
	}
}

// writeServiceError maps an apperr kind to its status code
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperr.Error
	message := apperr.Message(err)

	switch {
	case errors.Is(err, apperr.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		var fields map[string]string
		if errors.As(err, &appErr) {
			fields = appErr.Fields
		}
		utils.ResponseBadRequest(w, message, fields)

	case errors.Is(err, apperr.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, message)

	case errors.Is(err, apperr.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, message)

	case errors.Is(err, apperr.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, message)

	case errors.Is(err, apperr.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, message)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
