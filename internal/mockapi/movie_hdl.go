package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type MovieHandler struct {
	backend *Backend
	log     *zap.Logger
}

func NewMovieHandler(backend *Backend, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		backend: backend,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, h.backend.ListMovies())
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.backend.GetMovie(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get movie")
		return
	}
	utils.ResponseSuccess(w, movie)
}

// CreateMovie handles POST /api/movies (admin, multipart)
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.parseForm(w, r, true)
	if !ok {
		return
	}

	movie, err := h.backend.CreateMovie(draft)
	if err != nil {
		writeServiceError(w, h.log, err, "create movie")
		return
	}
	utils.ResponseCreated(w, movie)
}

// UpdateMovie handles PUT /api/movies/{id} (admin, multipart)
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.parseForm(w, r, false)
	if !ok {
		return
	}

	movie, err := h.backend.UpdateMovie(chi.URLParam(r, "id"), draft)
	if err != nil {
		writeServiceError(w, h.log, err, "update movie")
		return
	}
	utils.ResponseSuccess(w, movie)
}

// DeleteMovie handles DELETE /api/movies/{id} (admin)
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeleteMovie(chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete movie")
		return
	}
	utils.ResponseSuccess(w, messageDoc{Message: "Movie deleted successfully"})
}

// parseForm reads the multipart movie form into a validated draft.
func (h *MovieHandler) parseForm(w http.ResponseWriter, r *http.Request, create bool) (request.MovieDraft, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.log.Warn("Invalid multipart body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid multipart body", nil)
		return nil, false
	}

	var actors []string
	if raw := r.FormValue("actors"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &actors); err != nil {
			utils.ResponseBadRequest(w, "actors must be a JSON array of ids", nil)
			return nil, false
		}
	}

	image, err := readImage(r)
	if err != nil {
		h.log.Warn("Invalid image upload", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid image upload", nil)
		return nil, false
	}

	fields := request.MovieFields{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ReleaseDate: r.FormValue("release_date"),
		Rating:      utils.ParseFloat(r.FormValue("rating"), 0),
		IsPremium:   utils.ParseBool(r.FormValue("isPremium")),
		Director:    r.FormValue("director"),
		Language:    r.FormValue("language"),
		Actors:      actors,
	}

	var draft request.MovieDraft
	if create {
		draft = request.MovieCreate{
			Title: fields.Title, Description: fields.Description, ReleaseDate: fields.ReleaseDate,
			Rating: fields.Rating, IsPremium: fields.IsPremium, Director: fields.Director,
			Language: fields.Language, Actors: fields.Actors, Image: image,
		}
	} else {
		draft = request.MovieUpdate{
			Title: fields.Title, Description: fields.Description, ReleaseDate: fields.ReleaseDate,
			Rating: fields.Rating, IsPremium: fields.IsPremium, Director: fields.Director,
			Language: fields.Language, Actors: fields.Actors, Image: image,
		}
	}

	draft = draft.Clean()
	if validationErrors := draft.Validate(); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(validationErrors), validationErrors)
		return nil, false
	}
	return draft, true
}

func readImage(r *http.Request) (*request.ImageFile, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &request.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

type UploadHandler struct {
	backend *Backend
}

// Serve handles GET /uploads/{name}
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	contentType, data, ok := h.backend.Image(chi.URLParam(r, "name"))
	if !ok {
		utils.ResponseNotFound(w, "Image not found")
		return
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
