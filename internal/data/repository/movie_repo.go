package repository

import (
	"context"
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"

	"go.uber.org/zap"
)

type movieRepository struct {
	api API
	log *zap.Logger
}

// NewMovieRepository serves /movies. Create and update are multipart.
func NewMovieRepository(api API, log *zap.Logger) Resource[entity.Movie, request.MovieDraft] {
	return &movieRepository{
		api: api,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) List(ctx context.Context) ([]entity.Movie, error) {
	var movies []entity.Movie
	if err := r.api.Get(ctx, "/movies", &movies); err != nil {
		r.log.Error("Failed to list movies", zap.Error(err))
		return nil, mapError("list movies", err)
	}
	return movies, nil
}

func (r *movieRepository) Get(ctx context.Context, id string) (entity.Movie, error) {
	var movie entity.Movie
	if err := r.api.Get(ctx, itemPath("/movies", id), &movie); err != nil {
		r.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", id))
		return movie, mapError("get movie", err)
	}
	return movie, nil
}

func (r *movieRepository) Create(ctx context.Context, draft request.MovieDraft) (entity.Movie, error) {
	return r.send(ctx, http.MethodPost, "/movies", "create movie", draft)
}

func (r *movieRepository) Update(ctx context.Context, id string, draft request.MovieDraft) (entity.Movie, error) {
	return r.send(ctx, http.MethodPut, itemPath("/movies", id), "update movie", draft)
}

func (r *movieRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, itemPath("/movies", id)); err != nil {
		r.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", id))
		return mapError("delete movie", err)
	}
	return nil
}

func (r *movieRepository) send(ctx context.Context, method, path, op string, draft request.MovieDraft) (entity.Movie, error) {
	var movie entity.Movie

	body, contentType, err := request.EncodeMovie(draft)
	if err != nil {
		return movie, mapError(op, err)
	}

	if err := r.api.SendMultipart(ctx, method, path, body, contentType, &movie); err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.String("title", draft.Fields().Title))
		return movie, mapError(op, err)
	}
	return movie, nil
}
