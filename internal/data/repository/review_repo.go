package repository

import (
	"context"
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, draft request.ReviewDraft) (entity.Review, error)
	Update(ctx context.Context, id string, patch request.ReviewPatch) (entity.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	api API
	log *zap.Logger
}

func NewReviewRepository(api API, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		api: api,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, draft request.ReviewDraft) (entity.Review, error) {
	var review entity.Review
	if err := r.api.SendJSON(ctx, http.MethodPost, "/reviews", draft, &review); err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("movie_id", draft.MovieID),
		)
		return review, mapError("create review", err)
	}
	return review, nil
}

func (r *reviewRepository) Update(ctx context.Context, id string, patch request.ReviewPatch) (entity.Review, error) {
	var review entity.Review
	if err := r.api.SendJSON(ctx, http.MethodPut, itemPath("/reviews", id), patch, &review); err != nil {
		r.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", id))
		return review, mapError("update review", err)
	}
	return review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, itemPath("/reviews", id)); err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", id))
		return mapError("delete review", err)
	}
	return nil
}
