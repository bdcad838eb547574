package repository

import (
	"context"
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"

	"go.uber.org/zap"
)

type referenceRepository[E entity.Entity] struct {
	api  API
	path string
	log  *zap.Logger
}

// NewReferenceRepository serves a JSON resource whose drafts are a bare name:
// directors, actors and languages.
func NewReferenceRepository[E entity.Entity](api API, path string, log *zap.Logger) Resource[E, request.ReferenceDraft] {
	return &referenceRepository[E]{
		api:  api,
		path: path,
		log:  log.With(zap.String("repository", path)),
	}
}

func (r *referenceRepository[E]) List(ctx context.Context) ([]E, error) {
	var items []E
	if err := r.api.Get(ctx, r.path, &items); err != nil {
		r.log.Error("Failed to list", zap.Error(err))
		return nil, mapError("list "+r.path, err)
	}
	return items, nil
}

func (r *referenceRepository[E]) Get(ctx context.Context, id string) (E, error) {
	var item E
	if err := r.api.Get(ctx, r.itemPath(id), &item); err != nil {
		r.log.Error("Failed to get", zap.Error(err), zap.String("id", id))
		return item, mapError("get "+r.path, err)
	}
	return item, nil
}

func (r *referenceRepository[E]) Create(ctx context.Context, draft request.ReferenceDraft) (E, error) {
	var item E
	if err := r.api.SendJSON(ctx, http.MethodPost, r.path, draft, &item); err != nil {
		r.log.Error("Failed to create", zap.Error(err), zap.String("name", draft.Name))
		return item, mapError("create "+r.path, err)
	}
	return item, nil
}

func (r *referenceRepository[E]) Update(ctx context.Context, id string, draft request.ReferenceDraft) (E, error) {
	var item E
	if err := r.api.SendJSON(ctx, http.MethodPut, r.itemPath(id), draft, &item); err != nil {
		r.log.Error("Failed to update", zap.Error(err), zap.String("id", id))
		return item, mapError("update "+r.path, err)
	}
	return item, nil
}

func (r *referenceRepository[E]) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, r.itemPath(id)); err != nil {
		r.log.Error("Failed to delete", zap.Error(err), zap.String("id", id))
		return mapError("delete "+r.path, err)
	}
	return nil
}

func (r *referenceRepository[E]) itemPath(id string) string {
	return itemPath(r.path, id)
}
