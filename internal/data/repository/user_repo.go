package repository

import (
	"bytes"
	"context"
	"encoding/json"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"

	"go.uber.org/zap"
)

// The admin user endpoints only list and delete.
type userRepository struct {
	api   API
	paths Paths
	log   *zap.Logger
}

func NewUserRepository(api API, paths Paths, log *zap.Logger) Resource[entity.User, request.ReferenceDraft] {
	return &userRepository{
		api:   api,
		paths: paths,
		log:   log.With(zap.String("repository", "user")),
	}
}

// userList accepts either a bare array or {"users": [...]}.
type userList []entity.User

func (l *userList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Users []entity.User `json:"users"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		*l = wrapped.Users
		return nil
	}
	var users []entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		return err
	}
	*l = users
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	var users userList
	if err := r.api.Get(ctx, r.paths.UsersList, &users); err != nil {
		r.log.Error("Failed to list users", zap.Error(err))
		return nil, mapError("list users", err)
	}
	return users, nil
}

func (r *userRepository) Get(ctx context.Context, id string) (entity.User, error) {
	return entity.User{}, apperr.New(apperr.ErrUnsupported, "get user", "users are list-only")
}

func (r *userRepository) Create(ctx context.Context, draft request.ReferenceDraft) (entity.User, error) {
	return entity.User{}, apperr.New(apperr.ErrUnsupported, "create user", "users register themselves")
}

func (r *userRepository) Update(ctx context.Context, id string, draft request.ReferenceDraft) (entity.User, error) {
	return entity.User{}, apperr.New(apperr.ErrUnsupported, "update user", "users edit their own profile")
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, itemPath(r.paths.UsersDelete, id)); err != nil {
		r.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id))
		return mapError("delete user", err)
	}
	return nil
}
