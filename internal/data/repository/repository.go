package repository

import (
	"context"
	"io"
	"net/url"
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"

	"go.uber.org/zap"
)

// API is the transport the repositories speak through. *httpclient.Client
// implements it.
type API interface {
	Get(ctx context.Context, path string, out any) error
	SendJSON(ctx context.Context, method, path string, in, out any) error
	SendMultipart(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error
	Delete(ctx context.Context, path string) error
}

// Resource is one REST family: list, get, create, update and delete over
// /{resource} and /{resource}/{id}.
type Resource[E any, D any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, draft D) (E, error)
	Update(ctx context.Context, id string, draft D) (E, error)
	Delete(ctx context.Context, id string) error
}

type Paths struct {
	UsersList   string
	UsersDelete string
}

type Repository struct {
	Movie    Resource[entity.Movie, request.MovieDraft]
	Director Resource[entity.Director, request.ReferenceDraft]
	Actor    Resource[entity.Actor, request.ReferenceDraft]
	Language Resource[entity.Language, request.ReferenceDraft]
	User     Resource[entity.User, request.ReferenceDraft]
	Review   ReviewRepository
}

func NewRepository(api API, paths Paths, log *zap.Logger) *Repository {
	return &Repository{
		Movie:    NewMovieRepository(api, log),
		Director: NewReferenceRepository[entity.Director](api, "/directors", log),
		Actor:    NewReferenceRepository[entity.Actor](api, "/actors", log),
		Language: NewReferenceRepository[entity.Language](api, "/languages", log),
		User:     NewUserRepository(api, paths, log),
		Review:   NewReviewRepository(api, log),
	}
}

// itemPath addresses one entity under base. Ids are opaque, so the segment is
// escaped.
func itemPath(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(id)
}
