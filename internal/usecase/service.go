package usecase

import (
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/session"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type (
	DirectorStore = ReferenceStore[entity.Director, request.ReferenceDraft]
	ActorStore    = ReferenceStore[entity.Actor, request.ReferenceDraft]
	LanguageStore = ReferenceStore[entity.Language, request.ReferenceDraft]
	UserStore     = ReferenceStore[entity.User, request.ReferenceDraft]
)

type Service struct {
	Catalog   *MovieCatalog
	Directors *DirectorStore
	Actors    *ActorStore
	Languages *LanguageStore
	Users     *UserStore
	Binder    *MovieFormBinder
	Admin     AdminOrchestrator
}

func NewService(repo *repository.Repository, sess *session.Session, config *utils.Config, log *zap.Logger) *Service {
	policy := config.Store.MutationPolicy
	nameDraft := func(name string) request.ReferenceDraft {
		return request.ReferenceDraft{Name: name}
	}

	directors := NewReferenceStore(repo.Director, StoreOptions[request.ReferenceDraft]{
		Section: "directors", Policy: policy, NameDraft: nameDraft,
	}, log)
	actors := NewReferenceStore(repo.Actor, StoreOptions[request.ReferenceDraft]{
		Section: "actors", Policy: policy, NameDraft: nameDraft,
	}, log)
	languages := NewReferenceStore(repo.Language, StoreOptions[request.ReferenceDraft]{
		Section: "languages", Policy: policy, NameDraft: nameDraft,
	}, log)
	users := NewReferenceStore(repo.User, StoreOptions[request.ReferenceDraft]{
		Section: "users", Policy: policy,
	}, log)

	catalog := NewMovieCatalog(repo.Movie, repo.Review, directors, actors, languages, CatalogOptions{
		Policy:    policy,
		Ownership: config.Store.OwnershipMode,
	}, log)

	binder := NewMovieFormBinder(directors, actors, languages)
	banner := time.Duration(config.Store.BannerSeconds) * time.Second

	return &Service{
		Catalog:   catalog,
		Directors: directors,
		Actors:    actors,
		Languages: languages,
		Users:     users,
		Binder:    binder,
		Admin:     NewAdminOrchestrator(sess, catalog, directors, actors, languages, users, binder, banner, log),
	}
}
