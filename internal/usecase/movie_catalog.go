package usecase

import (
	"context"
	"slices"
	"sync"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/session"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// NameResolver maps a reference id to its current label.
type NameResolver interface {
	DisplayNameOf(id string) (string, bool)
}

type CatalogOptions struct {
	Policy    string
	Ownership string
}

// MovieCatalog mirrors /movies. It is the only writer of the movie mirror;
// review changes are written back through it.
type MovieCatalog struct {
	store     *ReferenceStore[entity.Movie, request.MovieDraft]
	reviews   repository.ReviewRepository
	directors NameResolver
	actors    NameResolver
	languages NameResolver
	opts      CatalogOptions
	log       *zap.Logger

	managersMu sync.Mutex
	managers   map[managerKey]*ReviewManager
}

type managerKey struct {
	movieID string
	session *session.Session
}

func NewMovieCatalog(
	movies repository.Resource[entity.Movie, request.MovieDraft],
	reviews repository.ReviewRepository,
	directors, actors, languages NameResolver,
	opts CatalogOptions,
	log *zap.Logger,
) *MovieCatalog {
	if opts.Ownership == "" {
		opts.Ownership = utils.OwnershipByName
	}
	return &MovieCatalog{
		store: NewReferenceStore(movies, StoreOptions[request.MovieDraft]{
			Section: "movies",
			Policy:  opts.Policy,
		}, log),
		reviews:   reviews,
		directors: directors,
		actors:    actors,
		languages: languages,
		opts:      opts,
		log:       log.With(zap.String("store", "movie_catalog")),
		managers:  make(map[managerKey]*ReviewManager),
	}
}

func (c *MovieCatalog) Section() string { return c.store.Section() }

func (c *MovieCatalog) Load(ctx context.Context) ([]entity.Movie, error) {
	return c.store.Load(ctx)
}

func (c *MovieCatalog) Reload(ctx context.Context) (int, error) {
	return c.store.Reload(ctx)
}

// Refresh re-reads one movie, including its reviews, for the detail page.
func (c *MovieCatalog) Refresh(ctx context.Context, id string) (entity.Movie, error) {
	return c.store.Refresh(ctx, id)
}

func (c *MovieCatalog) Create(ctx context.Context, draft request.MovieDraft) (entity.Movie, error) {
	if draft == nil {
		return entity.Movie{}, apperr.New(apperr.ErrValidation, "create movies", "empty draft")
	}
	return c.store.Create(ctx, draft)
}

func (c *MovieCatalog) Update(ctx context.Context, id string, draft request.MovieDraft) (entity.Movie, error) {
	if draft == nil {
		return entity.Movie{}, apperr.New(apperr.ErrValidation, "update movies", "empty draft")
	}
	return c.store.Update(ctx, id, draft)
}

// Remove deletes a movie. Callers ask for confirmation first.
func (c *MovieCatalog) Remove(ctx context.Context, id string) error {
	if err := c.store.Remove(ctx, id); err != nil {
		return err
	}

	c.managersMu.Lock()
	defer c.managersMu.Unlock()
	for key := range c.managers {
		if key.movieID == id {
			delete(c.managers, key)
		}
	}
	return nil
}

func (c *MovieCatalog) Items() []entity.Movie                  { return c.store.Items() }
func (c *MovieCatalog) Get(id string) (entity.Movie, bool)     { return c.store.Get(id) }
func (c *MovieCatalog) Len() int                               { return c.store.Len() }
func (c *MovieCatalog) Loaded() bool                           { return c.store.Loaded() }
func (c *MovieCatalog) Version() uint64                        { return c.store.Version() }
func (c *MovieCatalog) Filter(query string) []entity.Movie     { return c.store.Filter(query) }
func (c *MovieCatalog) Options() []response.Option             { return c.store.Options() }
func (c *MovieCatalog) DisplayNameOf(id string) (string, bool) { return c.store.DisplayNameOf(id) }

func (c *MovieCatalog) Watch(fn func(Snapshot[entity.Movie])) func() { return c.store.Watch(fn) }

// View denormalizes one mirrored movie for display.
func (c *MovieCatalog) View(id string) (response.MovieView, bool) {
	movie, ok := c.store.Get(id)
	if !ok {
		return response.MovieView{}, false
	}
	return c.toView(movie), true
}

// Views denormalizes the movies whose title matches query.
func (c *MovieCatalog) Views(query string) []response.MovieView {
	movies := c.store.Filter(query)
	views := make([]response.MovieView, len(movies))
	for i, m := range movies {
		views[i] = c.toView(m)
	}
	return views
}

// Reviews returns the review manager for a mirrored movie. Every caller with
// the same movie and session shares one manager, so its single-flight guard
// and edit draft hold across callers.
func (c *MovieCatalog) Reviews(movieID string, sess *session.Session) (*ReviewManager, error) {
	if _, ok := c.store.Get(movieID); !ok {
		return nil, apperr.New(apperr.ErrNotFound, "reviews", "movie "+movieID+" is not loaded")
	}

	c.managersMu.Lock()
	defer c.managersMu.Unlock()
	key := managerKey{movieID: movieID, session: sess}
	if mgr, ok := c.managers[key]; ok {
		return mgr, nil
	}
	mgr := newReviewManager(c, movieID, sess, c.reviews, c.opts, c.log)
	c.managers[key] = mgr
	return mgr, nil
}

func (c *MovieCatalog) toView(m entity.Movie) response.MovieView {
	actors := make([]response.NamedRef, len(m.Actors))
	for i, a := range m.Actors {
		actors[i] = resolveRef(a, c.actors)
	}
	return response.MovieView{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		ReleaseDate: utils.DateOnly(m.ReleaseDate),
		Rating:      m.Rating,
		IsPremium:   m.IsPremium,
		Director:    resolveRef(m.Director, c.directors),
		Language:    resolveRef(m.Language, c.languages),
		Actors:      actors,
		Reviews:     slices.Clone(m.Reviews),
	}
}

// resolveRef prefers the live mirror, then the name the server embedded,
// then the raw id.
func resolveRef(ref entity.Ref, names NameResolver) response.NamedRef {
	if ref.IsZero() {
		return response.NamedRef{}
	}
	if names != nil {
		if name, ok := names.DisplayNameOf(ref.ID); ok && name != "" {
			return response.NamedRef{ID: ref.ID, Name: name}
		}
	}
	if ref.Name != "" {
		return response.NamedRef{ID: ref.ID, Name: ref.Name}
	}
	return response.NamedRef{ID: ref.ID, Name: ref.ID}
}

func (c *MovieCatalog) movieReviews(movieID string) ([]entity.Review, bool) {
	movie, ok := c.store.Get(movieID)
	if !ok {
		return nil, false
	}
	return slices.Clone(movie.Reviews), true
}

// applyReviews rewrites the embedded reviews of movieID.
func (c *MovieCatalog) applyReviews(movieID string, fn func([]entity.Review) []entity.Review) bool {
	return c.store.modify(movieID, func(m entity.Movie) entity.Movie {
		m.Reviews = fn(slices.Clone(m.Reviews))
		return m
	})
}
