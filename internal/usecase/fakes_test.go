package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/session"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// fakeResource is an in-memory REST family. build turns a draft into the
// entity the "server" returns.
type fakeResource[E entity.Record, D any] struct {
	mu     sync.Mutex
	prefix string
	items  []E
	build  func(id string, draft D) E
	nextID int
	calls  map[string]int

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	// hold, when set, blocks mutations until closed; entered is signalled
	// as each mutation reaches the server.
	hold    chan struct{}
	entered chan struct{}
}

func newFakeResource[E entity.Record, D any](prefix string, build func(string, D) E, items ...E) *fakeResource[E, D] {
	return &fakeResource[E, D]{
		prefix: prefix,
		items:  items,
		build:  build,
		calls:  make(map[string]int),
	}
}

func (f *fakeResource[E, D]) blockMutations() {
	f.hold = make(chan struct{})
	f.entered = make(chan struct{}, 8)
}

func (f *fakeResource[E, D]) wait() {
	if f.hold == nil {
		return
	}
	f.entered <- struct{}{}
	<-f.hold
}

func (f *fakeResource[E, D]) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeResource[E, D]) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeResource[E, D]) List(ctx context.Context) ([]E, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.items), nil
}

func (f *fakeResource[E, D]) Get(ctx context.Context, id string) (E, error) {
	f.record("get")
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero E
	if f.getErr != nil {
		return zero, f.getErr
	}
	for _, item := range f.items {
		if item.EntityID() == id {
			return item, nil
		}
	}
	return zero, apperr.New(apperr.ErrNotFound, "get", id)
}

func (f *fakeResource[E, D]) Create(ctx context.Context, draft D) (E, error) {
	f.record("create")
	f.wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	var zero E
	if f.createErr != nil {
		return zero, f.createErr
	}
	item := f.build(f.freeIDLocked(), draft)
	f.items = append(f.items, item)
	return item, nil
}

// freeIDLocked hands out the next prefixed id not held by a seeded item.
func (f *fakeResource[E, D]) freeIDLocked() string {
	for {
		f.nextID++
		id := fmt.Sprintf("%s%d", f.prefix, f.nextID)
		if !slices.ContainsFunc(f.items, func(item E) bool { return item.EntityID() == id }) {
			return id
		}
	}
}

func (f *fakeResource[E, D]) Update(ctx context.Context, id string, draft D) (E, error) {
	f.record("update")
	f.wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	var zero E
	if f.updateErr != nil {
		return zero, f.updateErr
	}
	i := slices.IndexFunc(f.items, func(item E) bool { return item.EntityID() == id })
	if i < 0 {
		return zero, apperr.New(apperr.ErrNotFound, "update", id)
	}
	item := f.build(id, draft)
	f.items[i] = item
	return item, nil
}

func (f *fakeResource[E, D]) Delete(ctx context.Context, id string) error {
	f.record("delete")
	f.wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.items = slices.DeleteFunc(f.items, func(item E) bool { return item.EntityID() == id })
	return nil
}

func buildDirector(id string, d request.ReferenceDraft) entity.Director {
	return entity.Director{ID: id, Name: d.Name}
}

func buildActor(id string, d request.ReferenceDraft) entity.Actor {
	return entity.Actor{ID: id, Name: d.Name}
}

func buildLanguage(id string, d request.ReferenceDraft) entity.Language {
	return entity.Language{ID: id, Name: d.Name}
}

func buildMovie(id string, d request.MovieDraft) entity.Movie {
	f := d.Fields()
	actors := make([]entity.Ref, len(f.Actors))
	for i, a := range f.Actors {
		actors[i] = entity.Ref{ID: a}
	}
	image := "/uploads/" + id + ".jpg"
	return entity.Movie{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Image:       image,
		ReleaseDate: f.ReleaseDate,
		Rating:      f.Rating,
		IsPremium:   f.IsPremium,
		Director:    entity.Ref{ID: f.Director},
		Language:    entity.Ref{ID: f.Language},
		Actors:      actors,
	}
}

// fakeReviews is an in-memory /reviews endpoint that records every call.
type fakeReviews struct {
	mu      sync.Mutex
	nextID  int
	calls   map[string]int
	noID    bool
	err     error
	patched map[string]request.ReviewPatch
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{calls: make(map[string]int), patched: make(map[string]request.ReviewPatch)}
}

func (f *fakeReviews) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeReviews) Create(ctx context.Context, draft request.ReviewDraft) (entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.err != nil {
		return entity.Review{}, f.err
	}
	if f.noID {
		return entity.Review{Rating: draft.Rating, Comment: draft.Comment}, nil
	}
	f.nextID++
	return entity.Review{
		ID:      fmt.Sprintf("r%d", f.nextID+100),
		MovieID: draft.MovieID,
		Rating:  draft.Rating,
		Comment: draft.Comment,
	}, nil
}

// Update answers like the real API: the user comes back as a bare id.
func (f *fakeReviews) Update(ctx context.Context, id string, patch request.ReviewPatch) (entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.err != nil {
		return entity.Review{}, f.err
	}
	f.patched[id] = patch
	return entity.Review{ID: id, Rating: patch.Rating, Comment: patch.Comment}, nil
}

func (f *fakeReviews) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	return f.err
}

type fixture struct {
	directorRes *fakeResource[entity.Director, request.ReferenceDraft]
	actorRes    *fakeResource[entity.Actor, request.ReferenceDraft]
	languageRes *fakeResource[entity.Language, request.ReferenceDraft]
	userRes     *fakeResource[entity.User, request.ReferenceDraft]
	movieRes    *fakeResource[entity.Movie, request.MovieDraft]
	reviewRes   *fakeReviews

	directors *DirectorStore
	actors    *ActorStore
	languages *LanguageStore
	users     *UserStore
	catalog   *MovieCatalog
	binder    *MovieFormBinder
	session   *session.Session
}

func nameDraft(name string) request.ReferenceDraft {
	return request.ReferenceDraft{Name: name}
}

func newFixture(ownership string) *fixture {
	log := zap.NewNop()
	f := &fixture{
		directorRes: newFakeResource("d", buildDirector),
		actorRes:    newFakeResource("a", buildActor),
		languageRes: newFakeResource("l", buildLanguage),
		userRes: newFakeResource("u", func(id string, d request.ReferenceDraft) entity.User {
			return entity.User{ID: id, Name: d.Name}
		}),
		movieRes:  newFakeResource("m", buildMovie),
		reviewRes: newFakeReviews(),
		session:   session.New(),
	}

	policy := utils.MutationPolicyReject
	f.directors = NewReferenceStore[entity.Director, request.ReferenceDraft](f.directorRes, StoreOptions[request.ReferenceDraft]{Section: "directors", Policy: policy, NameDraft: nameDraft}, log)
	f.actors = NewReferenceStore[entity.Actor, request.ReferenceDraft](f.actorRes, StoreOptions[request.ReferenceDraft]{Section: "actors", Policy: policy, NameDraft: nameDraft}, log)
	f.languages = NewReferenceStore[entity.Language, request.ReferenceDraft](f.languageRes, StoreOptions[request.ReferenceDraft]{Section: "languages", Policy: policy, NameDraft: nameDraft}, log)
	f.users = NewReferenceStore[entity.User, request.ReferenceDraft](f.userRes, StoreOptions[request.ReferenceDraft]{Section: "users", Policy: policy}, log)
	f.catalog = NewMovieCatalog(f.movieRes, f.reviewRes, f.directors, f.actors, f.languages,
		CatalogOptions{Policy: policy, Ownership: ownership}, log)
	f.binder = NewMovieFormBinder(f.directors, f.actors, f.languages)
	return f
}

func (f *fixture) load(ctx context.Context) {
	_, _ = f.directors.Load(ctx)
	_, _ = f.actors.Load(ctx)
	_, _ = f.languages.Load(ctx)
	_, _ = f.users.Load(ctx)
	_, _ = f.catalog.Load(ctx)
}
