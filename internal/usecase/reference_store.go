package usecase

import (
	"context"
	"slices"
	"sync"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/response"

	"go.uber.org/zap"
)

// Draft is a typed create/update body that can sanitize and validate itself.
type Draft[D any] interface {
	Clean() D
	Validate() map[string]string
}

// Snapshot is what watchers receive after every change to a mirror.
type Snapshot[E any] struct {
	Items   []E
	Version uint64
}

// EditState is the name field of a reference form and, while editing, the
// entity it was seeded from.
type EditState struct {
	ID   string
	Name string
}

func (e EditState) Editing() bool { return e.ID != "" }

type StoreOptions[D any] struct {
	// Section names the store in logs and errors, e.g. "directors".
	Section string
	// Policy is utils.MutationPolicyReject or utils.MutationPolicyQueue.
	Policy string
	// NameDraft builds a draft from the form's name field. Stores without
	// one have no edit session.
	NameDraft func(name string) D
}

// ReferenceStore mirrors one server collection. Local state changes only
// after the server confirms, and always to the entity the server returned.
type ReferenceStore[E entity.Record, D Draft[D]] struct {
	section   string
	resource  repository.Resource[E, D]
	guard     *mutationGuard
	nameDraft func(string) D
	log       *zap.Logger

	mu        sync.RWMutex
	items     []E
	loaded    bool
	version   uint64
	edit      EditState
	watchers  map[int]func(Snapshot[E])
	nextWatch int
}

func NewReferenceStore[E entity.Record, D Draft[D]](resource repository.Resource[E, D], opts StoreOptions[D], log *zap.Logger) *ReferenceStore[E, D] {
	return &ReferenceStore[E, D]{
		section:   opts.Section,
		resource:  resource,
		guard:     newMutationGuard(opts.Policy),
		nameDraft: opts.NameDraft,
		log:       log.With(zap.String("store", opts.Section)),
		watchers:  make(map[int]func(Snapshot[E])),
	}
}

func (s *ReferenceStore[E, D]) Section() string { return s.section }

// Load replaces the mirror with the server's collection. On failure the
// previous mirror stays available.
func (s *ReferenceStore[E, D]) Load(ctx context.Context) ([]E, error) {
	items, err := s.resource.List(ctx)
	if err != nil {
		s.log.Error("Failed to load", zap.Error(err))
		return nil, err
	}

	unique := make([]E, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.EntityID()
		if id == "" {
			s.log.Warn("Dropping entity without id", zap.String("name", item.DisplayName()))
			continue
		}
		if _, dup := seen[id]; dup {
			s.log.Warn("Dropping duplicate entity", zap.String("id", id))
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, item)
	}

	s.commit(func() bool {
		s.items = unique
		s.loaded = true
		return true
	})

	s.log.Info("Loaded", zap.Int("count", len(unique)))
	return slices.Clone(unique), nil
}

// Create sends draft and appends the confirmed entity. Nothing is inserted
// before the server assigns an id.
func (s *ReferenceStore[E, D]) Create(ctx context.Context, draft D) (E, error) {
	var zero E
	op := "create " + s.section

	draft, err := s.prepare(op, draft)
	if err != nil {
		return zero, err
	}

	if err := s.guard.acquire(ctx, op); err != nil {
		s.log.Warn("Create rejected", zap.Error(err))
		return zero, err
	}
	defer s.guard.release()

	item, err := s.resource.Create(ctx, draft)
	if err != nil {
		s.log.Error("Failed to create", zap.Error(err))
		return zero, err
	}
	if item.EntityID() == "" {
		s.log.Error("Server returned entity without id")
		return zero, apperr.New(apperr.ErrTransport, op, "response carried no identifier")
	}

	s.commit(func() bool { return s.upsertLocked(item) })

	s.log.Info("Created", zap.String("id", item.EntityID()), zap.String("name", item.DisplayName()))
	return item, nil
}

// Update sends draft and replaces the local entry with the server's
// canonical entity. An entry removed locally in the meantime is not brought
// back.
func (s *ReferenceStore[E, D]) Update(ctx context.Context, id string, draft D) (E, error) {
	var zero E
	op := "update " + s.section

	if id == "" {
		return zero, apperr.Validation(op, map[string]string{"id": "This field is required"})
	}
	draft, err := s.prepare(op, draft)
	if err != nil {
		return zero, err
	}

	if err := s.guard.acquire(ctx, op); err != nil {
		s.log.Warn("Update rejected", zap.Error(err), zap.String("id", id))
		return zero, err
	}
	defer s.guard.release()

	item, err := s.resource.Update(ctx, id, draft)
	if err != nil {
		s.log.Error("Failed to update", zap.Error(err), zap.String("id", id))
		return zero, err
	}
	if item.EntityID() == "" {
		s.log.Error("Server returned entity without id", zap.String("id", id))
		return zero, apperr.New(apperr.ErrTransport, op, "response carried no identifier")
	}

	found := s.commit(func() bool {
		if i := s.indexLocked(id); i >= 0 {
			s.items[i] = item
			return true
		}
		return false
	})
	if !found {
		s.log.Warn("Updated entity no longer mirrored", zap.String("id", id))
	}

	s.log.Info("Updated", zap.String("id", id))
	return item, nil
}

// Remove deletes id on the server and only then drops it locally.
func (s *ReferenceStore[E, D]) Remove(ctx context.Context, id string) error {
	op := "remove " + s.section
	if id == "" {
		return apperr.Validation(op, map[string]string{"id": "This field is required"})
	}

	if err := s.guard.acquire(ctx, op); err != nil {
		s.log.Warn("Remove rejected", zap.Error(err), zap.String("id", id))
		return err
	}
	defer s.guard.release()

	if err := s.resource.Delete(ctx, id); err != nil {
		s.log.Error("Failed to remove", zap.Error(err), zap.String("id", id))
		return err
	}

	s.commit(func() bool {
		before := len(s.items)
		s.items = slices.DeleteFunc(s.items, func(item E) bool {
			return item.EntityID() == id
		})
		if s.edit.ID == id {
			s.edit = EditState{}
		}
		return len(s.items) != before
	})

	s.log.Info("Removed", zap.String("id", id))
	return nil
}

// Refresh fetches one entity and upserts it.
func (s *ReferenceStore[E, D]) Refresh(ctx context.Context, id string) (E, error) {
	item, err := s.resource.Get(ctx, id)
	if err != nil {
		s.log.Error("Failed to refresh", zap.Error(err), zap.String("id", id))
		return item, err
	}
	if item.EntityID() == "" {
		var zero E
		return zero, apperr.New(apperr.ErrTransport, "refresh "+s.section, "response carried no identifier")
	}

	s.commit(func() bool { return s.upsertLocked(item) })
	return item, nil
}

// Items returns a copy of the mirror in server order.
func (s *ReferenceStore[E, D]) Items() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *ReferenceStore[E, D]) Get(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	var zero E
	return zero, false
}

// DisplayNameOf resolves id to its label.
func (s *ReferenceStore[E, D]) DisplayNameOf(id string) (string, bool) {
	item, ok := s.Get(id)
	if !ok {
		return "", false
	}
	return item.DisplayName(), true
}

// Reload is Load for callers that only need the count.
func (s *ReferenceStore[E, D]) Reload(ctx context.Context) (int, error) {
	items, err := s.Load(ctx)
	return len(items), err
}

func (s *ReferenceStore[E, D]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loaded reports whether a Load has ever succeeded.
func (s *ReferenceStore[E, D]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Version increases on every change to the mirror.
func (s *ReferenceStore[E, D]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *ReferenceStore[E, D]) Filter(query string) []E {
	return Filter(s.Items(), query)
}

// Options lists the mirror as dependent-select options.
func (s *ReferenceStore[E, D]) Options() []response.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()

	options := make([]response.Option, len(s.items))
	for i, item := range s.items {
		options[i] = response.Option{Value: item.EntityID(), Label: item.DisplayName()}
	}
	return options
}

// Watch registers fn to receive a snapshot after every change. The returned
// func unregisters it.
func (s *ReferenceStore[E, D]) Watch(fn func(Snapshot[E])) (cancel func()) {
	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// BeginEdit seeds the name field from the entity and marks it as edited.
// Any previous edit session is dropped.
func (s *ReferenceStore[E, D]) BeginEdit(id string) error {
	op := "edit " + s.section
	if s.nameDraft == nil {
		return apperr.New(apperr.ErrUnsupported, op, s.section+" cannot be edited")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return apperr.New(apperr.ErrNotFound, op, "no such entry "+id)
	}
	s.edit = EditState{ID: id, Name: s.items[i].DisplayName()}
	return nil
}

func (s *ReferenceStore[E, D]) SetEditName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit.Name = name
}

func (s *ReferenceStore[E, D]) EditSession() EditState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edit
}

func (s *ReferenceStore[E, D]) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit = EditState{}
}

// Submit creates from the name field, or updates the edited entity. The
// session is cleared on success and kept on failure.
func (s *ReferenceStore[E, D]) Submit(ctx context.Context) (E, error) {
	var zero E
	if s.nameDraft == nil {
		return zero, apperr.New(apperr.ErrUnsupported, "submit "+s.section, s.section+" cannot be edited")
	}

	state := s.EditSession()
	draft := s.nameDraft(state.Name)

	var (
		item E
		err  error
	)
	if state.Editing() {
		item, err = s.Update(ctx, state.ID, draft)
	} else {
		item, err = s.Create(ctx, draft)
	}
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	if s.edit == state {
		s.edit = EditState{}
	}
	s.mu.Unlock()
	return item, nil
}

// modify applies fn to the mirrored entity id. It reports false when the
// entity is not mirrored.
func (s *ReferenceStore[E, D]) modify(id string, fn func(E) E) bool {
	return s.commit(func() bool {
		if i := s.indexLocked(id); i >= 0 {
			s.items[i] = fn(s.items[i])
			return true
		}
		return false
	})
}

func (s *ReferenceStore[E, D]) prepare(op string, draft D) (D, error) {
	draft = draft.Clean()
	if errs := draft.Validate(); len(errs) > 0 {
		s.log.Warn("Validation failed", zap.String("op", op), zap.Any("errors", errs))
		return draft, apperr.Validation(op, errs)
	}
	return draft, nil
}

// commit runs fn under the write lock. When fn reports a change the version
// is bumped and watchers are notified outside the lock.
func (s *ReferenceStore[E, D]) commit(fn func() bool) bool {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	s.version++
	snap := Snapshot[E]{Items: slices.Clone(s.items), Version: s.version}
	watchers := make([]func(Snapshot[E]), 0, len(s.watchers))
	for _, w := range s.watchers {
		watchers = append(watchers, w)
	}
	s.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}
	return true
}

func (s *ReferenceStore[E, D]) upsertLocked(item E) bool {
	if i := s.indexLocked(item.EntityID()); i >= 0 {
		s.items[i] = item
		return true
	}
	s.items = append(s.items, item)
	return true
}

func (s *ReferenceStore[E, D]) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(item E) bool {
		return item.EntityID() == id
	})
}
