package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/session"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Section string

const (
	SectionMovies    Section = "movies"
	SectionDirectors Section = "directors"
	SectionActors    Section = "actors"
	SectionLanguages Section = "languages"
	SectionUsers     Section = "users"
)

// Sections lists the admin sections in display order.
var Sections = []Section{SectionMovies, SectionDirectors, SectionActors, SectionLanguages, SectionUsers}

const (
	MovieAddedMessage   = "Movie added successfully!"
	MovieUpdatedMessage = "Movie updated successfully!"

	ConfirmDeleteMovie = "Are you sure you want to delete this movie?"
	ConfirmDeleteUser  = "Are you sure you want to delete this user?"
)

// ReferenceSection is the type-erased view of a mirror the admin screen
// switches between.
type ReferenceSection interface {
	Section() string
	Reload(ctx context.Context) (int, error)
	Loaded() bool
	Len() int
	Version() uint64
	Options() []response.Option
	DisplayNameOf(id string) (string, bool)
	Remove(ctx context.Context, id string) error
}

// Confirmer asks the user to approve an irreversible action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type AdminOrchestrator interface {
	Mount(ctx context.Context) (response.LoadReport, error)
	SwitchSection(section Section) error
	ActiveSection() Section
	Section(section Section) (ReferenceSection, bool)

	StartEditMovie(id string) error
	CancelMovieEdit()
	SubmitMovieForm(ctx context.Context) (entity.Movie, error)
	Submitting() bool
	Form() *MovieFormBinder
	Banner() string

	DeleteMovie(ctx context.Context, id string, confirm Confirmer) (bool, error)
	DeleteUser(ctx context.Context, id string, confirm Confirmer) (bool, error)
}

type adminOrchestrator struct {
	session  *session.Session
	catalog  *MovieCatalog
	users    ReferenceSection
	sections map[Section]ReferenceSection
	binder   *MovieFormBinder
	banner   *Banner
	log      *zap.Logger

	mu         sync.RWMutex
	active     Section
	submitting atomic.Bool
}

func NewAdminOrchestrator(
	sess *session.Session,
	catalog *MovieCatalog,
	directors, actors, languages, users ReferenceSection,
	binder *MovieFormBinder,
	bannerWindow time.Duration,
	log *zap.Logger,
) AdminOrchestrator {
	return &adminOrchestrator{
		session: sess,
		catalog: catalog,
		users:   users,
		sections: map[Section]ReferenceSection{
			SectionMovies:    catalog,
			SectionDirectors: directors,
			SectionActors:    actors,
			SectionLanguages: languages,
			SectionUsers:     users,
		},
		binder: binder,
		banner: NewBanner(bannerWindow),
		log:    log.With(zap.String("service", "admin")),
		active: SectionMovies,
	}
}

// Mount loads all five sections concurrently and waits for every fetch to
// settle. A failed section is reported and does not affect the others.
func (s *adminOrchestrator) Mount(ctx context.Context) (response.LoadReport, error) {
	if !s.session.IsAdmin() {
		s.log.Warn("Admin view requested without admin session")
		return response.LoadReport{}, apperr.Forbidden("mount admin", "admin access required")
	}

	start := time.Now()
	results := make([]response.SectionResult, len(Sections))

	var g errgroup.Group
	for i, section := range Sections {
		store := s.sections[section]
		g.Go(func() error {
			count, err := store.Reload(ctx)
			result := response.SectionResult{Section: string(section), Count: count, Loaded: err == nil}
			if err != nil {
				result.Error = apperr.Message(err)
				s.log.Error("Failed to load section", zap.String("section", string(section)), zap.Error(err))
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	report := response.LoadReport{Sections: results, Duration: time.Since(start)}
	s.log.Info("Admin view mounted",
		zap.Int("failed", len(report.Failed())),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// SwitchSection changes the visible section without fetching anything.
func (s *adminOrchestrator) SwitchSection(section Section) error {
	if _, ok := s.sections[section]; !ok {
		return apperr.New(apperr.ErrValidation, "switch section", fmt.Sprintf("unknown section %q", section))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = section
	return nil
}

func (s *adminOrchestrator) ActiveSection() Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *adminOrchestrator) Section(section Section) (ReferenceSection, bool) {
	store, ok := s.sections[section]
	return store, ok
}

func (s *adminOrchestrator) Form() *MovieFormBinder { return s.binder }

func (s *adminOrchestrator) Banner() string { return s.banner.Message() }

func (s *adminOrchestrator) Submitting() bool { return s.submitting.Load() }

func (s *adminOrchestrator) StartEditMovie(id string) error {
	movie, ok := s.catalog.Get(id)
	if !ok {
		return apperr.New(apperr.ErrNotFound, "edit movie", "no such movie "+id)
	}
	s.binder.BeginEdit(movie)
	return nil
}

func (s *adminOrchestrator) CancelMovieEdit() {
	s.binder.Reset()
}

// SubmitMovieForm creates or updates from the form. On success the form is
// reset and the banner shown; on failure the form is kept for another try.
func (s *adminOrchestrator) SubmitMovieForm(ctx context.Context) (entity.Movie, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return entity.Movie{}, apperr.New(apperr.ErrMutationInFlight, "submit movie", "the form is already being submitted")
	}
	defer s.submitting.Store(false)

	editingID := s.binder.EditingID()
	draft := s.binder.Draft()

	var (
		movie   entity.Movie
		err     error
		message string
	)
	if editingID != "" {
		movie, err = s.catalog.Update(ctx, editingID, draft)
		message = MovieUpdatedMessage
	} else {
		movie, err = s.catalog.Create(ctx, draft)
		message = MovieAddedMessage
	}
	if err != nil {
		s.log.Error("Failed to submit movie form", zap.Error(err), zap.String("movie_id", editingID))
		return entity.Movie{}, err
	}

	s.binder.Reset()
	s.banner.Show(message)
	s.log.Info("Movie form submitted", zap.String("movie_id", movie.ID), zap.Bool("update", editingID != ""))
	return movie, nil
}

// DeleteMovie removes a movie after confirmation. A declined prompt is a
// no-op and reports false.
func (s *adminOrchestrator) DeleteMovie(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !s.confirmed(confirm, ConfirmDeleteMovie) {
		return false, nil
	}
	if err := s.catalog.Remove(ctx, id); err != nil {
		return false, err
	}
	if s.binder.EditingID() == id {
		s.binder.Reset()
	}
	return true, nil
}

// DeleteUser removes a user account. Reviews the user wrote are left alone.
func (s *adminOrchestrator) DeleteUser(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !s.confirmed(confirm, ConfirmDeleteUser) {
		return false, nil
	}
	if err := s.users.Remove(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *adminOrchestrator) confirmed(confirm Confirmer, prompt string) bool {
	if confirm == nil {
		return false
	}
	if !confirm.Confirm(prompt) {
		s.log.Info("Deletion declined", zap.String("prompt", prompt))
		return false
	}
	return true
}
