package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"
)

func seededFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(utils.OwnershipByName)
	f.directorRes.items = []entity.Director{{ID: "D1", Name: "Christopher Nolan"}}
	f.languageRes.items = []entity.Language{{ID: "L1", Language: "English"}}
	f.actorRes.items = []entity.Actor{{ID: "A1", Name: "Leonardo DiCaprio"}, {ID: "A2", Name: "Elliot Page"}}
	f.load(context.Background())
	return f
}

func TestBinderOptionsComeFromStores(t *testing.T) {
	f := seededFixture(t)

	if opts := f.binder.DirectorOptions(); len(opts) != 1 || opts[0].Value != "D1" || opts[0].Label != "Christopher Nolan" {
		t.Errorf("director options = %v", opts)
	}
	if opts := f.binder.LanguageOptions(); len(opts) != 1 || opts[0].Label != "English" {
		t.Errorf("language options = %v", opts)
	}
	if opts := f.binder.ActorOptions(); len(opts) != 2 {
		t.Errorf("actor options = %v", opts)
	}
}

func TestBinderToggleDoesNotTouchActorStore(t *testing.T) {
	f := seededFixture(t)
	version := f.actors.Version()

	if !f.binder.ToggleActor("A1") {
		t.Fatal("A1 should be selected")
	}
	if f.binder.ToggleActor("A1") {
		t.Fatal("second toggle should deselect")
	}
	if f.binder.ToggleActor("ghost") {
		t.Fatal("unknown actors cannot be selected")
	}

	if f.actors.Version() != version || f.actors.Len() != 2 {
		t.Fatal("selecting actors must not change the actor store")
	}
}

func TestBinderDropsDeletedActorMidEdit(t *testing.T) {
	f := seededFixture(t)
	movie := entity.Movie{
		ID:       "m1",
		Title:    "Inception",
		Director: entity.Ref{ID: "D1"},
		Language: entity.Ref{ID: "L1"},
		Actors:   []entity.Ref{{ID: "A1"}, {ID: "A2"}},
	}

	f.binder.BeginEdit(movie)
	if got := f.binder.ResolvedActorIDs(); !slices.Equal(got, []string{"A1", "A2"}) {
		t.Fatalf("seeded selection = %v", got)
	}

	if err := f.actors.Remove(context.Background(), "A2"); err != nil {
		t.Fatalf("remove actor: %v", err)
	}

	if got := f.binder.ResolvedActorIDs(); !slices.Equal(got, []string{"A1"}) {
		t.Fatalf("resolved selection = %v, want [A1]", got)
	}
	draft, ok := f.binder.Draft().(request.MovieUpdate)
	if !ok {
		t.Fatal("editing must produce an update draft")
	}
	if !slices.Equal(draft.Actors, []string{"A1"}) {
		t.Fatalf("draft actors = %v", draft.Actors)
	}
}

func TestBinderBeginEditIntersectsAvailableActors(t *testing.T) {
	f := seededFixture(t)
	f.binder.BeginEdit(entity.Movie{
		ID:          "m1",
		ReleaseDate: "2010-07-16T00:00:00.000Z",
		Rating:      4.46,
		Actors:      []entity.Ref{{ID: "A1"}, {ID: "A9"}},
	})

	form := f.binder.Form()
	if !slices.Equal(form.Actors, []string{"A1"}) {
		t.Errorf("actors = %v, want [A1]", form.Actors)
	}
	if form.ReleaseDate != "2010-07-16" {
		t.Errorf("release date = %q", form.ReleaseDate)
	}
	if form.Rating != 4.5 {
		t.Errorf("rating = %v", form.Rating)
	}
}

func TestBinderRequiredFieldPolicy(t *testing.T) {
	f := seededFixture(t)

	f.binder.SetTitle("Inception")
	create := f.binder.Draft()
	if _, ok := create.(request.MovieCreate); !ok {
		t.Fatalf("new form must produce a create draft, got %T", create)
	}
	errs := create.Validate()
	for _, field := range []string{"description", "director", "language", "image"} {
		if errs[field] == "" {
			t.Errorf("create must require %s, got %v", field, errs)
		}
	}

	f.binder.BeginEdit(entity.Movie{ID: "m1", Title: "Inception", Director: entity.Ref{ID: "D1"}, Language: entity.Ref{ID: "L1"}})
	update := f.binder.Draft()
	if update.Upload() != nil {
		t.Fatal("update without a new image must retain the existing one")
	}
	if errs := update.Validate(); len(errs) != 0 {
		t.Fatalf("update without image should validate, got %v", errs)
	}
}

func TestBinderRatingRounding(t *testing.T) {
	f := seededFixture(t)

	f.binder.SetRatingText("4.46")
	if got := f.binder.Form().Rating; got != 4.5 {
		t.Errorf("rating = %v, want 4.5", got)
	}
	f.binder.SetRatingText("abc")
	if got := f.binder.Form().Rating; got != 0 {
		t.Errorf("rating = %v, want 0", got)
	}

	f.binder.SetRating(7)
	errs := f.binder.Draft().Validate()
	if errs["rating"] == "" {
		t.Errorf("rating above 5 must fail, got %v", errs)
	}
}

func TestBinderResetRestoresDefaults(t *testing.T) {
	f := seededFixture(t)
	f.binder.BeginEdit(entity.Movie{ID: "m1", Title: "Inception", Rating: 4, IsPremium: true})
	f.binder.Reset()

	form := f.binder.Form()
	if f.binder.EditingID() != "" || form.Title != "" || form.Rating != 0 || form.IsPremium || len(form.Actors) != 0 {
		t.Fatalf("reset left %+v (editing %q)", form, f.binder.EditingID())
	}
}

func TestCatalogRejectsInvalidDraftLocally(t *testing.T) {
	f := seededFixture(t)
	f.binder.SetTitle("Untitled")

	_, err := f.catalog.Create(context.Background(), f.binder.Draft())
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.movieRes.count("create") != 0 {
		t.Fatal("invalid draft must not reach the server")
	}
}
