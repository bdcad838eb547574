package usecase

import (
	"context"
	"slices"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"
)

func poster() *request.ImageFile {
	return &request.ImageFile{Filename: "poster.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}
}

func TestCatalogCreateInception(t *testing.T) {
	f := newFixture(utils.OwnershipByName)
	f.directorRes.items = []entity.Director{{ID: "d1", Name: "Nolan"}}
	f.languageRes.items = []entity.Language{{ID: "l1", Name: "English"}}
	f.load(context.Background())

	f.binder.SetTitle("Inception")
	f.binder.SetDescription("A thief who steals corporate secrets through dreams.")
	f.binder.SetDirector("d1")
	f.binder.SetLanguage("l1")
	f.binder.SetRating(4.5)
	f.binder.SetImage(poster())

	if _, err := f.catalog.Create(context.Background(), f.binder.Draft()); err != nil {
		t.Fatalf("create: %v", err)
	}

	movies := f.catalog.Items()
	if len(movies) != 1 {
		t.Fatalf("expected one movie, got %v", movies)
	}
	if movies[0].Title != "Inception" || movies[0].Rating != 4.5 {
		t.Fatalf("movie = %+v", movies[0])
	}
}

func TestCatalogReferenceRoundTrip(t *testing.T) {
	f := newFixture(utils.OwnershipByName)
	f.directorRes.items = []entity.Director{{ID: "D1", Name: "Nolan"}}
	f.languageRes.items = []entity.Language{{ID: "L1", Language: "English"}}
	f.actorRes.items = []entity.Actor{{ID: "A1", Name: "DiCaprio"}, {ID: "A2", Name: "Hardy"}, {ID: "A3", Name: "Caine"}}
	f.load(context.Background())

	created, err := f.catalog.Create(context.Background(), request.MovieCreate{
		Title:       "Inception",
		Description: "Dreams",
		Director:    "D1",
		Language:    "L1",
		Actors:      []string{"A2", "A1"},
		Image:       poster(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	movie, ok := f.catalog.Get(created.ID)
	if !ok {
		t.Fatal("created movie not mirrored")
	}
	if movie.Director.ID != "D1" || movie.Language.ID != "L1" {
		t.Fatalf("refs = %+v / %+v", movie.Director, movie.Language)
	}
	actors := movie.ActorIDs()
	slices.Sort(actors)
	if !slices.Equal(actors, []string{"A1", "A2"}) {
		t.Fatalf("actors = %v", actors)
	}

	view, ok := f.catalog.View(created.ID)
	if !ok {
		t.Fatal("view missing")
	}
	if view.Director.Name != "Nolan" || view.Language.Name != "English" {
		t.Errorf("view refs = %+v / %+v", view.Director, view.Language)
	}
	names := view.ActorNames()
	slices.Sort(names)
	if !slices.Equal(names, []string{"DiCaprio", "Hardy"}) {
		t.Errorf("actor names = %v", names)
	}
}

func TestCatalogViewFallbacks(t *testing.T) {
	f := newFixture(utils.OwnershipByName)
	f.movieRes.items = []entity.Movie{{
		ID:       "m1",
		Title:    "Dune",
		Director: entity.Ref{ID: "D9", Name: "Villeneuve"},
		Language: entity.Ref{ID: "L9"},
	}}
	f.load(context.Background())

	view, _ := f.catalog.View("m1")
	if view.Director.Name != "Villeneuve" {
		t.Errorf("director should fall back to the embedded name, got %q", view.Director.Name)
	}
	if view.Language.Name != "L9" {
		t.Errorf("language should fall back to the id, got %q", view.Language.Name)
	}
}

func TestCatalogUpdateKeepsImageWhenOmitted(t *testing.T) {
	f := newFixture(utils.OwnershipByName)
	f.movieRes.items = []entity.Movie{{ID: "m1", Title: "Tenet", Image: "/uploads/tenet.jpg"}}
	f.load(context.Background())

	var sent request.MovieDraft
	f.movieRes.build = func(id string, d request.MovieDraft) entity.Movie {
		sent = d
		m := buildMovie(id, d)
		if d.Upload() == nil {
			m.Image = "/uploads/tenet.jpg"
		}
		return m
	}

	updated, err := f.catalog.Update(context.Background(), "m1", request.MovieUpdate{Title: "Tenet (2020)", Rating: 3.9})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if sent.Upload() != nil {
		t.Fatal("update without image must not upload one")
	}
	if updated.Image != "/uploads/tenet.jpg" || f.catalog.Len() != 1 {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestCatalogViewsFilterByTitle(t *testing.T) {
	f := newFixture(utils.OwnershipByName)
	f.movieRes.items = []entity.Movie{{ID: "m1", Title: "Inception"}, {ID: "m2", Title: "Dune"}, {ID: "m3", Title: "Interstellar"}}
	f.load(context.Background())

	views := f.catalog.Views("inte")
	if len(views) != 1 || views[0].ID != "m3" {
		t.Fatalf("views = %v", views)
	}
	if len(f.catalog.Views("")) != 3 {
		t.Fatal("empty query returns every movie")
	}
}

func TestCatalogReviewsRequireMirroredMovie(t *testing.T) {
	f := newFixture(utils.OwnershipByName)
	if _, err := f.catalog.Reviews("missing", f.session); err == nil {
		t.Fatal("expected error for a movie that is not loaded")
	}
}
