package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/session"

	"go.uber.org/zap"
)

func newAdmin(f *fixture, window time.Duration) AdminOrchestrator {
	return NewAdminOrchestrator(f.session, f.catalog, f.directors, f.actors, f.languages, f.users,
		f.binder, window, zap.NewNop())
}

func adminFixture(t *testing.T, window time.Duration) (*fixture, AdminOrchestrator) {
	t.Helper()
	f := seededFixture(t)
	f.userRes.items = []entity.User{{ID: "u1", Name: "Alice", Email: "alice@example.com"}}
	f.session.Establish(session.Identity{ID: "admin", Name: "Root", Role: entity.RoleAdmin}, "tok")
	return f, newAdmin(f, window)
}

func fillInception(b *MovieFormBinder) {
	b.SetTitle("Inception")
	b.SetDescription("Dreams within dreams")
	b.SetReleaseDate("2010-07-16")
	b.SetRating(4.8)
	b.SetDirector("D1")
	b.SetLanguage("L1")
	b.SetActors([]string{"A1", "A2"})
	b.SetImage(poster())
}

func TestAdminMountLoadsAllSections(t *testing.T) {
	_, admin := adminFixture(t, time.Second)

	report, err := admin.Mount(context.Background())
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if len(report.Failed()) != 0 {
		t.Fatalf("failed sections: %v", report.Failed())
	}

	want := map[Section]int{SectionMovies: 0, SectionDirectors: 1, SectionActors: 2, SectionLanguages: 1, SectionUsers: 1}
	for i, section := range Sections {
		got := report.Sections[i]
		if got.Section != string(section) || got.Count != want[section] {
			t.Errorf("section %d = %+v, want %s with %d", i, got, section, want[section])
		}
	}
}

func TestAdminMountPartialFailure(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	f.actorRes.listErr = apperr.New(apperr.ErrTransport, "list actors", "connection refused")

	report, err := admin.Mount(context.Background())
	if err != nil {
		t.Fatalf("mount must not fail as a whole: %v", err)
	}

	failed := report.Failed()
	if len(failed) != 1 || failed[0].Section != string(SectionActors) || failed[0].Error == "" {
		t.Fatalf("failed = %+v", failed)
	}
	if r, _ := report.Result(string(SectionDirectors)); !r.Loaded || r.Count != 1 {
		t.Errorf("directors = %+v", r)
	}
	if r, _ := report.Result(string(SectionUsers)); !r.Loaded {
		t.Errorf("users = %+v", r)
	}
	// actors keep the collection they had
	if f.actors.Len() != 2 {
		t.Errorf("actors len = %d", f.actors.Len())
	}
}

func TestAdminMountRequiresAdmin(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	f.session.Establish(session.Identity{ID: "u1", Name: "Alice", Role: entity.RoleUser}, "tok")
	before := f.userRes.count("list")

	if _, err := admin.Mount(context.Background()); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if f.userRes.count("list") != before {
		t.Fatal("non-admin mount must not fetch")
	}

	f.session.Teardown()
	if _, err := admin.Mount(context.Background()); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden when signed out, got %v", err)
	}
}

func TestAdminSwitchSectionDoesNotFetch(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	if _, err := admin.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	lists := f.directorRes.count("list") + f.userRes.count("list") + f.movieRes.count("list")

	for _, section := range []Section{SectionDirectors, SectionUsers, SectionMovies} {
		if err := admin.SwitchSection(section); err != nil {
			t.Fatalf("switch %s: %v", section, err)
		}
		if admin.ActiveSection() != section {
			t.Fatalf("active = %s", admin.ActiveSection())
		}
	}

	if got := f.directorRes.count("list") + f.userRes.count("list") + f.movieRes.count("list"); got != lists {
		t.Fatalf("switching refetched: %d -> %d", lists, got)
	}
	if err := admin.SwitchSection("bookings"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if admin.ActiveSection() != SectionMovies {
		t.Fatal("unknown section must not change the active one")
	}
}

func TestAdminSubmitCreateShowsBanner(t *testing.T) {
	f, admin := adminFixture(t, 20*time.Millisecond)
	fillInception(admin.Form())

	movie, err := admin.SubmitMovieForm(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if movie.Title != "Inception" || f.catalog.Len() != 1 {
		t.Fatalf("movie = %+v, len = %d", movie, f.catalog.Len())
	}
	if admin.Banner() != MovieAddedMessage {
		t.Fatalf("banner = %q", admin.Banner())
	}
	if form := admin.Form().Form(); form.Title != "" || len(form.Actors) != 0 {
		t.Fatalf("form not reset: %+v", form)
	}
	if admin.Submitting() {
		t.Fatal("submitting flag left set")
	}

	deadline := time.Now().Add(2 * time.Second)
	for admin.Banner() != "" {
		if time.Now().After(deadline) {
			t.Fatal("banner did not clear")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAdminSubmitUpdate(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	fillInception(admin.Form())
	created, err := admin.SubmitMovieForm(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := admin.StartEditMovie(created.ID); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	admin.Form().SetTitle("Inception (Director's Cut)")

	updated, err := admin.SubmitMovieForm(context.Background())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || f.catalog.Len() != 1 {
		t.Fatalf("update created a new movie: %+v", updated)
	}
	if got, _ := f.catalog.Get(created.ID); got.Title != "Inception (Director's Cut)" {
		t.Fatalf("title = %q", got.Title)
	}
	if admin.Banner() != MovieUpdatedMessage {
		t.Fatalf("banner = %q", admin.Banner())
	}
	if admin.Form().EditingID() != "" {
		t.Fatal("edit mode must end after submit")
	}

	if err := admin.StartEditMovie("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminSubmitFailureKeepsForm(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	f.movieRes.createErr = apperr.New(apperr.ErrTransport, "create movies", "server error")
	fillInception(admin.Form())

	if _, err := admin.SubmitMovieForm(context.Background()); !errors.Is(err, apperr.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if admin.Form().Form().Title != "Inception" {
		t.Fatal("form must keep its values for a retry")
	}
	if admin.Banner() != "" {
		t.Fatalf("banner = %q", admin.Banner())
	}
	if f.catalog.Len() != 0 {
		t.Fatal("failed create must not add a movie")
	}
}

func TestAdminSubmitWhileInFlight(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	f.movieRes.blockMutations()
	fillInception(admin.Form())

	done := make(chan error, 1)
	go func() {
		_, err := admin.SubmitMovieForm(context.Background())
		done <- err
	}()
	<-f.movieRes.entered

	if !admin.Submitting() {
		t.Fatal("submitting flag not set")
	}
	if _, err := admin.SubmitMovieForm(context.Background()); !errors.Is(err, apperr.ErrMutationInFlight) {
		t.Fatalf("expected in-flight error, got %v", err)
	}

	close(f.movieRes.hold)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if f.movieRes.count("create") != 1 {
		t.Fatalf("create calls = %d", f.movieRes.count("create"))
	}
}

func TestAdminDeleteNeedsConfirmation(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	f.movieRes.items = []entity.Movie{{ID: "m1", Title: "Inception"}}
	if _, err := admin.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}

	var prompts []string
	decline := ConfirmFunc(func(p string) bool { prompts = append(prompts, p); return false })
	accept := ConfirmFunc(func(p string) bool { prompts = append(prompts, p); return true })

	tests := []struct {
		name    string
		del     func(Confirmer) (bool, error)
		res     interface{ count(string) int }
		length  func() int
		prompt  string
		initial int
	}{
		{
			name:    "movie",
			del:     func(c Confirmer) (bool, error) { return admin.DeleteMovie(context.Background(), "m1", c) },
			res:     f.movieRes,
			length:  f.catalog.Len,
			prompt:  ConfirmDeleteMovie,
			initial: 1,
		},
		{
			name:    "user",
			del:     func(c Confirmer) (bool, error) { return admin.DeleteUser(context.Background(), "u1", c) },
			res:     f.userRes,
			length:  f.users.Len,
			prompt:  ConfirmDeleteUser,
			initial: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompts = nil

			if ok, err := tt.del(nil); ok || err != nil {
				t.Fatalf("nil confirmer: ok=%v err=%v", ok, err)
			}
			if ok, err := tt.del(decline); ok || err != nil {
				t.Fatalf("declined: ok=%v err=%v", ok, err)
			}
			if tt.res.count("delete") != 0 || tt.length() != tt.initial {
				t.Fatal("declined delete must not reach the server")
			}

			ok, err := tt.del(accept)
			if !ok || err != nil {
				t.Fatalf("accepted: ok=%v err=%v", ok, err)
			}
			if tt.res.count("delete") != 1 || tt.length() != tt.initial-1 {
				t.Fatal("accepted delete must remove the entry")
			}
			if len(prompts) != 2 || prompts[0] != tt.prompt {
				t.Fatalf("prompts = %v", prompts)
			}
		})
	}
}

func TestAdminDeleteEditedMovieResetsForm(t *testing.T) {
	f, admin := adminFixture(t, time.Second)
	f.movieRes.items = []entity.Movie{{ID: "m1", Title: "Inception", Director: entity.Ref{ID: "D1"}}}
	if _, err := admin.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if err := admin.StartEditMovie("m1"); err != nil {
		t.Fatalf("start edit: %v", err)
	}

	ok, err := admin.DeleteMovie(context.Background(), "m1", ConfirmFunc(func(string) bool { return true }))
	if !ok || err != nil {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if admin.Form().EditingID() != "" {
		t.Fatal("form still editing a deleted movie")
	}
}
