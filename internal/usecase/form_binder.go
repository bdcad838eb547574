package usecase

import (
	"slices"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/utils"
)

// OptionSource feeds a dependent select. The binder only reads from it.
type OptionSource interface {
	Options() []response.Option
}

// MovieForm is the editable state of the admin movie form.
type MovieForm struct {
	Title       string
	Description string
	ReleaseDate string
	Rating      float64
	IsPremium   bool
	Director    string
	Language    string
	Actors      []string
	Image       *request.ImageFile
}

// MovieFormBinder binds the movie form to the director, actor and language
// mirrors and turns it into a typed draft.
type MovieFormBinder struct {
	directors OptionSource
	actors    OptionSource
	languages OptionSource

	mu        sync.Mutex
	form      MovieForm
	editingID string
}

func NewMovieFormBinder(directors, actors, languages OptionSource) *MovieFormBinder {
	return &MovieFormBinder{
		directors: directors,
		actors:    actors,
		languages: languages,
	}
}

func (b *MovieFormBinder) DirectorOptions() []response.Option { return b.directors.Options() }
func (b *MovieFormBinder) ActorOptions() []response.Option    { return b.actors.Options() }
func (b *MovieFormBinder) LanguageOptions() []response.Option { return b.languages.Options() }

// BeginEdit seeds the form from movie. The actor selection keeps only actors
// that still exist.
func (b *MovieFormBinder) BeginEdit(movie entity.Movie) {
	available := b.availableActors()

	selected := make([]string, 0, len(movie.Actors))
	for _, id := range movie.ActorIDs() {
		if _, ok := available[id]; ok && !slices.Contains(selected, id) {
			selected = append(selected, id)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.editingID = movie.ID
	b.form = MovieForm{
		Title:       movie.Title,
		Description: movie.Description,
		ReleaseDate: utils.DateOnly(movie.ReleaseDate),
		Rating:      utils.RoundToOneDecimal(movie.Rating),
		IsPremium:   movie.IsPremium,
		Director:    movie.Director.ID,
		Language:    movie.Language.ID,
		Actors:      selected,
	}
}

// EditingID is the movie being edited, or "" when the form creates.
func (b *MovieFormBinder) EditingID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editingID
}

// Reset returns the form to an empty create draft.
func (b *MovieFormBinder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = MovieForm{}
	b.editingID = ""
}

// Form returns a copy of the current form state.
func (b *MovieFormBinder) Form() MovieForm {
	b.mu.Lock()
	defer b.mu.Unlock()
	form := b.form
	form.Actors = slices.Clone(b.form.Actors)
	return form
}

func (b *MovieFormBinder) SetTitle(title string) {
	b.update(func(f *MovieForm) { f.Title = title })
}

func (b *MovieFormBinder) SetDescription(description string) {
	b.update(func(f *MovieForm) { f.Description = description })
}

// SetReleaseDate accepts YYYY-MM-DD or a full ISO timestamp.
func (b *MovieFormBinder) SetReleaseDate(date string) {
	b.update(func(f *MovieForm) { f.ReleaseDate = utils.DateOnly(date) })
}

func (b *MovieFormBinder) SetRating(rating float64) {
	b.update(func(f *MovieForm) { f.Rating = utils.RoundToOneDecimal(rating) })
}

// SetRatingText parses the rating input; unparsable text becomes 0.
func (b *MovieFormBinder) SetRatingText(text string) {
	b.SetRating(utils.ParseFloat(text, 0))
}

func (b *MovieFormBinder) SetPremium(premium bool) {
	b.update(func(f *MovieForm) { f.IsPremium = premium })
}

func (b *MovieFormBinder) SetDirector(id string) {
	b.update(func(f *MovieForm) { f.Director = id })
}

func (b *MovieFormBinder) SetLanguage(id string) {
	b.update(func(f *MovieForm) { f.Language = id })
}

// SetImage attaches a new poster. Nil clears it, which on update keeps the
// existing image.
func (b *MovieFormBinder) SetImage(image *request.ImageFile) {
	b.update(func(f *MovieForm) { f.Image = image })
}

// SetActors replaces the selection with the ids that exist in the actor
// mirror.
func (b *MovieFormBinder) SetActors(ids []string) {
	available := b.availableActors()
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := available[id]; ok && !slices.Contains(selected, id) {
			selected = append(selected, id)
		}
	}
	b.update(func(f *MovieForm) { f.Actors = selected })
}

// ToggleActor flips id in the selection and reports whether it is now
// selected. Unknown actors are never selected.
func (b *MovieFormBinder) ToggleActor(id string) bool {
	if _, ok := b.availableActors()[id]; !ok {
		b.update(func(f *MovieForm) {
			f.Actors = slices.DeleteFunc(f.Actors, func(a string) bool { return a == id })
		})
		return false
	}

	var selected bool
	b.update(func(f *MovieForm) {
		if i := slices.Index(f.Actors, id); i >= 0 {
			f.Actors = slices.Delete(f.Actors, i, i+1)
			return
		}
		f.Actors = append(f.Actors, id)
		selected = true
	})
	return selected
}

// ResolvedActorIDs is the selection restricted to actors currently in the
// mirror, so an actor deleted mid-edit silently drops out.
func (b *MovieFormBinder) ResolvedActorIDs() []string {
	available := b.availableActors()

	b.mu.Lock()
	defer b.mu.Unlock()
	return resolveActors(b.form.Actors, available)
}

// Draft builds a create draft, or an update draft while editing.
func (b *MovieFormBinder) Draft() request.MovieDraft {
	available := b.availableActors()

	b.mu.Lock()
	form := b.form
	editing := b.editingID != ""
	actors := resolveActors(b.form.Actors, available)
	b.mu.Unlock()

	if editing {
		return request.MovieUpdate{
			Title:       form.Title,
			Description: form.Description,
			ReleaseDate: form.ReleaseDate,
			Rating:      form.Rating,
			IsPremium:   form.IsPremium,
			Director:    form.Director,
			Language:    form.Language,
			Actors:      actors,
			Image:       form.Image,
		}
	}
	return request.MovieCreate{
		Title:       form.Title,
		Description: form.Description,
		ReleaseDate: form.ReleaseDate,
		Rating:      form.Rating,
		IsPremium:   form.IsPremium,
		Director:    form.Director,
		Language:    form.Language,
		Actors:      actors,
		Image:       form.Image,
	}
}

func (b *MovieFormBinder) update(fn func(*MovieForm)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.form)
}

func resolveActors(selected []string, available map[string]struct{}) []string {
	resolved := make([]string, 0, len(selected))
	for _, id := range selected {
		if _, ok := available[id]; ok {
			resolved = append(resolved, id)
		}
	}
	return resolved
}

func (b *MovieFormBinder) availableActors() map[string]struct{} {
	options := b.actors.Options()
	available := make(map[string]struct{}, len(options))
	for _, o := range options {
		available[o.Value] = struct{}{}
	}
	return available
}
