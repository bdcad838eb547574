// Package mockapi is an in-memory implementation of the catalog REST API the
// client consumes. It serves local development and the integration tests.
package mockapi

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type storedImage struct {
	contentType string
	data        []byte
}

// Backend holds every collection of the mock API.
type Backend struct {
	directors table[entity.Director]
	actors    table[entity.Actor]
	languages table[entity.Language]
	movies    table[movieRecord]
	reviews   table[reviewRecord]
	users     table[entity.User]

	mu     sync.RWMutex
	tokens map[string]string // token -> user id
	images map[string]storedImage

	now func() time.Time
	log *zap.Logger
}

func NewBackend(log *zap.Logger) *Backend {
	return &Backend{
		tokens: make(map[string]string),
		images: make(map[string]storedImage),
		now:    time.Now,
		log:    log.With(zap.String("component", "mockapi")),
	}
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// AddAccount registers user and the bearer token that authenticates it.
func (b *Backend) AddAccount(user entity.User, token string) entity.User {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	if user.Status == "" {
		user.Status = "active"
	}
	b.users.insert(user)

	b.mu.Lock()
	b.tokens[token] = user.ID
	b.mu.Unlock()
	return user
}

// ResolveToken implements middleware.TokenResolver.
func (b *Backend) ResolveToken(ctx context.Context, token string) (utils.CallerIdentity, bool) {
	b.mu.RLock()
	userID, ok := b.tokens[token]
	b.mu.RUnlock()
	if !ok {
		return utils.CallerIdentity{}, false
	}

	user, ok := b.users.get(userID)
	if !ok {
		return utils.CallerIdentity{}, false
	}
	return utils.CallerIdentity{ID: user.ID, Name: user.Name, Role: string(user.Role)}, true
}

// ---------- movies ----------

func (b *Backend) ListMovies() []movieDoc {
	records := b.movies.list()
	docs := make([]movieDoc, len(records))
	for i, m := range records {
		docs[i] = b.populate(m)
	}
	return docs
}

func (b *Backend) GetMovie(id string) (movieDoc, error) {
	m, ok := b.movies.get(id)
	if !ok {
		return movieDoc{}, apperr.New(apperr.ErrNotFound, "get movie", "Movie not found")
	}
	return b.populate(m), nil
}

func (b *Backend) CreateMovie(draft request.MovieDraft) (movieDoc, error) {
	f := draft.Fields()
	if err := b.checkReferences("create movie", f); err != nil {
		return movieDoc{}, err
	}

	m := movieRecord{
		ID:          newID(),
		Title:       f.Title,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate,
		Rating:      utils.RoundToOneDecimal(f.Rating),
		IsPremium:   f.IsPremium,
		Director:    f.Director,
		Language:    f.Language,
		Actors:      dedupe(f.Actors),
		CreatedAt:   b.now().UTC(),
	}
	if image := draft.Upload(); image != nil {
		m.Image = b.storeImage(image)
	}

	b.movies.insert(m)
	b.log.Info("Movie created", zap.String("movie_id", m.ID), zap.String("title", m.Title))
	return b.populate(m), nil
}

// UpdateMovie applies the submitted form. Empty text fields keep the stored
// value; a missing image keeps the poster.
func (b *Backend) UpdateMovie(id string, draft request.MovieDraft) (movieDoc, error) {
	const op = "update movie"

	m, ok := b.movies.get(id)
	if !ok {
		return movieDoc{}, apperr.New(apperr.ErrNotFound, op, "Movie not found")
	}

	f := draft.Fields()
	if err := b.checkReferences(op, f); err != nil {
		return movieDoc{}, err
	}

	m.Title = orDefault(f.Title, m.Title)
	m.Description = orDefault(f.Description, m.Description)
	m.ReleaseDate = orDefault(f.ReleaseDate, m.ReleaseDate)
	m.Director = orDefault(f.Director, m.Director)
	m.Language = orDefault(f.Language, m.Language)
	m.Rating = utils.RoundToOneDecimal(f.Rating)
	m.IsPremium = f.IsPremium
	m.Actors = dedupe(f.Actors)
	if image := draft.Upload(); image != nil {
		m.Image = b.storeImage(image)
	}

	if !b.movies.replace(m) {
		return movieDoc{}, apperr.New(apperr.ErrNotFound, op, "Movie not found")
	}
	b.log.Info("Movie updated", zap.String("movie_id", id))
	return b.populate(m), nil
}

// DeleteMovie removes the movie and its reviews.
func (b *Backend) DeleteMovie(id string) error {
	if !b.movies.remove(id) {
		return apperr.New(apperr.ErrNotFound, "delete movie", "Movie not found")
	}
	n := b.reviews.removeWhere(func(r reviewRecord) bool { return r.MovieID == id })
	b.log.Info("Movie deleted", zap.String("movie_id", id), zap.Int("reviews", n))
	return nil
}

func (b *Backend) checkReferences(op string, f request.MovieFields) error {
	fields := make(map[string]string)
	if f.Director != "" {
		if _, ok := b.directors.get(f.Director); !ok {
			fields["director"] = "Director not found"
		}
	}
	if f.Language != "" {
		if _, ok := b.languages.get(f.Language); !ok {
			fields["language"] = "Language not found"
		}
	}
	for _, id := range f.Actors {
		if _, ok := b.actors.get(id); !ok {
			fields["actors"] = fmt.Sprintf("Actor %s not found", id)
			break
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(op, fields)
	}
	return nil
}

func (b *Backend) populate(m movieRecord) movieDoc {
	doc := movieDoc{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		IsPremium:   m.IsPremium,
		Actors:      []refDoc{},
		Reviews:     []reviewDoc{},
		CreatedAt:   m.CreatedAt,
	}
	if d, ok := b.directors.get(m.Director); ok {
		doc.Director = &refDoc{ID: d.ID, Name: d.Name}
	}
	if l, ok := b.languages.get(m.Language); ok {
		doc.Language = &refDoc{ID: l.ID, Name: l.Name, Language: l.Language}
	}
	for _, id := range m.Actors {
		if a, ok := b.actors.get(id); ok {
			doc.Actors = append(doc.Actors, refDoc{ID: a.ID, Name: a.Name})
		}
	}
	for _, r := range b.reviews.list() {
		if r.MovieID == m.ID {
			doc.Reviews = append(doc.Reviews, toReviewDoc(r))
		}
	}
	return doc
}

func (b *Backend) storeImage(image *request.ImageFile) string {
	name := newID() + strings.ToLower(filepath.Ext(image.Filename))
	b.mu.Lock()
	b.images[name] = storedImage{contentType: image.ContentType, data: slices.Clone(image.Data)}
	b.mu.Unlock()
	return "/uploads/" + name
}

func (b *Backend) Image(name string) (string, []byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	img, ok := b.images[name]
	return img.contentType, img.data, ok
}

// ---------- reviews ----------

func (b *Backend) CreateReview(caller utils.CallerIdentity, draft request.ReviewDraft) (reviewDoc, error) {
	if _, ok := b.movies.get(draft.MovieID); !ok {
		return reviewDoc{}, apperr.New(apperr.ErrNotFound, "create review", "Movie not found")
	}

	r := reviewRecord{
		ID:        newID(),
		MovieID:   draft.MovieID,
		UserID:    caller.ID,
		UserName:  caller.Name,
		Rating:    draft.Rating,
		Comment:   draft.Comment,
		CreatedAt: b.now().UTC(),
	}
	b.reviews.insert(r)
	b.log.Info("Review created", zap.String("review_id", r.ID), zap.String("movie_id", r.MovieID))
	return toReviewDoc(r), nil
}

// UpdateReview answers with the user as a bare id, the way the catalog API
// does after an edit.
func (b *Backend) UpdateReview(caller utils.CallerIdentity, id string, patch request.ReviewPatch) (reviewDoc, error) {
	r, err := b.ownedReview("update review", caller, id)
	if err != nil {
		return reviewDoc{}, err
	}

	if patch.MovieID != r.MovieID {
		return reviewDoc{}, apperr.Validation("update review", map[string]string{"movie_id": "Review belongs to another movie"})
	}

	r.Rating = patch.Rating
	r.Comment = patch.Comment
	if !b.reviews.replace(r) {
		return reviewDoc{}, apperr.New(apperr.ErrNotFound, "update review", "Review not found")
	}

	doc := toReviewDoc(r)
	doc.User = authorDoc{ID: r.UserID}
	return doc, nil
}

func (b *Backend) DeleteReview(caller utils.CallerIdentity, id string) error {
	if _, err := b.ownedReview("delete review", caller, id); err != nil {
		return err
	}
	if !b.reviews.remove(id) {
		return apperr.New(apperr.ErrNotFound, "delete review", "Review not found")
	}
	return nil
}

func (b *Backend) ownedReview(op string, caller utils.CallerIdentity, id string) (reviewRecord, error) {
	r, ok := b.reviews.get(id)
	if !ok {
		return reviewRecord{}, apperr.New(apperr.ErrNotFound, op, "Review not found")
	}
	if r.UserID != caller.ID {
		b.log.Warn("Review ownership violation", zap.String("review_id", id), zap.String("user_id", caller.ID))
		return reviewRecord{}, apperr.Forbidden(op, "You can only modify your own reviews")
	}
	return r, nil
}

// ---------- users ----------

func (b *Backend) ListUsers() []entity.User {
	return b.users.list()
}

// DeleteUser removes the account and its tokens. The user's reviews stay.
func (b *Backend) DeleteUser(id string) error {
	if !b.users.remove(id) {
		return apperr.New(apperr.ErrNotFound, "delete user", "User not found")
	}

	b.mu.Lock()
	for token, userID := range b.tokens {
		if userID == id {
			delete(b.tokens, token)
		}
	}
	b.mu.Unlock()

	b.log.Info("User deleted", zap.String("user_id", id))
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
