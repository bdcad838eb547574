package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"movie-catalog/internal/apperr"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/session"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// ReviewEdit is the unsaved draft of the one review being edited.
type ReviewEdit struct {
	ID      string
	Rating  int
	Comment string
}

// ReviewManager runs the review lifecycle of one movie. Edit and delete are
// offered only on the session user's own reviews; the server stays the final
// authority.
type ReviewManager struct {
	movieID   string
	catalog   *MovieCatalog
	repo      repository.ReviewRepository
	session   *session.Session
	ownership string
	guard     *mutationGuard
	now       func() time.Time
	log       *zap.Logger

	mu   sync.Mutex
	edit *ReviewEdit
}

func newReviewManager(
	catalog *MovieCatalog,
	movieID string,
	sess *session.Session,
	repo repository.ReviewRepository,
	opts CatalogOptions,
	log *zap.Logger,
) *ReviewManager {
	return &ReviewManager{
		movieID:   movieID,
		catalog:   catalog,
		repo:      repo,
		session:   sess,
		ownership: opts.Ownership,
		guard:     newMutationGuard(opts.Policy),
		now:       time.Now,
		log:       log.With(zap.String("service", "review"), zap.String("movie_id", movieID)),
	}
}

func (m *ReviewManager) MovieID() string { return m.movieID }

// Reviews returns the movie's reviews in submission order.
func (m *ReviewManager) Reviews() []entity.Review {
	reviews, _ := m.catalog.movieReviews(m.movieID)
	return reviews
}

// Create submits a review as the session user and appends the confirmed
// record.
func (m *ReviewManager) Create(ctx context.Context, rating int, comment string) (entity.Review, error) {
	const op = "create review"

	identity, ok := m.session.Current()
	if !ok {
		m.log.Warn("Create review without session")
		return entity.Review{}, apperr.New(apperr.ErrUnauthenticated, op, "sign in to write a review")
	}

	draft := request.ReviewDraft{MovieID: m.movieID, Rating: rating, Comment: comment}.Clean()
	if errs := draft.Validate(); len(errs) > 0 {
		m.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return entity.Review{}, apperr.Validation(op, errs)
	}

	if err := m.guard.acquire(ctx, op); err != nil {
		return entity.Review{}, err
	}
	defer m.guard.release()

	review, err := m.repo.Create(ctx, draft)
	if err != nil {
		m.log.Error("Failed to create review", zap.Error(err), zap.String("user", identity.Name))
		return entity.Review{}, err
	}
	if review.ID == "" {
		m.log.Error("Review response carried no id")
		return entity.Review{}, apperr.New(apperr.ErrTransport, op, "response carried no identifier")
	}

	review.MovieID = m.movieID
	review.User = entity.Author{ID: identity.ID, Name: identity.Name}
	if review.Rating == 0 {
		review.Rating = draft.Rating
		review.Comment = draft.Comment
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = m.now()
	}

	if !m.catalog.applyReviews(m.movieID, func(reviews []entity.Review) []entity.Review {
		return append(reviews, review)
	}) {
		m.log.Warn("Movie no longer mirrored, review not appended", zap.String("review_id", review.ID))
	}

	m.log.Info("Review created",
		zap.String("review_id", review.ID),
		zap.String("user", identity.Name),
		zap.Int("rating", review.Rating),
	)
	return review, nil
}

// CanMutate reports whether the session user owns review.
func (m *ReviewManager) CanMutate(review entity.Review) bool {
	identity, ok := m.session.Current()
	if !ok {
		return false
	}
	if m.ownership == utils.OwnershipByID && review.User.ID != "" && identity.ID != "" {
		return review.User.ID == identity.ID
	}
	return identity.Name != "" && review.User.Name == identity.Name
}

// BeginEdit opens an edit draft for an own review, abandoning any other.
func (m *ReviewManager) BeginEdit(id string) error {
	review, err := m.ownReview("edit review", id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.edit = &ReviewEdit{ID: review.ID, Rating: review.Rating, Comment: review.Comment}
	return nil
}

func (m *ReviewManager) SetEditDraft(rating int, comment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edit != nil {
		m.edit.Rating = rating
		m.edit.Comment = comment
	}
}

func (m *ReviewManager) EditDraft() (ReviewEdit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edit == nil {
		return ReviewEdit{}, false
	}
	return *m.edit, true
}

func (m *ReviewManager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edit = nil
}

// SubmitEdit saves the open draft and closes it on success.
func (m *ReviewManager) SubmitEdit(ctx context.Context) (entity.Review, error) {
	draft, ok := m.EditDraft()
	if !ok {
		return entity.Review{}, apperr.New(apperr.ErrValidation, "edit review", "no review is being edited")
	}

	review, err := m.Edit(ctx, draft.ID, request.ReviewPatch{Rating: draft.Rating, Comment: draft.Comment})
	if err != nil {
		return entity.Review{}, err
	}

	m.mu.Lock()
	if m.edit != nil && m.edit.ID == draft.ID {
		m.edit = nil
	}
	m.mu.Unlock()
	return review, nil
}

// Edit replaces an own review with the server's canonical version. Reviews
// owned by someone else are rejected without a request.
func (m *ReviewManager) Edit(ctx context.Context, id string, patch request.ReviewPatch) (entity.Review, error) {
	const op = "edit review"

	current, err := m.ownReview(op, id)
	if err != nil {
		return entity.Review{}, err
	}

	patch.MovieID = m.movieID
	patch = patch.Clean()
	if errs := patch.Validate(); len(errs) > 0 {
		m.log.Warn("Edit review validation failed", zap.Any("errors", errs))
		return entity.Review{}, apperr.Validation(op, errs)
	}

	if err := m.guard.acquire(ctx, op); err != nil {
		return entity.Review{}, err
	}
	defer m.guard.release()

	canonical, err := m.repo.Update(ctx, id, patch)
	if err != nil {
		m.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", id))
		return entity.Review{}, err
	}
	if canonical.ID == "" {
		m.log.Error("Review response carried no id", zap.String("review_id", id))
		return entity.Review{}, apperr.New(apperr.ErrTransport, op, "response carried no identifier")
	}

	canonical.MovieID = m.movieID
	canonical.User.Name = current.User.Name
	if canonical.User.ID == "" {
		canonical.User.ID = current.User.ID
	}
	if canonical.CreatedAt.IsZero() {
		canonical.CreatedAt = current.CreatedAt
	}

	m.catalog.applyReviews(m.movieID, func(reviews []entity.Review) []entity.Review {
		if i := slices.IndexFunc(reviews, func(r entity.Review) bool { return r.ID == id }); i >= 0 {
			reviews[i] = canonical
		}
		return reviews
	})

	m.log.Info("Review updated", zap.String("review_id", id), zap.Int("rating", canonical.Rating))
	return canonical, nil
}

// Delete removes an own review once the server confirms. On failure the
// review stays; nothing is retried.
func (m *ReviewManager) Delete(ctx context.Context, id string) error {
	const op = "delete review"

	if _, err := m.ownReview(op, id); err != nil {
		return err
	}

	if err := m.guard.acquire(ctx, op); err != nil {
		return err
	}
	defer m.guard.release()

	if err := m.repo.Delete(ctx, id); err != nil {
		m.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", id))
		return err
	}

	m.catalog.applyReviews(m.movieID, func(reviews []entity.Review) []entity.Review {
		return slices.DeleteFunc(reviews, func(r entity.Review) bool { return r.ID == id })
	})

	m.mu.Lock()
	if m.edit != nil && m.edit.ID == id {
		m.edit = nil
	}
	m.mu.Unlock()

	m.log.Info("Review deleted", zap.String("review_id", id))
	return nil
}

func (m *ReviewManager) ownReview(op, id string) (entity.Review, error) {
	if _, ok := m.session.Current(); !ok {
		return entity.Review{}, apperr.New(apperr.ErrUnauthenticated, op, "sign in to change reviews")
	}

	reviews := m.Reviews()
	idx := slices.IndexFunc(reviews, func(r entity.Review) bool { return r.ID == id })
	if idx < 0 {
		return entity.Review{}, apperr.New(apperr.ErrNotFound, op, "no such review "+id)
	}

	review := reviews[idx]
	if !m.CanMutate(review) {
		m.log.Warn("Review belongs to another user", zap.String("review_id", id), zap.String("author", review.User.Name))
		return entity.Review{}, apperr.Forbidden(op, "you can only change your own reviews")
	}
	return review, nil
}
