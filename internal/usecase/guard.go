package usecase

import (
	"context"
	"fmt"

	"movie-catalog/internal/apperr"
	"movie-catalog/pkg/utils"

	"golang.org/x/sync/semaphore"
)

// mutationGuard allows one in-flight mutation per store. With the reject
// policy a second caller fails fast; with the queue policy it waits its turn.
type mutationGuard struct {
	sem   *semaphore.Weighted
	queue bool
}

func newMutationGuard(policy string) *mutationGuard {
	return &mutationGuard{
		sem:   semaphore.NewWeighted(1),
		queue: policy == utils.MutationPolicyQueue,
	}
}

func (g *mutationGuard) acquire(ctx context.Context, op string) error {
	if g.queue {
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("%s: wait for in-flight mutation: %w", op, err)
		}
		return nil
	}
	if !g.sem.TryAcquire(1) {
		return apperr.New(apperr.ErrMutationInFlight, op, "another change is still in progress")
	}
	return nil
}

func (g *mutationGuard) release() {
	g.sem.Release(1)
}
