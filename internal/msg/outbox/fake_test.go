package outbox

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"messaging-back/internal/model"
	"messaging-back/internal/repository"
)

type simClock struct {
	mu sync.Mutex
	t  time.Time
}

func newSimClock() *simClock {
	return &simClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *simClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *simClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

// memRepository mirrors the SQL semantics of repository.OutboxRepository.
type memRepository struct {
	mu     sync.Mutex
	clock  *simClock
	seq    int
	events map[uuid.UUID]*model.OutboxEvent
}

func newMemRepository(clock *simClock) *memRepository {
	return &memRepository{
		clock:  clock,
		events: make(map[uuid.UUID]*model.OutboxEvent),
	}
}

func (r *memRepository) InsertEvent(_ context.Context, _ repository.RepoExtension, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	// distinct creation times keep FIFO order observable
	event.CreatedAt = r.clock.Now().Add(time.Duration(r.seq) * time.Microsecond)
	event.Status = model.OutboxStatusPending
	event.Attempts = 0

	stored := *event
	r.events[event.ID] = &stored

	return nil
}

func (r *memRepository) ClaimBatch(_ context.Context, _ repository.RepoExtension, limit int, now, leaseUntil time.Time) ([]model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	due := make([]*model.OutboxEvent, 0)

	for _, e := range r.events {
		if e.Status == model.OutboxStatusPending && !e.AvailableAt.After(now) {
			due = append(due, e)
		}
	}

	slices.SortFunc(due, func(a, b *model.OutboxEvent) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	if len(due) > limit {
		due = due[:limit]
	}

	claimed := make([]model.OutboxEvent, 0, len(due))

	for _, e := range due {
		e.AvailableAt = leaseUntil
		claimed = append(claimed, *e)
	}

	return claimed, nil
}

func (r *memRepository) MarkSent(_ context.Context, _ repository.RepoExtension, eventID uuid.UUID, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.events[eventID]; ok && e.Status == model.OutboxStatusPending {
		e.Status = model.OutboxStatusSent
		e.SentAt = &sentAt
	}

	return nil
}

func (r *memRepository) MarkFailed(_ context.Context, _ repository.RepoExtension, eventID uuid.UUID, availableAt time.Time, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.events[eventID]; ok && e.Status == model.OutboxStatusPending {
		e.Attempts++
		e.AvailableAt = availableAt
		e.Error = &reason
	}

	return nil
}

func (r *memRepository) Stats(_ context.Context, _ repository.RepoExtension) (*model.OutboxStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats model.OutboxStats

	for _, e := range r.events {
		if e.Status != model.OutboxStatusPending {
			continue
		}

		stats.Pending++

		if stats.OldestPendingAt == nil || e.CreatedAt.Before(*stats.OldestPendingAt) {
			at := e.CreatedAt
			stats.OldestPendingAt = &at
		}
	}

	return &stats, nil
}

func (r *memRepository) get(id uuid.UUID) model.OutboxEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return *r.events[id]
}
