package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"messaging-back/internal/model"
	"messaging-back/internal/repository"
)

const (
	DefaultBackoffUnit = 2 * time.Second
	DefaultBackoffCap  = 60 * time.Second
	DefaultClaimLease  = 30 * time.Second
)

type Repository interface {
	InsertEvent(ctx context.Context, ext repository.RepoExtension, event *model.OutboxEvent) error
	ClaimBatch(ctx context.Context, ext repository.RepoExtension, limit int, now, leaseUntil time.Time) ([]model.OutboxEvent, error)
	MarkSent(ctx context.Context, ext repository.RepoExtension, eventID uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, ext repository.RepoExtension, eventID uuid.UUID, availableAt time.Time, reason string) error
	Stats(ctx context.Context, ext repository.RepoExtension) (*model.OutboxStats, error)
}

type LogConfig struct {
	BackoffUnit time.Duration
	BackoffCap  time.Duration
	ClaimLease  time.Duration
}

// Log is the durable event queue. Append joins the caller's transaction through ext.
type Log struct {
	repo Repository
	cfg  LogConfig
	now  func() time.Time
}

type LogOption func(l *Log)

func WithLogClock(now func() time.Time) LogOption {
	return func(l *Log) {
		l.now = now
	}
}

func NewLog(repo Repository, cfg LogConfig, opts ...LogOption) *Log {
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = DefaultBackoffUnit
	}

	if cfg.BackoffCap <= 0 {
		cfg.BackoffCap = DefaultBackoffCap
	}

	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = DefaultClaimLease
	}

	l := &Log{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Append stores a PENDING event that is immediately due. idempotencyKey is informational only.
func (l *Log) Append(ctx context.Context, ext repository.RepoExtension, payload Payload, idempotencyKey *string) (*model.OutboxEvent, error) {
	data, err := Encode(payload)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate outbox event id: %w", err)
	}

	event := &model.OutboxEvent{
		ID:             id,
		Topic:          payload.Topic(),
		Payload:        data,
		Status:         model.OutboxStatusPending,
		AvailableAt:    l.now(),
		IdempotencyKey: idempotencyKey,
	}

	if err := l.repo.InsertEvent(ctx, ext, event); err != nil {
		return nil, err
	}

	return event, nil
}

// ClaimBatch leases up to limit due events, oldest first.
func (l *Log) ClaimBatch(ctx context.Context, limit int, now time.Time) ([]model.OutboxEvent, error) {
	return l.repo.ClaimBatch(ctx, nil, limit, now, now.Add(l.cfg.ClaimLease))
}

func (l *Log) MarkSent(ctx context.Context, eventID uuid.UUID) error {
	return l.repo.MarkSent(ctx, nil, eventID, l.now())
}

// MarkFailed reschedules the event after Backoff(event.Attempts) and records cause.
func (l *Log) MarkFailed(ctx context.Context, event model.OutboxEvent, cause error) error {
	availableAt := l.now().Add(Backoff(event.Attempts, l.cfg.BackoffUnit, l.cfg.BackoffCap))

	return l.repo.MarkFailed(ctx, nil, event.ID, availableAt, cause.Error())
}

func (l *Log) Stats(ctx context.Context) (*model.OutboxStats, error) {
	return l.repo.Stats(ctx, nil)
}

// Backoff is min(limit, (attempts+1)*unit).
func Backoff(attempts int, unit, limit time.Duration) time.Duration {
	return min(limit, time.Duration(attempts+1)*unit)
}
