package repository

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"messaging-back/internal/model"
)

type OutboxRepository struct {
	db *pgxpool.Pool
}

func NewOutboxRepository(db *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{
		db: db,
	}
}

func (r *OutboxRepository) InsertEvent(ctx context.Context, ext RepoExtension, event *model.OutboxEvent) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO messages.outbox_events (id, topic, payload, status, attempts, available_at, idempotency_key)
		VALUES ($1, $2, $3, 'PENDING', 0, $4, $5)
		RETURNING status, attempts, created_at;
	`

	if err := ext.QueryRow(
		ctx,
		query,
		event.ID,
		event.Topic,
		event.Payload,
		event.AvailableAt,
		event.IdempotencyKey,
	).Scan(&event.Status, &event.Attempts, &event.CreatedAt); err != nil {
		return wrap("failed to insert outbox event", err)
	}

	return nil
}

// ClaimBatch leases up to limit due events until leaseUntil. Rows locked by another claimer are skipped.
func (r *OutboxRepository) ClaimBatch(ctx context.Context, ext RepoExtension, limit int, now, leaseUntil time.Time) ([]model.OutboxEvent, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		WITH due AS (
			SELECT id
			FROM messages.outbox_events
			WHERE status = 'PENDING' AND available_at <= $1
			ORDER BY created_at, id
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		UPDATE messages.outbox_events e
		SET available_at = $3
		FROM due
		WHERE e.id = due.id
		RETURNING e.id, e.topic, e.payload, e.status, e.attempts, e.available_at,
		          e.error, e.idempotency_key, e.created_at, e.sent_at;
	`

	rows, err := ext.Query(ctx, query, now, limit, leaseUntil)
	if err != nil {
		return nil, wrap("failed to claim outbox batch", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.OutboxEvent, error) {
		var e model.OutboxEvent
		err := row.Scan(
			&e.ID,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.Attempts,
			&e.AvailableAt,
			&e.Error,
			&e.IdempotencyKey,
			&e.CreatedAt,
			&e.SentAt,
		)

		return e, err
	})
	if err != nil {
		return nil, wrap("failed to collect outbox batch", err)
	}

	// RETURNING does not keep the CTE order
	slices.SortFunc(events, func(a, b model.OutboxEvent) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return slices.Compare(a.ID[:], b.ID[:])
	})

	return events, nil
}

// MarkSent is terminal; an event that already left PENDING is not touched.
func (r *OutboxRepository) MarkSent(ctx context.Context, ext RepoExtension, eventID uuid.UUID, sentAt time.Time) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		UPDATE messages.outbox_events
		SET status = 'SENT', sent_at = $2
		WHERE id = $1 AND status = 'PENDING';
	`

	if _, err := ext.Exec(ctx, query, eventID, sentAt); err != nil {
		return wrap("failed to mark outbox event as sent", err)
	}

	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, ext RepoExtension, eventID uuid.UUID, availableAt time.Time, reason string) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		UPDATE messages.outbox_events
		SET attempts = attempts + 1, available_at = $2, error = $3
		WHERE id = $1 AND status = 'PENDING';
	`

	if _, err := ext.Exec(ctx, query, eventID, availableAt, reason); err != nil {
		return wrap("failed to mark outbox event as failed", err)
	}

	return nil
}

func (r *OutboxRepository) Stats(ctx context.Context, ext RepoExtension) (*model.OutboxStats, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT count(*), min(created_at)
		FROM messages.outbox_events
		WHERE status = 'PENDING';
	`

	var stats model.OutboxStats

	if err := ext.QueryRow(ctx, query).Scan(&stats.Pending, &stats.OldestPendingAt); err != nil {
		return nil, wrap("failed to select outbox stats", err)
	}

	return &stats, nil
}
