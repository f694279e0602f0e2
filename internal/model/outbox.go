package model

import (
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "PENDING"
	OutboxStatusSent    OutboxStatus = "SENT"
)

type OutboxEvent struct {
	ID             uuid.UUID    `db:"id"`
	Topic          string       `db:"topic"`
	Payload        []byte       `db:"payload"`
	Status         OutboxStatus `db:"status"`
	Attempts       int          `db:"attempts"`
	AvailableAt    time.Time    `db:"available_at"`
	Error          *string      `db:"error"`
	IdempotencyKey *string      `db:"idempotency_key"`
	CreatedAt      time.Time    `db:"created_at"`
	SentAt         *time.Time   `db:"sent_at"`
}

type OutboxStats struct {
	Pending         int64
	OldestPendingAt *time.Time
}
