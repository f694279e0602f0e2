package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"messaging-back/internal/model"
)

type ReceiptRepository struct {
	db *pgxpool.Pool
}

func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{
		db: db,
	}
}

// UpsertReceipt is a single create-or-update statement; marking twice moves read_at.
func (r *ReceiptRepository) UpsertReceipt(ctx context.Context, ext RepoExtension, receipt *model.Receipt) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO chat.message_read_receipts (message_id, user_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (message_id, user_id) DO UPDATE SET read_at = EXCLUDED.read_at
		RETURNING read_at;
	`

	if err := ext.QueryRow(ctx, query, receipt.MessageID, receipt.UserID, receipt.ReadAt).Scan(&receipt.ReadAt); err != nil {
		return wrap("failed to upsert receipt", err)
	}

	return nil
}

func (r *ReceiptRepository) SelectReceipts(ctx context.Context, ext RepoExtension, messageID uuid.UUID) ([]model.Receipt, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT r.message_id, r.user_id, m.conversation_id, r.read_at
		FROM chat.message_read_receipts r
		JOIN chat.messages m ON m.id = r.message_id
		WHERE r.message_id = $1
		ORDER BY r.read_at, r.user_id;
	`

	rows, err := ext.Query(ctx, query, messageID)
	if err != nil {
		return nil, wrap("failed to select receipts", err)
	}

	receipts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Receipt, error) {
		var rc model.Receipt
		err := row.Scan(&rc.MessageID, &rc.UserID, &rc.ConversationID, &rc.ReadAt)

		return rc, err
	})
	if err != nil {
		return nil, wrap("failed to collect receipts", err)
	}

	return receipts, nil
}
