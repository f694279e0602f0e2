package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/model"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
	}
}

// InsertMessage stores the message and fills CreatedAt with the server timestamp.
func (r *MessageRepository) InsertMessage(ctx context.Context, ext RepoExtension, message *model.Message) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO chat.messages (id, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;
	`

	if err := ext.QueryRow(
		ctx,
		query,
		message.ID,
		message.ConversationID,
		message.SenderID,
		message.Content,
	).Scan(&message.CreatedAt); err != nil {
		return wrap("failed to insert message", err)
	}

	return nil
}

func (r *MessageRepository) SelectMessage(ctx context.Context, ext RepoExtension, messageID uuid.UUID) (*model.Message, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM chat.messages
		WHERE id = $1;
	`

	var message model.Message

	if err := ext.QueryRow(ctx, query, messageID).Scan(
		&message.ID,
		&message.ConversationID,
		&message.SenderID,
		&message.Content,
		&message.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}

		return nil, wrap("failed to select message", err)
	}

	return &message, nil
}

// SelectMessages returns the newest page.Limit messages older than page.Before, oldest first.
// page.Before must belong to the same conversation; an unknown cursor yields an empty page.
func (r *MessageRepository) SelectMessages(ctx context.Context, ext RepoExtension, conversationID uuid.UUID, page model.MessagePage) ([]model.Message, error) {
	if ext == nil {
		ext = r.db
	}

	const latest = `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM chat.messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2;
	`

	const before = `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.created_at
		FROM chat.messages m
		JOIN chat.messages c ON c.id = $2 AND c.conversation_id = m.conversation_id
		WHERE m.conversation_id = $1
		  AND (m.created_at, m.id) < (c.created_at, c.id)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $3;
	`

	var (
		rows pgx.Rows
		err  error
	)

	if page.Before == nil {
		rows, err = ext.Query(ctx, latest, conversationID, page.Limit)
	} else {
		rows, err = ext.Query(ctx, before, conversationID, *page.Before, page.Limit)
	}

	if err != nil {
		return nil, wrap("failed to select messages", err)
	}

	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Message, error) {
		var m model.Message
		err := row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt)

		return m, err
	})
	if err != nil {
		return nil, wrap("failed to collect messages", err)
	}

	slices.Reverse(messages)

	return messages, nil
}
