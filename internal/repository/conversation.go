package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/model"
)

type ConversationRepository struct {
	db *pgxpool.Pool
}

func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{
		db: db,
	}
}

func (r *ConversationRepository) InsertConversation(ctx context.Context, ext RepoExtension, conversation *model.Conversation) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO chat.conversations (id, service_id)
		VALUES ($1, $2)
		RETURNING created_at;
	`

	if err := ext.QueryRow(ctx, query, conversation.ID, conversation.ServiceID).Scan(&conversation.CreatedAt); err != nil {
		return wrap("failed to insert conversation", err)
	}

	return nil
}

func (r *ConversationRepository) InsertParticipant(ctx context.Context, ext RepoExtension, participant *model.Participant) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO chat.conversation_participants (conversation_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (conversation_id, user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING joined_at;
	`

	if err := ext.QueryRow(ctx, query, participant.ConversationID, participant.UserID).Scan(&participant.JoinedAt); err != nil {
		return wrap("failed to insert participant", err)
	}

	return nil
}

// EnsureMeta creates the meta row when it does not exist yet and returns the stored row either way.
func (r *ConversationRepository) EnsureMeta(ctx context.Context, ext RepoExtension, conversationID uuid.UUID, lastMessageAt time.Time) (*model.ConversationMeta, error) {
	if ext == nil {
		ext = r.db
	}

	const insert = `
		INSERT INTO chat.conversation_meta (conversation_id, last_message_at)
		VALUES ($1, $2)
		ON CONFLICT (conversation_id) DO NOTHING;
	`

	if _, err := ext.Exec(ctx, insert, conversationID, lastMessageAt); err != nil {
		return nil, wrap("failed to insert conversation meta", err)
	}

	return r.SelectMeta(ctx, ext, conversationID)
}

// UpsertMeta moves the meta forward to the given message. An older message never overwrites a newer one;
// equal timestamps are ordered by id.
func (r *ConversationRepository) UpsertMeta(ctx context.Context, ext RepoExtension, meta *model.ConversationMeta) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO chat.conversation_meta (conversation_id, last_message_at, last_message_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id) DO UPDATE
		SET last_message_at = EXCLUDED.last_message_at,
		    last_message_id = EXCLUDED.last_message_id
		WHERE chat.conversation_meta.last_message_at < EXCLUDED.last_message_at
		   OR (chat.conversation_meta.last_message_at = EXCLUDED.last_message_at
		       AND COALESCE(chat.conversation_meta.last_message_id, '00000000-0000-0000-0000-000000000000'::uuid) <= EXCLUDED.last_message_id);
	`

	if _, err := ext.Exec(ctx, query, meta.ConversationID, meta.LastMessageAt, meta.LastMessageID); err != nil {
		return wrap("failed to upsert conversation meta", err)
	}

	return nil
}

func (r *ConversationRepository) SelectMeta(ctx context.Context, ext RepoExtension, conversationID uuid.UUID) (*model.ConversationMeta, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT conversation_id, last_message_at, last_message_id
		FROM chat.conversation_meta
		WHERE conversation_id = $1;
	`

	var meta model.ConversationMeta

	if err := ext.QueryRow(ctx, query, conversationID).Scan(
		&meta.ConversationID,
		&meta.LastMessageAt,
		&meta.LastMessageID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}

		return nil, wrap("failed to select conversation meta", err)
	}

	return &meta, nil
}

func (r *ConversationRepository) SelectConversation(ctx context.Context, ext RepoExtension, conversationID uuid.UUID) (*model.Conversation, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT c.id, c.service_id, c.created_at, m.last_message_at, m.last_message_id
		FROM chat.conversations c
		LEFT JOIN chat.conversation_meta m ON m.conversation_id = c.id
		WHERE c.id = $1;
	`

	conversation, err := scanConversation(ext.QueryRow(ctx, query, conversationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}

		return nil, wrap("failed to select conversation", err)
	}

	participants, err := r.SelectParticipants(ctx, ext, []uuid.UUID{conversationID})
	if err != nil {
		return nil, err
	}

	conversation.Participants = participants[conversationID]

	return conversation, nil
}

// SelectUserConversations lists every conversation of the user, most recently active first.
func (r *ConversationRepository) SelectUserConversations(ctx context.Context, ext RepoExtension, userID uuid.UUID) ([]model.Conversation, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT c.id, c.service_id, c.created_at, m.last_message_at, m.last_message_id
		FROM chat.conversations c
		JOIN chat.conversation_participants p ON p.conversation_id = c.id
		LEFT JOIN chat.conversation_meta m ON m.conversation_id = c.id
		WHERE p.user_id = $1
		ORDER BY COALESCE(m.last_message_at, c.created_at) DESC, c.created_at DESC, c.id DESC;
	`

	rows, err := ext.Query(ctx, query, userID)
	if err != nil {
		return nil, wrap("failed to select user conversations", err)
	}

	defer rows.Close()

	conversations := make([]model.Conversation, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			return nil, wrap("failed to scan conversation", err)
		}

		conversations = append(conversations, *conversation)
		ids = append(ids, conversation.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap("failed to iterate conversations", err)
	}

	if len(ids) == 0 {
		return conversations, nil
	}

	participants, err := r.SelectParticipants(ctx, ext, ids)
	if err != nil {
		return nil, err
	}

	for i := range conversations {
		conversations[i].Participants = participants[conversations[i].ID]
	}

	return conversations, nil
}

// SelectParticipants groups participants by conversation, ordered by join time.
func (r *ConversationRepository) SelectParticipants(ctx context.Context, ext RepoExtension, conversationIDs []uuid.UUID) (map[uuid.UUID][]model.Participant, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT conversation_id, user_id, joined_at
		FROM chat.conversation_participants
		WHERE conversation_id = ANY($1)
		ORDER BY joined_at, user_id;
	`

	rows, err := ext.Query(ctx, query, conversationIDs)
	if err != nil {
		return nil, wrap("failed to select participants", err)
	}

	defer rows.Close()

	result := make(map[uuid.UUID][]model.Participant, len(conversationIDs))

	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ConversationID, &p.UserID, &p.JoinedAt); err != nil {
			return nil, wrap("failed to scan participant", err)
		}

		result[p.ConversationID] = append(result[p.ConversationID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap("failed to iterate participants", err)
	}

	return result, nil
}

// SelectParticipantIDs returns ErrConversationNotFound for an unknown conversation,
// since a conversation always has at least one participant.
func (r *ConversationRepository) SelectParticipantIDs(ctx context.Context, ext RepoExtension, conversationID uuid.UUID) ([]uuid.UUID, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT user_id
		FROM chat.conversation_participants
		WHERE conversation_id = $1
		ORDER BY joined_at, user_id;
	`

	rows, err := ext.Query(ctx, query, conversationID)
	if err != nil {
		return nil, wrap("failed to select participant ids", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, wrap("failed to collect participant ids", err)
	}

	if len(ids) == 0 {
		return nil, apperrors.ErrConversationNotFound
	}

	return ids, nil
}

func scanConversation(row pgx.Row) (*model.Conversation, error) {
	var (
		conversation  model.Conversation
		lastMessageAt *time.Time
		lastMessageID *uuid.UUID
	)

	if err := row.Scan(
		&conversation.ID,
		&conversation.ServiceID,
		&conversation.CreatedAt,
		&lastMessageAt,
		&lastMessageID,
	); err != nil {
		return nil, err
	}

	if lastMessageAt != nil {
		conversation.Meta = &model.ConversationMeta{
			ConversationID: conversation.ID,
			LastMessageAt:  *lastMessageAt,
			LastMessageID:  lastMessageID,
		}
	}

	return &conversation, nil
}
