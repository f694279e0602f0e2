package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/model"
	"messaging-back/internal/msg/outbox"
	"messaging-back/internal/repository"
)

const DefaultMaxMessageLength = 4000

type MessageRepository interface {
	InsertMessage(ctx context.Context, ext repository.RepoExtension, message *model.Message) error
	SelectMessage(ctx context.Context, ext repository.RepoExtension, messageID uuid.UUID) (*model.Message, error)
	SelectMessages(ctx context.Context, ext repository.RepoExtension, conversationID uuid.UUID, page model.MessagePage) ([]model.Message, error)
}

type MetaRepository interface {
	UpsertMeta(ctx context.Context, ext repository.RepoExtension, meta *model.ConversationMeta) error
}

type OutboxAppender interface {
	Append(ctx context.Context, ext repository.RepoExtension, payload outbox.Payload, idempotencyKey *string) (*model.OutboxEvent, error)
}

type ParticipantGuard interface {
	AssertParticipant(ctx context.Context, userID, conversationID uuid.UUID) error
}

type MessageService struct {
	log         *zap.Logger
	tx          TxManager
	messageRepo MessageRepository
	metaRepo    MetaRepository
	outbox      OutboxAppender
	guard       ParticipantGuard
	maxLength   int
}

func NewMessageService(
	log *zap.Logger,
	tx TxManager,
	messageRepo MessageRepository,
	metaRepo MetaRepository,
	outbox OutboxAppender,
	guard ParticipantGuard,
	maxLength int,
) *MessageService {
	if maxLength <= 0 {
		maxLength = DefaultMaxMessageLength
	}

	return &MessageService{
		log:         log,
		tx:          tx,
		messageRepo: messageRepo,
		metaRepo:    metaRepo,
		outbox:      outbox,
		guard:       guard,
		maxLength:   maxLength,
	}
}

// CreateMessage writes the message, moves the conversation meta and appends chat.message.created in one transaction.
// Broadcasting is left to the caller.
func (s *MessageService) CreateMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*model.Message, error) {
	if err := s.guard.AssertParticipant(ctx, senderID, conversationID); err != nil {
		return nil, err
	}

	if err := s.validateContent(content); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}

	message := &model.Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	if err := s.tx.WithTx(ctx, func(ctx context.Context, ext repository.RepoExtension) error {
		if err := s.messageRepo.InsertMessage(ctx, ext, message); err != nil {
			return err
		}

		if err := s.metaRepo.UpsertMeta(ctx, ext, &model.ConversationMeta{
			ConversationID: conversationID,
			LastMessageAt:  message.CreatedAt,
			LastMessageID:  &message.ID,
		}); err != nil {
			return err
		}

		key := "message:" + message.ID.String()

		_, err := s.outbox.Append(ctx, ext, outbox.MessageCreatedPayload{
			MessageID:      message.ID,
			ConversationID: conversationID,
			SenderID:       senderID,
		}, &key)

		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.log.Debug("Message created",
		zap.String("message_id", message.ID.String()),
		zap.String("conversation_id", conversationID.String()),
	)

	return message, nil
}

// ListMessages returns a page in ascending order. Before must be a message of the same conversation.
func (s *MessageService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID, page model.MessagePage) ([]model.Message, error) {
	if err := s.guard.AssertParticipant(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	if page.Before != nil {
		cursor, err := s.messageRepo.SelectMessage(ctx, nil, *page.Before)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrInvalidCursor
			}

			return nil, err
		}

		if cursor.ConversationID != conversationID {
			return nil, apperrors.ErrInvalidCursor
		}
	}

	messages, err := s.messageRepo.SelectMessages(ctx, nil, conversationID, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

func (s *MessageService) GetMessage(ctx context.Context, messageID uuid.UUID) (*model.Message, error) {
	return s.messageRepo.SelectMessage(ctx, nil, messageID)
}

func (s *MessageService) validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperrors.ErrContentRequired
	}

	if utf8.RuneCountInString(content) > s.maxLength {
		return fmt.Errorf("%w: at most %d characters", apperrors.ErrContentTooLong, s.maxLength)
	}

	return nil
}
