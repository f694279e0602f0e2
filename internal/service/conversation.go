package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/metrics"
	"messaging-back/internal/model"
	"messaging-back/internal/repository"
)

//go:generate mockgen -source=conversation.go -destination=mocks/conversation.go -package=mocks
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, ext repository.RepoExtension) error) error
}

type ConversationRepository interface {
	InsertConversation(ctx context.Context, ext repository.RepoExtension, conversation *model.Conversation) error
	InsertParticipant(ctx context.Context, ext repository.RepoExtension, participant *model.Participant) error
	EnsureMeta(ctx context.Context, ext repository.RepoExtension, conversationID uuid.UUID, lastMessageAt time.Time) (*model.ConversationMeta, error)
	SelectConversation(ctx context.Context, ext repository.RepoExtension, conversationID uuid.UUID) (*model.Conversation, error)
	SelectUserConversations(ctx context.Context, ext repository.RepoExtension, userID uuid.UUID) ([]model.Conversation, error)
	SelectParticipantIDs(ctx context.Context, ext repository.RepoExtension, conversationID uuid.UUID) ([]uuid.UUID, error)
}

type ParticipantCache interface {
	Get(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, bool, error)
	Set(ctx context.Context, conversationID uuid.UUID, userIDs []uuid.UUID) error
}

type ConversationService struct {
	log   *zap.Logger
	tx    TxManager
	repo  ConversationRepository
	cache ParticipantCache
}

// NewConversationService accepts a nil cache; every participant lookup then goes to the database.
func NewConversationService(log *zap.Logger, tx TxManager, repo ConversationRepository, cache ParticipantCache) *ConversationService {
	return &ConversationService{
		log:   log,
		tx:    tx,
		repo:  repo,
		cache: cache,
	}
}

// CreateConversation stores the conversation, its participants and its meta row atomically.
// Duplicate participant ids are collapsed.
func (s *ConversationService) CreateConversation(ctx context.Context, serviceID *uuid.UUID, participantIDs []uuid.UUID) (*model.Conversation, error) {
	participantIDs = dedupe(participantIDs)
	if len(participantIDs) == 0 {
		return nil, apperrors.ErrParticipantIDsRequired
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate conversation id: %w", err)
	}

	conversation := &model.Conversation{
		ID:        id,
		ServiceID: serviceID,
	}

	if err := s.tx.WithTx(ctx, func(ctx context.Context, ext repository.RepoExtension) error {
		if err := s.repo.InsertConversation(ctx, ext, conversation); err != nil {
			return err
		}

		conversation.Participants = make([]model.Participant, 0, len(participantIDs))

		for _, userID := range participantIDs {
			participant := model.Participant{
				ConversationID: conversation.ID,
				UserID:         userID,
			}

			if err := s.repo.InsertParticipant(ctx, ext, &participant); err != nil {
				return err
			}

			conversation.Participants = append(conversation.Participants, participant)
		}

		meta, err := s.repo.EnsureMeta(ctx, ext, conversation.ID, conversation.CreatedAt)
		if err != nil {
			return err
		}

		conversation.Meta = meta

		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	metrics.ConversationsCreated.Inc()
	s.cacheParticipants(ctx, conversation.ID, participantIDs)

	s.log.Debug("Conversation created",
		zap.String("conversation_id", conversation.ID.String()),
		zap.Int("participants", len(participantIDs)),
	)

	return conversation, nil
}

func (s *ConversationService) ListUserConversations(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error) {
	conversations, err := s.repo.SelectUserConversations(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user conversations: %w", err)
	}

	return conversations, nil
}

// GetConversation returns ErrConversationNotFound for an unknown id and ErrNotInConversation for an outsider.
func (s *ConversationService) GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*model.Conversation, error) {
	conversation, err := s.repo.SelectConversation(ctx, nil, conversationID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(conversation.ParticipantIDs(), userID) {
		return nil, apperrors.ErrNotInConversation
	}

	return conversation, nil
}

// GetParticipantIDs reads through the cache. Participants never change, so a cached set is never stale.
func (s *ConversationService) GetParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	if s.cache != nil {
		ids, ok, err := s.cache.Get(ctx, conversationID)

		switch {
		case err != nil:
			metrics.ParticipantCacheLookups.WithLabelValues("error").Inc()
			s.log.Warn("Participant cache read failed, falling back to database",
				zap.String("conversation_id", conversationID.String()),
				zap.Error(err),
			)
		case ok:
			metrics.ParticipantCacheLookups.WithLabelValues("hit").Inc()
			return ids, nil
		default:
			metrics.ParticipantCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	ids, err := s.repo.SelectParticipantIDs(ctx, nil, conversationID)
	if err != nil {
		return nil, err
	}

	s.cacheParticipants(ctx, conversationID, ids)

	return ids, nil
}

// AssertParticipant fails with ErrNotInConversation unless userID belongs to the conversation.
// An unknown conversation is reported the same way.
func (s *ConversationService) AssertParticipant(ctx context.Context, userID, conversationID uuid.UUID) error {
	ids, err := s.GetParticipantIDs(ctx, conversationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotInConversation
		}

		return err
	}

	if !slices.Contains(ids, userID) {
		return apperrors.ErrNotInConversation
	}

	return nil
}

func (s *ConversationService) cacheParticipants(ctx context.Context, conversationID uuid.UUID, ids []uuid.UUID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, conversationID, ids); err != nil {
		s.log.Warn("Failed to cache participants",
			zap.String("conversation_id", conversationID.String()),
			zap.Error(err),
		)
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
