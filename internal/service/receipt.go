package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-back/internal/metrics"
	"messaging-back/internal/model"
	"messaging-back/internal/repository"
)

type ReceiptRepository interface {
	UpsertReceipt(ctx context.Context, ext repository.RepoExtension, receipt *model.Receipt) error
	SelectReceipts(ctx context.Context, ext repository.RepoExtension, messageID uuid.UUID) ([]model.Receipt, error)
}

type MessageLookup interface {
	GetMessage(ctx context.Context, messageID uuid.UUID) (*model.Message, error)
}

type ReceiptService struct {
	log         *zap.Logger
	receiptRepo ReceiptRepository
	messages    MessageLookup
	guard       ParticipantGuard
	now         func() time.Time
}

type ReceiptOption func(s *ReceiptService)

func WithReceiptClock(now func() time.Time) ReceiptOption {
	return func(s *ReceiptService) {
		s.now = now
	}
}

func NewReceiptService(log *zap.Logger, receiptRepo ReceiptRepository, messages MessageLookup, guard ParticipantGuard, opts ...ReceiptOption) *ReceiptService {
	s := &ReceiptService{
		log:         log,
		receiptRepo: receiptRepo,
		messages:    messages,
		guard:       guard,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MarkRead records that userID has read messageID. Calling it again only moves ReadAt.
func (s *ReceiptService) MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*model.Receipt, error) {
	message, err := s.messages.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.AssertParticipant(ctx, userID, message.ConversationID); err != nil {
		return nil, err
	}

	receipt := &model.Receipt{
		MessageID:      messageID,
		UserID:         userID,
		ConversationID: message.ConversationID,
		ReadAt:         s.now().UTC(),
	}

	if err := s.receiptRepo.UpsertReceipt(ctx, nil, receipt); err != nil {
		return nil, fmt.Errorf("failed to mark message as read: %w", err)
	}

	metrics.ReceiptsMarked.Inc()

	return receipt, nil
}

func (s *ReceiptService) ListReceipts(ctx context.Context, userID, messageID uuid.UUID) ([]model.Receipt, error) {
	message, err := s.messages.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.AssertParticipant(ctx, userID, message.ConversationID); err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.SelectReceipts(ctx, nil, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return receipts, nil
}
