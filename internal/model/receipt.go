package model

import (
	"time"

	"github.com/google/uuid"
)

// Receipt
// @Description Read marker of a user on a message.
type Receipt struct {
	MessageID      uuid.UUID `json:"messageId"`
	UserID         uuid.UUID `json:"userId"`
	ConversationID uuid.UUID `json:"conversationId"`
	ReadAt         time.Time `json:"readAt"`
} // @Name Receipt

// MarkReadRequest
// @Description Body of POST /receipts.
type MarkReadRequest struct {
	MessageID uuid.UUID `json:"messageId" binding:"required"`
} // @Name MarkReadRequest
