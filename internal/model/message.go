package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMessagePageSize = 50
	MaxMessagePageSize     = 200
)

// Message
// @Description A single chat message. Messages are never edited or deleted.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	Content        string    `json:"content" example:"hello there"`
	CreatedAt      time.Time `json:"createdAt"`
} // @Name Message

// CreateMessageRequest
// @Description Body of POST /messages.
type CreateMessageRequest struct {
	ConversationID uuid.UUID `json:"conversationId" binding:"required"`
	Content        string    `json:"content" binding:"required" example:"hello there"`
} // @Name CreateMessageRequest

// CreateMessageResponse
// @Description Identifier and server timestamp of a stored message.
type CreateMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
} // @Name CreateMessageResponse

// MessagePage selects messages strictly older than Before (when set), newest Limit of them.
type MessagePage struct {
	Before *uuid.UUID
	Limit  int
}

// Normalize applies the default page size and the upper bound.
func (p MessagePage) Normalize() MessagePage {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultMessagePageSize
	case p.Limit > MaxMessagePageSize:
		p.Limit = MaxMessagePageSize
	}

	return p
}
