package model

import (
	"time"

	"github.com/google/uuid"
)

// Conversation
// @Description Conversation with its participants and recency metadata.
type Conversation struct {
	ID           uuid.UUID         `json:"id" example:"0199c5a4-7b1e-7c3a-9f00-5b2f8e0d1a11"`
	ServiceID    *uuid.UUID        `json:"serviceId,omitempty"` // ServiceID optional external service record
	CreatedAt    time.Time         `json:"createdAt"`
	Participants []Participant     `json:"participants"`
	Meta         *ConversationMeta `json:"meta,omitempty"`
} // @Name Conversation

// Participant
// @Description Membership of a user in a conversation.
type Participant struct {
	ConversationID uuid.UUID `json:"conversationId"`
	UserID         uuid.UUID `json:"userId"`
	JoinedAt       time.Time `json:"joinedAt"`
} // @Name Participant

// ConversationMeta
// @Description Recency data used to order conversation listings.
type ConversationMeta struct {
	ConversationID uuid.UUID  `json:"conversationId"`
	LastMessageAt  time.Time  `json:"lastMessageAt"`
	LastMessageID  *uuid.UUID `json:"lastMessageId,omitempty"`
} // @Name ConversationMeta

// CreateConversationRequest
// @Description Body of POST /conversations. The caller joins a non-empty participant list.
type CreateConversationRequest struct {
	ServiceID      *uuid.UUID  `json:"serviceId,omitempty"`
	ParticipantIDs []uuid.UUID `json:"participantIds"`
} // @Name CreateConversationRequest

func (c *Conversation) ParticipantIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Participants))
	for _, p := range c.Participants {
		ids = append(ids, p.UserID)
	}

	return ids
}
