package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"messaging-back/internal/model"
)

// Inbound events.
const (
	EventConversationJoin  = "conversation:join"
	EventConversationLeave = "conversation:leave"
	EventTyping            = "typing"
	EventMessageSend       = "message:send"
	EventReceiptRead       = "receipt:read"
)

// Outbound events.
const (
	EventConversationJoined  = "conversation:joined"
	EventConversationLeft    = "conversation:left"
	EventConversationNew     = "conversation:new"
	EventConversationUpdated = "conversation:updated"
	EventMessageNew          = "message:new"
	EventMessageAck          = "message:ack"
	EventReceiptNew          = "receipt:new"
	EventPresence            = "presence"
	EventError               = "error"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Frame is the envelope of every websocket text message in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func encodeFrame(event string, data any) ([]byte, error) {
	return json.Marshal(outboundFrame{Event: event, Data: data})
}

type ConversationRequest struct {
	ConversationID uuid.UUID `json:"conversationId"`
}

type TypingRequest struct {
	ConversationID uuid.UUID `json:"conversationId"`
	IsTyping       bool      `json:"isTyping"`
}

type SendMessageRequest struct {
	ConversationID uuid.UUID `json:"conversationId"`
	Content        string    `json:"content"`
	CorrelationID  *string   `json:"correlationId,omitempty"`
}

type ReadRequest struct {
	MessageID uuid.UUID `json:"messageId"`
}

type ConversationEvent struct {
	ConversationID uuid.UUID `json:"conversationId"`
}

type TypingEvent struct {
	ConversationID uuid.UUID `json:"conversationId"`
	UserID         uuid.UUID `json:"userId"`
	IsTyping       bool      `json:"isTyping"`
}

type MessageNewEvent struct {
	Message model.Message `json:"message"`
}

type MessageAck struct {
	OK            bool      `json:"ok"`
	CorrelationID *string   `json:"correlationId"`
	MessageID     uuid.UUID `json:"messageId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ReceiptNewEvent struct {
	MessageID      uuid.UUID `json:"messageId"`
	ConversationID uuid.UUID `json:"conversationId"`
	UserID         uuid.UUID `json:"userId"`
	ReadAt         time.Time `json:"readAt"`
}

type PresenceEvent struct {
	UserID uuid.UUID `json:"userId"`
	Status string    `json:"status"`
}

type ConversationNewEvent struct {
	Conversation model.Conversation `json:"conversation"`
}

type ConversationUpdatedEvent struct {
	ConversationID uuid.UUID `json:"conversationId"`
	MessageID      uuid.UUID `json:"messageId"`
}

// ErrorEvent reports a failed inbound frame. Scope is the inbound event name.
type ErrorEvent struct {
	Scope         string  `json:"scope"`
	Code          string  `json:"code"`
	Message       string  `json:"message"`
	CorrelationID *string `json:"correlationId,omitempty"`
}
