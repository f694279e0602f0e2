package outbox

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"messaging-back/internal/apperrors"
)

const TopicMessageCreated = "chat.message.created"

// Payload is the typed body of an outbox event. Each topic has exactly one payload type.
type Payload interface {
	Topic() string
	Validate() error
}

type MessageCreatedPayload struct {
	MessageID      uuid.UUID `json:"messageId"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
}

func (MessageCreatedPayload) Topic() string {
	return TopicMessageCreated
}

func (p MessageCreatedPayload) Validate() error {
	if p.MessageID == uuid.Nil || p.ConversationID == uuid.Nil || p.SenderID == uuid.Nil {
		return fmt.Errorf("%w: %s requires messageId, conversationId and senderId", apperrors.ErrInvalidPayload, TopicMessageCreated)
	}

	return nil
}

// RawPayload carries events of topics this process has no codec for.
type RawPayload struct {
	Name string
	Data json.RawMessage
}

func (p RawPayload) Topic() string {
	return p.Name
}

func (p RawPayload) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: topic is empty", apperrors.ErrInvalidPayload)
	}

	if !json.Valid(p.Data) {
		return fmt.Errorf("%w: %s payload is not valid json", apperrors.ErrInvalidPayload, p.Name)
	}

	return nil
}

func (p RawPayload) MarshalJSON() ([]byte, error) {
	return p.Data, nil
}

type decodeFunc func(data []byte) (Payload, error)

var codecs = map[string]decodeFunc{
	TopicMessageCreated: decodeAs[MessageCreatedPayload],
}

// Decode turns a stored payload back into its typed form.
func Decode(topic string, data []byte) (Payload, error) {
	decode, ok := codecs[topic]
	if !ok {
		raw := RawPayload{Name: topic, Data: json.RawMessage(data)}

		return raw, raw.Validate()
	}

	return decode(data)
}

func Encode(p Payload) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", p.Topic(), err)
	}

	return data, nil
}

func decodeAs[P Payload](data []byte) (Payload, error) {
	var p P

	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidPayload, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}
