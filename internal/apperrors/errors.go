package apperrors

import (
	"errors"
	"fmt"
)

var ErrShutdown = errors.New("shutdown error")

// Kinds. Every domain error wraps exactly one of them.
var (
	ErrValidation       = errors.New("validation error")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrTransientStorage = errors.New("transient storage error")
)

var (
	ErrParticipantIDsRequired = fmt.Errorf("%w: participant_ids_required", ErrValidation)
	ErrContentRequired        = fmt.Errorf("%w: content_required", ErrValidation)
	ErrContentTooLong         = fmt.Errorf("%w: content_too_long", ErrValidation)
	ErrInvalidCursor          = fmt.Errorf("%w: invalid_cursor", ErrValidation)
	ErrInvalidPayload         = fmt.Errorf("%w: invalid_payload", ErrValidation)

	ErrNotInConversation = fmt.Errorf("%w: not_in_conversation", ErrForbidden)

	ErrConversationNotFound = fmt.Errorf("%w: conversation_not_found", ErrNotFound)
	ErrMessageNotFound      = fmt.Errorf("%w: message_not_found", ErrNotFound)

	ErrTokenMissing = fmt.Errorf("%w: token_missing", ErrUnauthenticated)
	ErrTokenInvalid = fmt.Errorf("%w: token_invalid", ErrUnauthenticated)

	ErrContextValueDoesNotExist = errors.New("context value does not exist")
	ErrContextValueInvalidType  = errors.New("invalid context value type")
)

// HandlerError is what the outbox dispatcher records when a handler fails or panics.
type HandlerError struct {
	Topic   string
	EventID string
	Cause   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s failed for event %s: %v", e.Topic, e.EventID, e.Cause)
}

func (e *HandlerError) Unwrap() error {
	return e.Cause
}

// Transient wraps err so errors.Is(err, ErrTransientStorage) holds while keeping the cause.
func Transient(err error) error {
	return fmt.Errorf("%w: %w", ErrTransientStorage, err)
}

// Code is the short machine-readable error code used on the wire.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "invalid_input"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrTransientStorage):
		return "unavailable"
	default:
		return "internal_error"
	}
}
