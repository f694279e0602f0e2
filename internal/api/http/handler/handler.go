package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/model"
)

const (
	StatusErr           = "error"
	StatusSuccess       = "success"
	StatusNotAvailable  = "not available"
	StatusNotPermitted  = "not permitted"
	StatusForbidden     = "forbidden"
	StatusNotFound      = "not_found"
	StatusOK            = "ok"
	StatusInvalidInput  = "invalid_input"
	StatusInternalError = "internal_error"
)

type BaseHandler struct{}

func (h *BaseHandler) GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDValue, exists := c.Get(model.UserIDKey)
	if !exists {
		return uuid.Nil, apperrors.ErrContextValueDoesNotExist
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.ErrContextValueInvalidType
	}

	return userID, nil
}

// userID writes a 401 and returns false when the request carries no authenticated user.
func (h *BaseHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := h.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ResponseWithMessage{
			Status:  StatusNotPermitted,
			Message: "user not authorized",
		})

		return uuid.Nil, false
	}

	return userID, true
}

// ResponseWithData
// @Description Success envelope carrying a payload.
type ResponseWithData struct {
	Status string `json:"status"` // Request outcome
	Data   any    `json:"data"`   // Payload
} // @Name _ResponseWithData

// ResponseWithMetaAndData
// @Description Success envelope carrying a payload plus paging metadata.
type ResponseWithMetaAndData struct {
	Status   string `json:"status"`    // Request outcome
	Data     any    `json:"data"`      // Payload
	Metadata any    `json:"_metadata"` // Metadata
} // @Name _ResponseWithMetaAndData

// ResponseWithMessage
// @Description Envelope carrying only a human readable message.
type ResponseWithMessage struct {
	Status  string `json:"status"`  // Request outcome
	Message string `json:"message"` // Human readable message
} // @Name _ResponseWithMessage

// CursorMetadata
// @Description Keyset paging: pass NextBefore as ?before= to fetch older messages.
type CursorMetadata struct {
	Limit      int        `json:"limit" example:"50"`
	NextBefore *uuid.UUID `json:"nextBefore,omitempty"`
} // @Name _CursorMetadata

// statusOf maps the error taxonomy onto an HTTP status and envelope status.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, StatusInvalidInput
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, StatusNotPermitted
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, StatusNotFound
	case errors.Is(err, apperrors.ErrTransientStorage):
		return http.StatusServiceUnavailable, StatusNotAvailable
	default:
		return http.StatusInternalServerError, StatusInternalError
	}
}

func writeError(c *gin.Context, log *zap.Logger, err error) {
	code, status := statusOf(err)

	message := err.Error()
	if code >= http.StatusInternalServerError {
		log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))

		if code == http.StatusInternalServerError {
			message = "internal error"
		}
	}

	c.JSON(code, ResponseWithMessage{
		Status:  status,
		Message: message,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ResponseWithMessage{
		Status:  StatusInvalidInput,
		Message: message,
	})
}

func NoMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ResponseWithMessage{
		Status:  StatusNotAvailable,
		Message: "method not allowed on this endpoint",
	})
}

func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, ResponseWithMessage{
		Status:  StatusNotAvailable,
		Message: "page not found",
	})
}
