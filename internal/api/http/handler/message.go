package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-back/internal/metrics"
	"messaging-back/internal/model"
)

//go:generate mockgen -source=message.go -destination=mocks/message.go -package=mocks
type MessageService interface {
	CreateMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*model.Message, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID, page model.MessagePage) ([]model.Message, error)
}

type MessageNotifier interface {
	MessageCreated(message *model.Message)
}

type MessageHandler struct {
	BaseHandler

	log      *zap.Logger
	svc      MessageService
	notifier MessageNotifier
}

func NewMessageHandler(log *zap.Logger, svc MessageService, notifier MessageNotifier) *MessageHandler {
	return &MessageHandler{
		BaseHandler: BaseHandler{},
		log:         log,
		svc:         svc,
		notifier:    notifier,
	}
}

// CreateMessage
// @Summary Send a message.
// @Description Stores the message and broadcasts message:new to the conversation room.
// @Tags Messages
// @Security AccessToken
// @Accept json
// @Produce json
// @Param payload body model.CreateMessageRequest true "Message"
// @Success 201 {object} ResponseWithData{data=model.CreateMessageResponse} "Created"
// @Failure 400 {object} ResponseWithMessage "Empty or too long content"
// @Failure 401 {object} ResponseWithMessage "Invalid or missing token"
// @Failure 403 {object} ResponseWithMessage "Not a participant"
// @Failure 503 {object} ResponseWithMessage "Storage unavailable"
// @Router /messages [post]
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	message, err := h.svc.CreateMessage(ctx, req.ConversationID, userID, req.Content)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	metrics.MessagesCreated.WithLabelValues("http").Inc()

	h.notifier.MessageCreated(message)

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data: model.CreateMessageResponse{
			ID:        message.ID,
			CreatedAt: message.CreatedAt,
		},
	})
}

// ListMessages
// @Summary List messages of a conversation.
// @Description Oldest first. Without before the newest page is returned.
// @Tags Messages
// @Security AccessToken
// @Produce json
// @Param conversation_id path string true "Conversation UUID"
// @Param before query string false "Return messages older than this message id"
// @Param limit query int false "Page size (default 50, max 200)"
// @Success 200 {object} ResponseWithMetaAndData{data=[]model.Message,_metadata=CursorMetadata} "Success"
// @Failure 400 {object} ResponseWithMessage "Invalid cursor or limit"
// @Failure 403 {object} ResponseWithMessage "Not a participant"
// @Router /conversations/{conversation_id}/messages [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.userID(c)
	if !ok {
		return
	}

	conversationID, err := uuid.Parse(c.Param("conversation_id"))
	if err != nil {
		badRequest(c, "invalid conversation id")
		return
	}

	var page model.MessagePage

	if before := c.Query("before"); before != "" {
		id, err := uuid.Parse(before)
		if err != nil {
			badRequest(c, "invalid before cursor")
			return
		}
		page.Before = &id
	}

	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			badRequest(c, "invalid limit")
			return
		}
		page.Limit = n
	}

	page = page.Normalize()

	messages, err := h.svc.ListMessages(ctx, userID, conversationID, page)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	meta := CursorMetadata{Limit: page.Limit}
	if len(messages) == page.Limit {
		meta.NextBefore = &messages[0].ID
	}

	c.JSON(http.StatusOK, ResponseWithMetaAndData{
		Status:   StatusSuccess,
		Data:     messages,
		Metadata: meta,
	})
}
