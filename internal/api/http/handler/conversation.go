package handler

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-back/internal/model"
)

//go:generate mockgen -source=conversation.go -destination=mocks/conversation.go -package=mocks
type ConversationService interface {
	CreateConversation(ctx context.Context, serviceID *uuid.UUID, participantIDs []uuid.UUID) (*model.Conversation, error)
	ListUserConversations(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error)
	GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*model.Conversation, error)
}

type ConversationNotifier interface {
	ConversationCreated(conversation *model.Conversation)
}

type ConversationHandler struct {
	BaseHandler

	log      *zap.Logger
	svc      ConversationService
	notifier ConversationNotifier
}

func NewConversationHandler(log *zap.Logger, svc ConversationService, notifier ConversationNotifier) *ConversationHandler {
	return &ConversationHandler{
		BaseHandler: BaseHandler{},
		log:         log,
		svc:         svc,
		notifier:    notifier,
	}
}

// CreateConversation
// @Summary Create a conversation.
// @Description Creates a conversation with the given participants. The caller is added when missing.
// @Tags Conversations
// @Security AccessToken
// @Accept json
// @Produce json
// @Param payload body model.CreateConversationRequest true "Participants"
// @Success 201 {object} ResponseWithData{data=model.Conversation} "Created"
// @Failure 400 {object} ResponseWithMessage "Empty participant list"
// @Failure 401 {object} ResponseWithMessage "Invalid or missing token"
// @Failure 503 {object} ResponseWithMessage "Storage unavailable"
// @Router /conversations [post]
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req model.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	participants := req.ParticipantIDs
	if len(participants) > 0 && !slices.Contains(participants, userID) {
		participants = append([]uuid.UUID{userID}, participants...)
	}

	conversation, err := h.svc.CreateConversation(ctx, req.ServiceID, participants)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.notifier.ConversationCreated(conversation)

	c.JSON(http.StatusCreated, ResponseWithData{
		Status: StatusSuccess,
		Data:   conversation,
	})
}

// ListConversations
// @Summary List the caller's conversations.
// @Description Most recently active first.
// @Tags Conversations
// @Security AccessToken
// @Produce json
// @Success 200 {object} ResponseWithData{data=[]model.Conversation} "Success"
// @Failure 401 {object} ResponseWithMessage "Invalid or missing token"
// @Failure 503 {object} ResponseWithMessage "Storage unavailable"
// @Router /conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.userID(c)
	if !ok {
		return
	}

	conversations, err := h.svc.ListUserConversations(ctx, userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   conversations,
	})
}

// GetConversation
// @Summary Get a conversation.
// @Tags Conversations
// @Security AccessToken
// @Produce json
// @Param conversation_id path string true "Conversation UUID"
// @Success 200 {object} ResponseWithData{data=model.Conversation} "Success"
// @Failure 400 {object} ResponseWithMessage "Invalid path param"
// @Failure 403 {object} ResponseWithMessage "Not a participant"
// @Failure 404 {object} ResponseWithMessage "Conversation not found"
// @Router /conversations/{conversation_id} [get]
func (h *ConversationHandler) GetConversation(c *gin.Context) {
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

	conversation, err := h.svc.GetConversation(ctx, userID, conversationID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   conversation,
	})
}
