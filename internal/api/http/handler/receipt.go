package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-back/internal/model"
)

//go:generate mockgen -source=receipt.go -destination=mocks/receipt.go -package=mocks
type ReceiptService interface {
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*model.Receipt, error)
	ListReceipts(ctx context.Context, userID, messageID uuid.UUID) ([]model.Receipt, error)
}

type ReceiptNotifier interface {
	ReceiptMarked(receipt *model.Receipt)
}

type ReceiptHandler struct {
	BaseHandler

	log      *zap.Logger
	svc      ReceiptService
	notifier ReceiptNotifier
}

func NewReceiptHandler(log *zap.Logger, svc ReceiptService, notifier ReceiptNotifier) *ReceiptHandler {
	return &ReceiptHandler{
		BaseHandler: BaseHandler{},
		log:         log,
		svc:         svc,
		notifier:    notifier,
	}
}

// MarkRead
// @Summary Mark a message as read.
// @Description Creates or refreshes the caller's receipt and broadcasts receipt:new.
// @Tags Receipts
// @Security AccessToken
// @Accept json
// @Produce json
// @Param payload body model.MarkReadRequest true "Message to mark"
// @Success 200 {object} ResponseWithData{data=model.Receipt} "Success"
// @Failure 400 {object} ResponseWithMessage "Invalid JSON body"
// @Failure 403 {object} ResponseWithMessage "Not a participant"
// @Failure 404 {object} ResponseWithMessage "Message not found"
// @Router /receipts [post]
func (h *ReceiptHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req model.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	receipt, err := h.svc.MarkRead(ctx, userID, req.MessageID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.notifier.ReceiptMarked(receipt)

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   receipt,
	})
}

// ListReceipts
// @Summary List read receipts of a message.
// @Tags Receipts
// @Security AccessToken
// @Produce json
// @Param message_id path string true "Message UUID"
// @Success 200 {object} ResponseWithData{data=[]model.Receipt} "Success"
// @Failure 403 {object} ResponseWithMessage "Not a participant"
// @Failure 404 {object} ResponseWithMessage "Message not found"
// @Router /messages/{message_id}/receipts [get]
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.userID(c)
	if !ok {
		return
	}

	messageID, err := uuid.Parse(c.Param("message_id"))
	if err != nil {
		badRequest(c, "invalid message id")
		return
	}

	receipts, err := h.svc.ListReceipts(ctx, userID, messageID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   receipts,
	})
}
