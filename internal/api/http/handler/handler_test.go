package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"messaging-back/internal/api/http/handler/mocks"
	"messaging-back/internal/apperrors"
	"messaging-back/internal/model"
)

func newRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(model.UserIDKey, userID)
		}
		c.Next()
	})

	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

type envelope struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Metadata json.RawMessage `json:"_metadata"`
}

func readEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))

	return e
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		code   int
		status string
	}{
		{apperrors.ErrContentRequired, http.StatusBadRequest, StatusInvalidInput},
		{apperrors.ErrTokenInvalid, http.StatusUnauthorized, StatusNotPermitted},
		{apperrors.ErrNotInConversation, http.StatusForbidden, StatusForbidden},
		{apperrors.ErrMessageNotFound, http.StatusNotFound, StatusNotFound},
		{apperrors.Transient(errors.New("conn reset")), http.StatusServiceUnavailable, StatusNotAvailable},
		{errors.New("boom"), http.StatusInternalServerError, StatusInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, status := statusOf(tt.err)
			require.Equal(t, tt.code, code)
			require.Equal(t, tt.status, status)
		})
	}
}

func TestCreateConversationAddsCaller(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockConversationService(ctrl)
	notifier := mocks.NewMockConversationNotifier(ctrl)

	caller, peer := uuid.New(), uuid.New()
	created := &model.Conversation{
		ID:           uuid.New(),
		Participants: []model.Participant{{UserID: caller}, {UserID: peer}},
	}

	svc.EXPECT().CreateConversation(gomock.Any(), (*uuid.UUID)(nil), []uuid.UUID{caller, peer}).Return(created, nil)
	notifier.EXPECT().ConversationCreated(created)

	h := NewConversationHandler(zaptest.NewLogger(t), svc, notifier)
	r := newRouter(caller)
	r.POST("/conversations", h.CreateConversation)

	w := do(r, http.MethodPost, "/conversations", model.CreateConversationRequest{ParticipantIDs: []uuid.UUID{peer}})
	req.Equal(http.StatusCreated, w.Code)

	e := readEnvelope(t, w)
	req.Equal(StatusSuccess, e.Status)

	var got model.Conversation
	req.NoError(json.Unmarshal(e.Data, &got))
	req.Equal(created.ID, got.ID)
}

func TestCreateConversationEmptyParticipants(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockConversationService(ctrl)
	notifier := mocks.NewMockConversationNotifier(ctrl)

	svc.EXPECT().CreateConversation(gomock.Any(), gomock.Any(), gomock.Len(0)).Return(nil, apperrors.ErrParticipantIDsRequired)

	h := NewConversationHandler(zaptest.NewLogger(t), svc, notifier)
	r := newRouter(uuid.New())
	r.POST("/conversations", h.CreateConversation)

	w := do(r, http.MethodPost, "/conversations", model.CreateConversationRequest{})
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(StatusInvalidInput, readEnvelope(t, w).Status)
}

func TestHandlersRequireUser(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	conversations := NewConversationHandler(zaptest.NewLogger(t), mocks.NewMockConversationService(ctrl), mocks.NewMockConversationNotifier(ctrl))
	messages := NewMessageHandler(zaptest.NewLogger(t), mocks.NewMockMessageService(ctrl), mocks.NewMockMessageNotifier(ctrl))

	r := newRouter(uuid.Nil)
	r.GET("/conversations", conversations.ListConversations)
	r.POST("/messages", messages.CreateMessage)

	req.Equal(http.StatusUnauthorized, do(r, http.MethodGet, "/conversations", nil).Code)
	req.Equal(http.StatusUnauthorized, do(r, http.MethodPost, "/messages", nil).Code)
}

func TestGetConversationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockConversationService(ctrl)
	h := NewConversationHandler(zaptest.NewLogger(t), svc, mocks.NewMockConversationNotifier(ctrl))

	userID := uuid.New()
	r := newRouter(userID)
	r.GET("/conversations/:conversation_id", h.GetConversation)

	forbidden, missing := uuid.New(), uuid.New()
	svc.EXPECT().GetConversation(gomock.Any(), userID, forbidden).Return(nil, apperrors.ErrNotInConversation)
	svc.EXPECT().GetConversation(gomock.Any(), userID, missing).Return(nil, apperrors.ErrConversationNotFound)

	require.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/conversations/"+forbidden.String(), nil).Code)
	require.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/conversations/"+missing.String(), nil).Code)
	require.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/conversations/nope", nil).Code)
}

func TestCreateMessage(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMessageService(ctrl)
	notifier := mocks.NewMockMessageNotifier(ctrl)

	userID, conversationID := uuid.New(), uuid.New()
	content := gofakeit.Sentence()
	stored := &model.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
		CreatedAt:      time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}

	svc.EXPECT().CreateMessage(gomock.Any(), conversationID, userID, content).Return(stored, nil)
	notifier.EXPECT().MessageCreated(stored)

	h := NewMessageHandler(zaptest.NewLogger(t), svc, notifier)
	r := newRouter(userID)
	r.POST("/messages", h.CreateMessage)

	w := do(r, http.MethodPost, "/messages", model.CreateMessageRequest{ConversationID: conversationID, Content: content})
	req.Equal(http.StatusCreated, w.Code)

	var got model.CreateMessageResponse
	req.NoError(json.Unmarshal(readEnvelope(t, w).Data, &got))
	req.Equal(stored.ID, got.ID)
	req.True(stored.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateMessageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMessageService(ctrl)
	h := NewMessageHandler(zaptest.NewLogger(t), svc, mocks.NewMockMessageNotifier(ctrl))

	userID := uuid.New()
	r := newRouter(userID)
	r.POST("/messages", h.CreateMessage)

	forbidden, flaky := uuid.New(), uuid.New()
	svc.EXPECT().CreateMessage(gomock.Any(), forbidden, userID, "hi").Return(nil, apperrors.ErrNotInConversation)
	svc.EXPECT().CreateMessage(gomock.Any(), flaky, userID, "hi").Return(nil, apperrors.Transient(errors.New("deadlock")))

	require.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/messages", model.CreateMessageRequest{ConversationID: forbidden, Content: "hi"}).Code)
	require.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodPost, "/messages", model.CreateMessageRequest{ConversationID: flaky, Content: "hi"}).Code)
	require.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/messages", map[string]string{"content": "hi"}).Code)
}

func TestListMessagesPaging(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMessageService(ctrl)
	h := NewMessageHandler(zaptest.NewLogger(t), svc, mocks.NewMockMessageNotifier(ctrl))

	userID, conversationID, before := uuid.New(), uuid.New(), uuid.New()
	page := []model.Message{{ID: uuid.New()}, {ID: uuid.New()}}

	svc.EXPECT().ListMessages(gomock.Any(), userID, conversationID, model.MessagePage{Before: &before, Limit: 2}).Return(page, nil)

	r := newRouter(userID)
	r.GET("/conversations/:conversation_id/messages", h.ListMessages)

	base := "/conversations/" + conversationID.String() + "/messages"
	w := do(r, http.MethodGet, base+"?limit=2&before="+before.String(), nil)
	req.Equal(http.StatusOK, w.Code)

	var meta CursorMetadata
	req.NoError(json.Unmarshal(readEnvelope(t, w).Metadata, &meta))
	req.Equal(2, meta.Limit)
	req.Equal(&page[0].ID, meta.NextBefore)

	req.Equal(http.StatusBadRequest, do(r, http.MethodGet, base+"?limit=many", nil).Code)
	req.Equal(http.StatusBadRequest, do(r, http.MethodGet, base+"?before=nope", nil).Code)
}

func TestMarkRead(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReceiptService(ctrl)
	notifier := mocks.NewMockReceiptNotifier(ctrl)

	userID, messageID, missing := uuid.New(), uuid.New(), uuid.New()
	receipt := &model.Receipt{MessageID: messageID, UserID: userID, ConversationID: uuid.New(), ReadAt: time.Now().UTC()}

	svc.EXPECT().MarkRead(gomock.Any(), userID, messageID).Return(receipt, nil)
	svc.EXPECT().MarkRead(gomock.Any(), userID, missing).Return(nil, apperrors.ErrMessageNotFound)
	notifier.EXPECT().ReceiptMarked(receipt)

	h := NewReceiptHandler(zaptest.NewLogger(t), svc, notifier)
	r := newRouter(userID)
	r.POST("/receipts", h.MarkRead)

	w := do(r, http.MethodPost, "/receipts", model.MarkReadRequest{MessageID: messageID})
	req.Equal(http.StatusOK, w.Code)

	var got model.Receipt
	req.NoError(json.Unmarshal(readEnvelope(t, w).Data, &got))
	req.Equal(messageID, got.MessageID)

	req.Equal(http.StatusNotFound, do(r, http.MethodPost, "/receipts", model.MarkReadRequest{MessageID: missing}).Code)
}

func TestBindFailuresUseInvalidInputStatus(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	h := NewReceiptHandler(zaptest.NewLogger(t), mocks.NewMockReceiptService(ctrl), mocks.NewMockReceiptNotifier(ctrl))
	r := newRouter(uuid.New())
	r.POST("/receipts", h.MarkRead)
	r.GET("/messages/:message_id/receipts", h.ListReceipts)

	w := do(r, http.MethodPost, "/receipts", model.MarkReadRequest{})
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(StatusInvalidInput, readEnvelope(t, w).Status)

	w = do(r, http.MethodGet, "/messages/not-a-uuid/receipts", nil)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(StatusInvalidInput, readEnvelope(t, w).Status)
}

func TestListReceipts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReceiptService(ctrl)
	h := NewReceiptHandler(zaptest.NewLogger(t), svc, mocks.NewMockReceiptNotifier(ctrl))

	userID, messageID := uuid.New(), uuid.New()
	svc.EXPECT().ListReceipts(gomock.Any(), userID, messageID).Return([]model.Receipt{{MessageID: messageID}}, nil)

	r := newRouter(userID)
	r.GET("/messages/:message_id/receipts", h.ListReceipts)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/messages/"+messageID.String()+"/receipts", nil).Code)
}

type healthStub struct {
	health *model.Health
	err    error
}

func (s healthStub) Check(context.Context) (*model.Health, error) {
	return s.health, s.err
}

func TestHealth(t *testing.T) {
	req := require.New(t)

	ok := NewHealthHandler(zaptest.NewLogger(t), healthStub{health: &model.Health{Database: "ok"}})
	down := NewHealthHandler(zaptest.NewLogger(t), healthStub{health: &model.Health{Database: "unavailable"}, err: errors.New("refused")})

	r := newRouter(uuid.Nil)
	r.GET("/health", ok.Health)
	r.GET("/health/down", down.Health)
	r.GET("/health/ping", ok.Ping)

	req.Equal(http.StatusOK, do(r, http.MethodGet, "/health", nil).Code)
	req.Equal(http.StatusServiceUnavailable, do(r, http.MethodGet, "/health/down", nil).Code)

	w := do(r, http.MethodGet, "/health/ping", nil)
	req.Equal(http.StatusOK, w.Code)
	req.Equal("pong", readEnvelope(t, w).Message)
}
