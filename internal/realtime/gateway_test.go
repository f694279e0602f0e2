package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/metrics"
	"messaging-back/internal/model"
	"messaging-back/internal/msg/outbox"
	"messaging-back/internal/realtime/mocks"
)

type gatewayFixture struct {
	gw            *Gateway
	rooms         *MemoryRooms
	conversations *mocks.MockConversations
	messages      *mocks.MockMessages
	receipts      *mocks.MockReceipts
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &gatewayFixture{
		rooms:         NewMemoryRooms(),
		conversations: mocks.NewMockConversations(ctrl),
		messages:      mocks.NewMockMessages(ctrl),
		receipts:      mocks.NewMockReceipts(ctrl),
	}
	f.gw = NewGateway(zaptest.NewLogger(t), Config{FrameTimeout: time.Second}, f.rooms, f.conversations, f.messages, f.receipts)

	return f
}

// connect attaches a fake member for userID that is a participant of conversations.
func (f *gatewayFixture) connect(userID uuid.UUID, conversations ...uuid.UUID) *fakeMember {
	list := make([]model.Conversation, 0, len(conversations))
	for _, id := range conversations {
		list = append(list, model.Conversation{ID: id})
	}

	f.conversations.EXPECT().ListUserConversations(gomock.Any(), userID).Return(list, nil)

	m := newFakeMember(userID)
	f.gw.Connect(context.Background(), m)

	return m
}

func frame(t *testing.T, event string, data any) []byte {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	payload, err := json.Marshal(Frame{Event: event, Data: raw})
	require.NoError(t, err)

	return payload
}

func decode[T any](t *testing.T, f Frame) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(f.Data, &v))

	return v
}

func TestConnectJoinsRoomsAndAnnouncesPresence(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	conversationID := uuid.New()
	alice, bob := uuid.New(), uuid.New()

	a := f.connect(alice, conversationID)
	req.True(f.rooms.In(UserRoom(alice), a.ID()))
	req.True(f.rooms.In(ConversationRoom(conversationID), a.ID()))
	req.Empty(a.events(EventPresence), "nobody else is online yet")

	b := f.connect(bob, conversationID)
	req.Empty(b.events(EventPresence))

	presence := a.events(EventPresence)
	req.Len(presence, 1)
	req.Equal(PresenceEvent{UserID: bob, Status: StatusOnline}, decode[PresenceEvent](t, presence[0]))

	f.gw.Disconnect(b)
	f.gw.Disconnect(b)

	presence = a.events(EventPresence)
	req.Len(presence, 2)
	req.Equal(PresenceEvent{UserID: bob, Status: StatusOffline}, decode[PresenceEvent](t, presence[1]))
	req.False(f.rooms.In(ConversationRoom(conversationID), b.ID()))
	req.Equal(1, f.gw.ConnectionCount())
}

func TestConnectSurvivesConversationLookupFailure(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	userID := uuid.New()

	f.conversations.EXPECT().ListUserConversations(gomock.Any(), userID).Return(nil, apperrors.Transient(errors.New("db down")))

	m := newFakeMember(userID)
	f.gw.Connect(context.Background(), m)

	req.True(f.rooms.In(UserRoom(userID), m.ID()))
	errs := m.events(EventError)
	req.Len(errs, 1)
	req.Equal("unavailable", decode[ErrorEvent](t, errs[0]).Code)
}

func TestJoinAndLeaveAreIdempotent(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	userID, conversationID := uuid.New(), uuid.New()
	m := f.connect(userID)

	f.conversations.EXPECT().AssertParticipant(gomock.Any(), userID, conversationID).Return(nil).Times(2)

	join := frame(t, EventConversationJoin, ConversationRequest{ConversationID: conversationID})
	f.gw.HandleFrame(context.Background(), m, join)
	f.gw.HandleFrame(context.Background(), m, join)
	req.True(f.rooms.In(ConversationRoom(conversationID), m.ID()))
	req.Len(m.events(EventConversationJoined), 2)

	leave := frame(t, EventConversationLeave, ConversationRequest{ConversationID: conversationID})
	f.gw.HandleFrame(context.Background(), m, leave)
	f.gw.HandleFrame(context.Background(), m, leave)
	req.False(f.rooms.In(ConversationRoom(conversationID), m.ID()))
	req.Len(m.events(EventConversationLeft), 2)
	req.Empty(m.events(EventError))
}

func TestJoinForbidden(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	userID, conversationID := uuid.New(), uuid.New()
	m := f.connect(userID)

	f.conversations.EXPECT().AssertParticipant(gomock.Any(), userID, conversationID).Return(apperrors.ErrNotInConversation)

	f.gw.HandleFrame(context.Background(), m, frame(t, EventConversationJoin, ConversationRequest{ConversationID: conversationID}))

	req.False(f.rooms.In(ConversationRoom(conversationID), m.ID()))
	errs := m.events(EventError)
	req.Len(errs, 1)
	got := decode[ErrorEvent](t, errs[0])
	req.Equal(EventConversationJoin, got.Scope)
	req.Equal("forbidden", got.Code)
}

func TestTypingExcludesSender(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	conversationID := uuid.New()
	alice, bob := uuid.New(), uuid.New()
	a := f.connect(alice, conversationID)
	b := f.connect(bob, conversationID)

	f.conversations.EXPECT().AssertParticipant(gomock.Any(), alice, conversationID).Return(nil)

	f.gw.HandleFrame(context.Background(), a, frame(t, EventTyping, TypingRequest{ConversationID: conversationID, IsTyping: true}))

	req.Empty(a.events(EventTyping))
	typing := b.events(EventTyping)
	req.Len(typing, 1)
	req.Equal(TypingEvent{ConversationID: conversationID, UserID: alice, IsTyping: true}, decode[TypingEvent](t, typing[0]))
}

func TestSendMessageAcksAndBroadcasts(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	conversationID := uuid.New()
	alice, bob := uuid.New(), uuid.New()

	a := f.connect(alice, conversationID)
	aOther := f.connect(alice, conversationID)
	b := f.connect(bob, conversationID)

	content := gofakeit.Sentence()
	stored := &model.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       alice,
		Content:        content,
		CreatedAt:      time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
	f.messages.EXPECT().CreateMessage(gomock.Any(), conversationID, alice, content).Return(stored, nil)

	correlationID := "tmp-1"
	f.gw.HandleFrame(context.Background(), a, frame(t, EventMessageSend, SendMessageRequest{
		ConversationID: conversationID,
		Content:        content,
		CorrelationID:  &correlationID,
	}))

	acks := a.events(EventMessageAck)
	req.Len(acks, 1)
	ack := decode[MessageAck](t, acks[0])
	req.True(ack.OK)
	req.Equal(&correlationID, ack.CorrelationID)
	req.Equal(stored.ID, ack.MessageID)
	req.True(stored.CreatedAt.Equal(ack.CreatedAt))

	req.Empty(a.events(EventMessageNew), "the sending connection gets the ack only")
	for _, m := range []*fakeMember{aOther, b} {
		news := m.events(EventMessageNew)
		req.Len(news, 1)
		req.Equal(stored.ID, decode[MessageNewEvent](t, news[0]).Message.ID)
	}
	req.Empty(b.events(EventMessageAck))
}

func TestSendMessageErrorEchoesCorrelationID(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	userID, conversationID := uuid.New(), uuid.New()
	m := f.connect(userID)

	f.messages.EXPECT().CreateMessage(gomock.Any(), conversationID, userID, "").Return(nil, apperrors.ErrContentRequired)

	correlationID := "tmp-2"
	f.gw.HandleFrame(context.Background(), m, frame(t, EventMessageSend, SendMessageRequest{
		ConversationID: conversationID,
		CorrelationID:  &correlationID,
	}))

	errs := m.events(EventError)
	req.Len(errs, 1)
	got := decode[ErrorEvent](t, errs[0])
	req.Equal("invalid_input", got.Code)
	req.Equal(&correlationID, got.CorrelationID)
	req.Empty(m.events(EventMessageAck))
}

func TestReceiptReadBroadcastsToRoom(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	conversationID := uuid.New()
	alice, bob := uuid.New(), uuid.New()
	a := f.connect(alice, conversationID)
	b := f.connect(bob, conversationID)

	receipt := &model.Receipt{
		MessageID:      uuid.New(),
		UserID:         bob,
		ConversationID: conversationID,
		ReadAt:         time.Date(2026, 10, 14, 9, 5, 0, 0, time.UTC),
	}
	f.receipts.EXPECT().MarkRead(gomock.Any(), bob, receipt.MessageID).Return(receipt, nil)

	f.gw.HandleFrame(context.Background(), b, frame(t, EventReceiptRead, ReadRequest{MessageID: receipt.MessageID}))

	req.Empty(b.events(EventReceiptNew))
	news := a.events(EventReceiptNew)
	req.Len(news, 1)
	got := decode[ReceiptNewEvent](t, news[0])
	req.Equal(receipt.MessageID, got.MessageID)
	req.Equal(bob, got.UserID)
	req.True(receipt.ReadAt.Equal(got.ReadAt))
}

func TestHandleFrameRejectsBadInput(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	m := f.connect(uuid.New())

	f.gw.HandleFrame(context.Background(), m, []byte("not json"))
	f.gw.HandleFrame(context.Background(), m, frame(t, "dance", struct{}{}))
	f.gw.HandleFrame(context.Background(), m, []byte(`{"event":"conversation:join"}`))
	f.gw.HandleFrame(context.Background(), m, frame(t, EventConversationJoin, ConversationRequest{}))

	errs := m.events(EventError)
	req.Len(errs, 4)
	for _, e := range errs {
		req.Equal("invalid_input", decode[ErrorEvent](t, e).Code)
	}
	req.Equal("frame", decode[ErrorEvent](t, errs[0]).Scope)
	req.Equal("dance", decode[ErrorEvent](t, errs[1]).Scope)
}

func TestHandleFrameRecoversPanics(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	userID := uuid.New()
	m := f.connect(userID)

	f.receipts.EXPECT().MarkRead(gomock.Any(), userID, gomock.Any()).DoAndReturn(
		func(context.Context, uuid.UUID, uuid.UUID) (*model.Receipt, error) {
			panic("boom")
		})

	req.NotPanics(func() {
		f.gw.HandleFrame(context.Background(), m, frame(t, EventReceiptRead, ReadRequest{MessageID: uuid.New()}))
	})

	errs := m.events(EventError)
	req.Len(errs, 1)
	got := decode[ErrorEvent](t, errs[0])
	req.Equal("internal_error", got.Code)
	req.Equal("internal error", got.Message)
}

func TestConversationCreatedSubscribesLiveParticipants(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	a := f.connect(alice)
	b := f.connect(bob)
	c := f.connect(carol)

	conversation := &model.Conversation{
		ID: uuid.New(),
		Participants: []model.Participant{
			{UserID: alice},
			{UserID: bob},
		},
	}
	f.gw.ConversationCreated(conversation)

	room := ConversationRoom(conversation.ID)
	req.True(f.rooms.In(room, a.ID()))
	req.True(f.rooms.In(room, b.ID()))
	req.False(f.rooms.In(room, c.ID()))

	req.Len(a.events(EventConversationNew), 1)
	req.Len(b.events(EventConversationNew), 1)
	req.Empty(c.events(EventConversationNew))
	req.Equal(conversation.ID, decode[ConversationNewEvent](t, a.events(EventConversationNew)[0]).Conversation.ID)
}

func TestMessageCreatedHandlerNotifiesOtherParticipants(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	conversationID := uuid.New()
	alice, bob := uuid.New(), uuid.New()
	a := f.connect(alice)
	b := f.connect(bob)

	registry := outbox.NewRegistry()
	f.gw.Register(registry)
	handler, ok := registry.Lookup(outbox.TopicMessageCreated)
	req.True(ok)

	payload := outbox.MessageCreatedPayload{MessageID: uuid.New(), ConversationID: conversationID, SenderID: alice}
	f.conversations.EXPECT().GetParticipantIDs(gomock.Any(), conversationID).Return([]uuid.UUID{alice, bob}, nil).Times(2)

	event := outbox.Event{ID: uuid.New(), Topic: outbox.TopicMessageCreated, Payload: payload}
	req.NoError(handler(context.Background(), event))
	req.NoError(handler(context.Background(), event))

	req.Empty(a.events(EventConversationUpdated))
	updates := b.events(EventConversationUpdated)
	req.Len(updates, 2)
	req.Equal(ConversationUpdatedEvent{ConversationID: conversationID, MessageID: payload.MessageID}, decode[ConversationUpdatedEvent](t, updates[0]))
}

func TestMessageCreatedHandlerFailsOnLookupError(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)

	registry := outbox.NewRegistry()
	f.gw.Register(registry)
	handler, _ := registry.Lookup(outbox.TopicMessageCreated)

	payload := outbox.MessageCreatedPayload{MessageID: uuid.New(), ConversationID: uuid.New(), SenderID: uuid.New()}
	f.conversations.EXPECT().GetParticipantIDs(gomock.Any(), payload.ConversationID).Return(nil, apperrors.Transient(errors.New("timeout")))

	err := handler(context.Background(), outbox.Event{Topic: outbox.TopicMessageCreated, Payload: payload})
	req.ErrorIs(err, apperrors.ErrTransientStorage)
}

func TestHTTPBroadcastHelpersReachWholeRoom(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	conversationID := uuid.New()
	a := f.connect(uuid.New(), conversationID)
	b := f.connect(uuid.New(), conversationID)

	f.gw.MessageCreated(&model.Message{ID: uuid.New(), ConversationID: conversationID, Content: "hi"})
	f.gw.ReceiptMarked(&model.Receipt{MessageID: uuid.New(), ConversationID: conversationID, UserID: uuid.New()})

	for _, m := range []*fakeMember{a, b} {
		req.Len(m.events(EventMessageNew), 1)
		req.Len(m.events(EventReceiptNew), 1)
	}
}

func TestCloseDropsConnections(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	a := f.connect(uuid.New())

	f.gw.Close()

	req.True(a.closed)
	req.Zero(f.gw.ConnectionCount())
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	var m dto.Metric
	require.NoError(t, g.Write(&m))

	return m.GetGauge().GetValue()
}

func TestCloseSettlesConnectionGauge(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	before := gaugeValue(t, metrics.RealtimeConnections)

	a := f.connect(uuid.New())
	b := f.connect(uuid.New())
	req.Equal(before+2, gaugeValue(t, metrics.RealtimeConnections))

	f.gw.Close()
	req.Equal(before, gaugeValue(t, metrics.RealtimeConnections))

	// serve loops unwinding after shutdown must not push it below
	f.gw.Disconnect(a)
	f.gw.Disconnect(b)
	req.Equal(before, gaugeValue(t, metrics.RealtimeConnections))
}
