package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/metrics"
	"messaging-back/internal/model"
	"messaging-back/internal/msg/outbox"
)

const DefaultFrameTimeout = 10 * time.Second

var errConversationIDRequired = fmt.Errorf("%w: conversationId is required", apperrors.ErrValidation)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway.go -package=mocks
type Conversations interface {
	ListUserConversations(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error)
	AssertParticipant(ctx context.Context, userID, conversationID uuid.UUID) error
	GetParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error)
}

type Messages interface {
	CreateMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*model.Message, error)
}

type Receipts interface {
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*model.Receipt, error)
}

type Config struct {
	FrameTimeout time.Duration
	Conn         ConnConfig
}

// Gateway keeps live connections subscribed to their rooms and fans chat events out to them.
type Gateway struct {
	l             *zap.Logger
	cfg           Config
	rooms         RoomRegistry
	conversations Conversations
	messages      Messages
	receipts      Receipts
}

func NewGateway(l *zap.Logger, cfg Config, rooms RoomRegistry, conversations Conversations, messages Messages, receipts Receipts) *Gateway {
	if cfg.FrameTimeout <= 0 {
		cfg.FrameTimeout = DefaultFrameTimeout
	}

	return &Gateway{
		l:             l.Named("realtime"),
		cfg:           cfg,
		rooms:         rooms,
		conversations: conversations,
		messages:      messages,
		receipts:      receipts,
	}
}

// Serve runs an authenticated, already upgraded socket until the peer goes away.
func (g *Gateway) Serve(ctx context.Context, ws *websocket.Conn, userID uuid.UUID) {
	conn := NewConnection(userID, ws, g.cfg.Conn)
	conn.Start()

	g.Connect(ctx, conn)
	defer func() {
		g.Disconnect(conn)
		conn.Close(websocket.CloseNormalClosure, "session closed")
	}()

	for {
		data, err := conn.Read()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
				!errors.Is(err, websocket.ErrCloseSent) {
				g.l.Debug("Socket read ended", zap.String("connection_id", conn.ID()), zap.Error(err))
			}

			return
		}

		g.HandleFrame(ctx, conn, data)
	}
}

// Connect attaches m and joins the personal room plus every conversation room of its user,
// then announces the user as online.
func (g *Gateway) Connect(ctx context.Context, m Member) {
	g.rooms.Attach(m)
	metrics.RealtimeConnections.Inc()

	log := g.l.With(zap.String("connection_id", m.ID()), zap.String("user_id", m.UserID().String()))

	g.rooms.Join(UserRoom(m.UserID()), m.ID())

	ctx, cancel := context.WithTimeout(ctx, g.cfg.FrameTimeout)
	defer cancel()

	conversations, err := g.conversations.ListUserConversations(ctx, m.UserID())
	if err != nil {
		log.Error("Failed to load conversations for connection", zap.Error(err))
		g.replyError(m, "connect", err, nil)
	}

	for _, c := range conversations {
		g.rooms.Join(ConversationRoom(c.ID), m.ID())
	}

	log.Debug("Connection joined", zap.Int("conversations", len(conversations)))

	g.presence(m, StatusOnline, g.roomsOf(m.UserID(), conversations))
}

// Disconnect detaches m and announces the user as offline to every room it was in.
func (g *Gateway) Disconnect(m Member) {
	left := g.rooms.Detach(m.ID())
	if left == nil {
		return
	}

	metrics.RealtimeConnections.Dec()
	g.presence(m, StatusOffline, left)
}

// HandleFrame decodes and executes one inbound frame. It never panics.
func (g *Gateway) HandleFrame(ctx context.Context, m Member, data []byte) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil || frame.Event == "" {
		metrics.RealtimeFrames.WithLabelValues("invalid", "error").Inc()
		g.replyError(m, "frame", fmt.Errorf("%w: malformed frame", apperrors.ErrValidation), nil)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.FrameTimeout)
	defer cancel()

	var (
		correlationID *string
		err           error
		label         = frame.Event
	)

	defer func() {
		if r := recover(); r != nil {
			g.l.Error("Panic while handling frame", zap.String("event", frame.Event), zap.Any("panic", r))
			err = fmt.Errorf("panic: %v", r)
		}

		result := "ok"
		if err != nil {
			result = "error"
			g.replyError(m, frame.Event, err, correlationID)
		}
		metrics.RealtimeFrames.WithLabelValues(label, result).Inc()
	}()

	switch frame.Event {
	case EventConversationJoin:
		err = g.join(ctx, m, frame.Data)
	case EventConversationLeave:
		err = g.leave(m, frame.Data)
	case EventTyping:
		err = g.typing(ctx, m, frame.Data)
	case EventMessageSend:
		correlationID, err = g.sendMessage(ctx, m, frame.Data)
	case EventReceiptRead:
		err = g.markRead(ctx, m, frame.Data)
	default:
		label = "unknown"
		err = fmt.Errorf("%w: unknown event %q", apperrors.ErrValidation, frame.Event)
	}
}

func (g *Gateway) join(ctx context.Context, m Member, data json.RawMessage) error {
	var req ConversationRequest
	if err := decodeData(data, &req); err != nil {
		return err
	}

	if req.ConversationID == uuid.Nil {
		return errConversationIDRequired
	}

	if err := g.conversations.AssertParticipant(ctx, m.UserID(), req.ConversationID); err != nil {
		return err
	}

	g.rooms.Join(ConversationRoom(req.ConversationID), m.ID())

	return g.send(m, EventConversationJoined, ConversationEvent{ConversationID: req.ConversationID})
}

func (g *Gateway) leave(m Member, data json.RawMessage) error {
	var req ConversationRequest
	if err := decodeData(data, &req); err != nil {
		return err
	}

	if req.ConversationID == uuid.Nil {
		return errConversationIDRequired
	}

	g.rooms.Leave(ConversationRoom(req.ConversationID), m.ID())

	return g.send(m, EventConversationLeft, ConversationEvent{ConversationID: req.ConversationID})
}

func (g *Gateway) typing(ctx context.Context, m Member, data json.RawMessage) error {
	var req TypingRequest
	if err := decodeData(data, &req); err != nil {
		return err
	}

	if req.ConversationID == uuid.Nil {
		return errConversationIDRequired
	}

	if err := g.conversations.AssertParticipant(ctx, m.UserID(), req.ConversationID); err != nil {
		return err
	}

	g.broadcast(EventTyping, TypingEvent{
		ConversationID: req.ConversationID,
		UserID:         m.UserID(),
		IsTyping:       req.IsTyping,
	}, m.ID(), ConversationRoom(req.ConversationID))

	return nil
}

func (g *Gateway) sendMessage(ctx context.Context, m Member, data json.RawMessage) (*string, error) {
	var req SendMessageRequest
	if err := decodeData(data, &req); err != nil {
		return nil, err
	}

	msg, err := g.messages.CreateMessage(ctx, req.ConversationID, m.UserID(), req.Content)
	if err != nil {
		return req.CorrelationID, err
	}
	metrics.MessagesCreated.WithLabelValues("realtime").Inc()

	if err := g.send(m, EventMessageAck, MessageAck{
		OK:            true,
		CorrelationID: req.CorrelationID,
		MessageID:     msg.ID,
		CreatedAt:     msg.CreatedAt,
	}); err != nil {
		g.l.Debug("Failed to ack message", zap.String("message_id", msg.ID.String()), zap.Error(err))
	}

	g.broadcast(EventMessageNew, MessageNewEvent{Message: *msg}, m.ID(), ConversationRoom(msg.ConversationID))

	return req.CorrelationID, nil
}

func (g *Gateway) markRead(ctx context.Context, m Member, data json.RawMessage) error {
	var req ReadRequest
	if err := decodeData(data, &req); err != nil {
		return err
	}

	receipt, err := g.receipts.MarkRead(ctx, m.UserID(), req.MessageID)
	if err != nil {
		return err
	}

	g.broadcast(EventReceiptNew, receiptEvent(receipt), m.ID(), ConversationRoom(receipt.ConversationID))

	return nil
}

// MessageCreated fans out a message stored outside the socket path to the whole room.
func (g *Gateway) MessageCreated(msg *model.Message) {
	g.broadcast(EventMessageNew, MessageNewEvent{Message: *msg}, "", ConversationRoom(msg.ConversationID))
}

// ReceiptMarked fans out a receipt stored outside the socket path to the whole room.
func (g *Gateway) ReceiptMarked(receipt *model.Receipt) {
	g.broadcast(EventReceiptNew, receiptEvent(receipt), "", ConversationRoom(receipt.ConversationID))
}

// ConversationCreated subscribes the live connections of every participant to the new
// conversation room and notifies them on their personal rooms.
func (g *Gateway) ConversationCreated(conversation *model.Conversation) {
	room := ConversationRoom(conversation.ID)
	personal := make([]string, 0, len(conversation.Participants))

	for _, id := range conversation.ParticipantIDs() {
		userRoom := UserRoom(id)
		personal = append(personal, userRoom)

		for _, memberID := range g.rooms.Members(userRoom) {
			g.rooms.Join(room, memberID)
		}
	}

	g.broadcast(EventConversationNew, ConversationNewEvent{Conversation: *conversation}, "", personal...)
}

// Register binds the gateway's outbox consumers to reg.
func (g *Gateway) Register(reg *outbox.Registry) {
	reg.Register(outbox.TopicMessageCreated, outbox.Handle(g.handleMessageCreated))
}

// handleMessageCreated nudges the personal rooms of the other participants so clients refresh their inbox.
func (g *Gateway) handleMessageCreated(ctx context.Context, _ outbox.Event, p outbox.MessageCreatedPayload) error {
	ids, err := g.conversations.GetParticipantIDs(ctx, p.ConversationID)
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}

	rooms := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == p.SenderID {
			continue
		}
		rooms = append(rooms, UserRoom(id))
	}

	g.broadcast(EventConversationUpdated, ConversationUpdatedEvent{
		ConversationID: p.ConversationID,
		MessageID:      p.MessageID,
	}, "", rooms...)

	return nil
}

func (g *Gateway) ConnectionCount() int {
	return g.rooms.Count()
}

// Close drops every live connection. Members are detached here, so their later
// Disconnect calls are no-ops and the gauge is settled now.
func (g *Gateway) Close() {
	closed := g.rooms.Close()
	metrics.RealtimeConnections.Sub(float64(closed))
}

func (g *Gateway) presence(m Member, status string, rooms []string) {
	if len(rooms) == 0 {
		return
	}

	g.broadcast(EventPresence, PresenceEvent{UserID: m.UserID(), Status: status}, m.ID(), rooms...)
}

func (g *Gateway) roomsOf(userID uuid.UUID, conversations []model.Conversation) []string {
	rooms := make([]string, 0, len(conversations)+1)
	rooms = append(rooms, UserRoom(userID))
	for _, c := range conversations {
		rooms = append(rooms, ConversationRoom(c.ID))
	}

	return rooms
}

func (g *Gateway) broadcast(event string, data any, excludeMemberID string, rooms ...string) {
	payload, err := encodeFrame(event, data)
	if err != nil {
		g.l.Error("Failed to encode frame", zap.String("event", event), zap.Error(err))

		return
	}

	g.rooms.Broadcast(payload, excludeMemberID, rooms...)
}

func (g *Gateway) send(m Member, event string, data any) error {
	payload, err := encodeFrame(event, data)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", event, err)
	}

	return m.Send(payload)
}

func (g *Gateway) replyError(m Member, scope string, err error, correlationID *string) {
	code := apperrors.Code(err)
	message := err.Error()
	if code == "internal_error" {
		g.l.Error("Frame failed", zap.String("scope", scope), zap.Error(err))
		message = "internal error"
	}

	_ = g.send(m, EventError, ErrorEvent{
		Scope:         scope,
		Code:          code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: data is required", apperrors.ErrValidation)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	return nil
}

func receiptEvent(r *model.Receipt) ReceiptNewEvent {
	return ReceiptNewEvent{
		MessageID:      r.MessageID,
		ConversationID: r.ConversationID,
		UserID:         r.UserID,
		ReadAt:         r.ReadAt,
	}
}
