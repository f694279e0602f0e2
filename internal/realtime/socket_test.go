package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"messaging-back/internal/model"
)

func dial(t *testing.T, srv *httptest.Server, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=" + userID.String()
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = ws.Close() })

	return ws
}

func writeFrame(t *testing.T, ws *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, frame(t, event, data)))
}

// readUntil skips frames until one with the given event arrives.
func readUntil(t *testing.T, ws *websocket.Conn, event string) Frame {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, data, err := ws.ReadMessage()
		require.NoError(t, err)

		var f Frame
		require.NoError(t, json.Unmarshal(data, &f))
		if f.Event == event {
			return f
		}
	}
}

func TestSocketEndToEnd(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t)
	conversationID := uuid.New()
	alice, bob := uuid.New(), uuid.New()

	f.conversations.EXPECT().ListUserConversations(gomock.Any(), gomock.Any()).
		Return([]model.Conversation{{ID: conversationID}}, nil).AnyTimes()
	f.conversations.EXPECT().AssertParticipant(gomock.Any(), gomock.Any(), conversationID).Return(nil).AnyTimes()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("user"))
		if err != nil {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		f.gw.Serve(r.Context(), ws, userID)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(f.gw.Close)

	a := dial(t, srv, alice)
	writeFrame(t, a, EventConversationJoin, ConversationRequest{ConversationID: conversationID})
	readUntil(t, a, EventConversationJoined)

	b := dial(t, srv, bob)
	writeFrame(t, b, EventConversationJoin, ConversationRequest{ConversationID: conversationID})
	readUntil(t, b, EventConversationJoined)

	online := decode[PresenceEvent](t, readUntil(t, a, EventPresence))
	req.Equal(PresenceEvent{UserID: bob, Status: StatusOnline}, online)

	stored := &model.Message{ID: uuid.New(), ConversationID: conversationID, SenderID: bob, Content: "hello", CreatedAt: time.Now().UTC()}
	f.messages.EXPECT().CreateMessage(gomock.Any(), conversationID, bob, "hello").Return(stored, nil)

	correlationID := "c-1"
	writeFrame(t, b, EventMessageSend, SendMessageRequest{ConversationID: conversationID, Content: "hello", CorrelationID: &correlationID})

	ack := decode[MessageAck](t, readUntil(t, b, EventMessageAck))
	req.Equal(&correlationID, ack.CorrelationID)
	req.Equal(stored.ID, ack.MessageID)

	got := decode[MessageNewEvent](t, readUntil(t, a, EventMessageNew))
	req.Equal(stored.ID, got.Message.ID)

	req.NoError(b.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	offline := decode[PresenceEvent](t, readUntil(t, a, EventPresence))
	req.Equal(PresenceEvent{UserID: bob, Status: StatusOffline}, offline)
}

func TestConnectionDropsSlowConsumer(t *testing.T) {
	req := require.New(t)

	accepted := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}

		// no write loop, so the buffer never drains
		accepted <- NewConnection(uuid.New(), ws, ConnConfig{SendBuffer: 2})
	}))
	t.Cleanup(srv.Close)

	dial(t, srv, uuid.New())
	conn := <-accepted

	req.NoError(conn.Send([]byte("1")))
	req.NoError(conn.Send([]byte("2")))
	req.ErrorIs(conn.Send([]byte("3")), ErrSendBufferFull)
	req.ErrorIs(conn.Send([]byte("4")), ErrConnectionClosed)
}

func TestConnectionOverflowDoesNotWaitForStalledWrite(t *testing.T) {
	req := require.New(t)

	accepted := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}

		accepted <- NewConnection(uuid.New(), ws, ConnConfig{SendBuffer: 1, WriteWait: 10 * time.Second})
	}))
	t.Cleanup(srv.Close)

	// the client never reads, so a large frame fills the socket buffers and stalls
	dial(t, srv, uuid.New())
	conn := <-accepted

	writing := make(chan error, 1)
	go func() {
		writing <- conn.ws.WriteMessage(websocket.BinaryMessage, make([]byte, 64<<20))
	}()
	time.Sleep(100 * time.Millisecond)

	req.NoError(conn.Send([]byte("1")))

	start := time.Now()
	req.ErrorIs(conn.Send([]byte("2")), ErrSendBufferFull)
	req.Less(time.Since(start), time.Second)

	req.ErrorIs(conn.Send([]byte("3")), ErrConnectionClosed)

	// the background close still releases the socket
	select {
	case err := <-writing:
		req.Error(err)
	case <-time.After(15 * time.Second):
		req.Fail("stalled write was not released")
	}
}
