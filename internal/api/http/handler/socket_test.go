package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"messaging-back/internal/apperrors"
)

type verifierStub map[string]uuid.UUID

func (v verifierStub) Verify(_ context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, apperrors.ErrTokenMissing
	}

	id, ok := v[token]
	if !ok {
		return uuid.Nil, apperrors.ErrTokenInvalid
	}

	return id, nil
}

type gatewayStub struct {
	served chan uuid.UUID
}

func (g *gatewayStub) Serve(_ context.Context, ws *websocket.Conn, userID uuid.UUID) {
	g.served <- userID
	_ = ws.Close()
}

func TestSocketConnect(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	gateway := &gatewayStub{served: make(chan uuid.UUID, 1)}
	h := NewSocketHandler(zaptest.NewLogger(t), verifierStub{"good": userID}, gateway, []string{"https://app.example.com"})

	r := gin.New()
	r.GET("/ws", h.Connect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url+"?token=forged", nil)
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	header := http.Header{"Origin": {"https://evil.example.com"}}
	_, resp, err = websocket.DefaultDialer.Dial(url+"?token=good", header)
	req.ErrorIs(err, websocket.ErrBadHandshake)
	req.Equal(http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Authorization": {"Bearer good"}, "Origin": {"https://app.example.com"}}
	ws, _, err := websocket.DefaultDialer.Dial(url, header)
	req.NoError(err)
	t.Cleanup(func() { _ = ws.Close() })

	req.Equal(userID, <-gateway.served)
}
