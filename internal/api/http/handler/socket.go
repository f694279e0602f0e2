package handler

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"messaging-back/internal/identity"
)

type SocketGateway interface {
	Serve(ctx context.Context, ws *websocket.Conn, userID uuid.UUID)
}

type SocketHandler struct {
	log      *zap.Logger
	verifier identity.Verifier
	gateway  SocketGateway
	upgrader websocket.Upgrader
}

// NewSocketHandler accepts any origin when allowedOrigins is empty.
func NewSocketHandler(log *zap.Logger, verifier identity.Verifier, gateway SocketGateway, allowedOrigins []string) *SocketHandler {
	return &SocketHandler{
		log:      log,
		verifier: verifier,
		gateway:  gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

// Connect
// @Summary Open the realtime socket.
// @Description Authenticates with the access cookie, a Bearer header or ?token=, then upgrades to WebSocket.
// @Tags Realtime
// @Param token query string false "Access token"
// @Failure 401 {object} ResponseWithMessage "Invalid or missing token"
// @Router /ws [get]
func (h *SocketHandler) Connect(c *gin.Context) {
	userID, err := h.verifier.Verify(c.Request.Context(), identity.SocketTokenFromRequest(c.Request))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ResponseWithMessage{
			Status:  StatusNotPermitted,
			Message: err.Error(),
		})

		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the response.
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	h.gateway.Serve(c.Request.Context(), ws, userID)
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		return slices.ContainsFunc(allowed, func(o string) bool {
			return strings.EqualFold(o, origin)
		})
	}
}
