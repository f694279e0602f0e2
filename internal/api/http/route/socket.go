package route

import (
	"github.com/gin-gonic/gin"
)

type SocketHandler interface {
	Connect(c *gin.Context)
}

func RegisterSocket(g *gin.RouterGroup, h SocketHandler) {
	g.GET("/ws", h.Connect)
}
