package route

import (
	"github.com/gin-gonic/gin"
)

type MessageHandler interface {
	CreateMessage(c *gin.Context)
	ListMessages(c *gin.Context)
}

type ReceiptHandler interface {
	MarkRead(c *gin.Context)
	ListReceipts(c *gin.Context)
}

func RegisterMessageRoutes(g *gin.RouterGroup, messages MessageHandler, receipts ReceiptHandler) {
	g.POST("/messages", messages.CreateMessage)
	g.GET("/messages/:message_id/receipts", receipts.ListReceipts)
	g.POST("/receipts", receipts.MarkRead)
}
