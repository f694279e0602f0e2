package route

import (
	"github.com/gin-gonic/gin"
)

type ConversationHandler interface {
	CreateConversation(c *gin.Context)
	ListConversations(c *gin.Context)
	GetConversation(c *gin.Context)
}

func RegisterConversationRoutes(g *gin.RouterGroup, h ConversationHandler, messages MessageHandler) {
	conversations := g.Group("/conversations")
	{
		conversations.POST("", h.CreateConversation)
		conversations.GET("", h.ListConversations)
		conversations.GET("/:conversation_id", h.GetConversation)
		conversations.GET("/:conversation_id/messages", messages.ListMessages)
	}
}
