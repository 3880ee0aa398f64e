package chat

import (
	"time"

	"github.com/gin-gonic/gin"

	"minichat/controllers"
	"minichat/middleware"
	"minichat/pkg/config"
	"minichat/pkg/services"
)

// Register wires the chat and message routes. Chat creation and message
// sending carry their own limiters on top of the global one.
func Register(g *gin.RouterGroup, svc *services.ChatService) {
	chatLimiter := middleware.NewLimiter(
		time.Duration(config.ChatRateWindowSeconds)*time.Second,
		config.ChatRateCapacity,
		"Too many new chats created. Please try again later.",
	)
	messageLimiter := middleware.NewLimiter(
		time.Duration(config.MessageRateWindowSeconds)*time.Second,
		config.MessageRateCapacity,
		"Too many messages sent. Please try again later.",
	)

	g.POST("/chats", chatLimiter.Middleware(), controllers.CreateChat(svc))
	g.GET("/chats", controllers.ListChats(svc))
	g.GET("/chats/:id", controllers.GetChat(svc))
	g.PATCH("/chats/:id", controllers.UpdateChatTitle(svc))
	g.DELETE("/chats/:id", controllers.DeleteChat(svc))

	g.GET("/chats/:id/messages", controllers.ListMessages(svc))
	g.POST("/chats/:id/messages", messageLimiter.Middleware(), controllers.SendMessage(svc))
	g.POST("/chats/:id/regenerate", controllers.Regenerate(svc))
	g.PUT("/chats/:id/messages/:messageId/regenerate", controllers.EditAndRegenerate(svc))
}
