package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/go-chat/internal/adapter/api/controller"
	"github.com/hugohenrick/go-chat/pkg/session"
)

// SetupChatRoutes configura as rotas do chat e do canal de tempo real.
// Todas exigem uma sessão válida
func SetupChatRoutes(router *gin.Engine, chatController *controller.ChatController, authController *controller.AuthController, sessions *session.Service) {
	requireSession := session.RequireSession(sessions)

	router.GET("/chat", requireSession, chatController.ChatPage)
	router.GET("/ws", requireSession, chatController.ServeWS)

	api := router.Group("/api/v1", requireSession)
	{
		api.GET("/messages", chatController.History)
		api.GET("/me", authController.Me)
	}
}
