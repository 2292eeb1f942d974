package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/go-chat/internal/adapter/api/controller"
	"github.com/hugohenrick/go-chat/pkg/session"
)

// SetupAuthRoutes configura as rotas de registro, login e sessão
func SetupAuthRoutes(router *gin.Engine, authController *controller.AuthController, sessions *session.Service) {
	// Formulários (não requerem autenticação)
	router.GET("/register", authController.ShowRegister)
	router.GET("/login", authController.ShowLogin)

	router.POST("/register", authController.Register)
	router.POST("/user-login", authController.Login)

	// Logout requer uma sessão ativa
	router.GET("/logout", session.RequireSession(sessions), authController.Logout)
}
