package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Chaves usadas para expor a identidade autenticada no contexto do gin
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextEmail    = "email"
)

// RequireSession cria um middleware que exige uma sessão válida.
// Sem sessão (ou com sessão inválida/expirada) o cliente é redirecionado
// para /login em vez de receber 401, por ser uma superfície HTML
func RequireSession(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := service.Validate(tokenString)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		// Armazenar a identidade no contexto
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// IdentityFromContext retorna a identidade autenticada do contexto do gin
func IdentityFromContext(c *gin.Context) (userID, username string, ok bool) {
	id, exists := c.Get(ContextUserID)
	if !exists {
		return "", "", false
	}
	name, exists := c.Get(ContextUsername)
	if !exists {
		return "", "", false
	}

	userID, okID := id.(string)
	username, okName := name.(string)
	return userID, username, okID && okName
}
