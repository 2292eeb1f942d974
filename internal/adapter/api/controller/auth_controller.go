package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/go-chat/internal/adapter/api/dto"
	"github.com/hugohenrick/go-chat/internal/adapter/repository"
	"github.com/hugohenrick/go-chat/internal/domain/user"
	"github.com/hugohenrick/go-chat/pkg/logger"
	"github.com/hugohenrick/go-chat/pkg/session"
)

// AuthController gerencia as requisições relacionadas a registro,
// autenticação e sessão
type AuthController struct {
	userRepository user.Repository
	sessions       *session.Service
	log            logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, sessions *session.Service, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		sessions:       sessions,
		log:            log,
	}
}

// ShowRegister renderiza o formulário de registro
func (c *AuthController) ShowRegister(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", nil)
}

// ShowLogin renderiza o formulário de login
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", nil)
}

// Register cria um novo usuário
// @Summary Registra um novo usuário
// @Description Cria um usuário com username, email e senha
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Nome de exibição"
// @Param email formData string true "Email (único)"
// @Param password formData string true "Senha"
// @Success 302 {string} string "Redireciona para /login"
// @Failure 400 {string} string "Campos obrigatórios ausentes"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.String(http.StatusBadRequest, "Todos os campos são obrigatórios")
		return
	}

	u := &user.User{
		Username: request.Username,
		Email:    request.Email,
	}

	if err := u.SetPassword(request.Password); err != nil {
		c.log.Error("erro ao gerar hash da senha", "err", err)
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			// Sem mensagem distinta para não revelar emails cadastrados
			ctx.Redirect(http.StatusFound, "/register")
			return
		}
		c.log.Error("erro ao registrar usuário", "err", err)
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	ctx.Redirect(http.StatusFound, "/login")
}

// Login autentica um usuário e inicia uma sessão via cookie
// @Summary Autentica um usuário
// @Description Verifica as credenciais e define o cookie de sessão
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Senha"
// @Success 302 {string} string "Redireciona para /chat"
// @Router /user-login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	u, err := c.userRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.Redirect(http.StatusFound, "/register")
			return
		}
		c.log.Error("erro ao autenticar usuário", "err", err)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	if !u.CheckPassword(request.Password) {
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	token, err := c.sessions.Issue(u)
	if err != nil {
		c.log.Error("erro ao gerar token de sessão", "err", err)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	// Atualizar o último login do usuário; falha aqui não impede o login
	if err := c.userRepository.UpdateLastLogin(ctx, u.ID); err != nil {
		c.log.Warn("erro ao atualizar último login", "err", err)
	}

	maxAge := int(c.sessions.Expiration() / time.Second)
	ctx.SetCookie(session.CookieName, token, maxAge, "/", "", false, true)

	ctx.Redirect(http.StatusFound, "/chat")
}

// Logout encerra a sessão do usuário
// @Summary Encerra a sessão
// @Tags auth
// @Success 302 {string} string "Redireciona para /login"
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/login")
}

// Me retorna informações do usuário autenticado
// @Summary Retorna informações do usuário atual
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, _, ok := session.IdentityFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	u, err := c.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Usuário não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
