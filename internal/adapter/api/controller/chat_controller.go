package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hugohenrick/go-chat/internal/adapter/api/dto"
	"github.com/hugohenrick/go-chat/internal/chat"
	"github.com/hugohenrick/go-chat/internal/domain/message"
	"github.com/hugohenrick/go-chat/pkg/logger"
	"github.com/hugohenrick/go-chat/pkg/session"
)

// ChatController gerencia a página do chat, o histórico e o upgrade para
// WebSocket
type ChatController struct {
	messageRepository message.Repository
	hub               *chat.Hub
	dispatcher        *chat.Dispatcher
	upgrader          websocket.Upgrader
	maxMessageSize    int64
	log               logger.Logger
}

// NewChatController cria uma nova instância de ChatController
func NewChatController(messageRepository message.Repository, hub *chat.Hub, dispatcher *chat.Dispatcher, allowedOrigins []string, maxMessageSize int64, log logger.Logger) *ChatController {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return &ChatController{
		messageRepository: messageRepository,
		hub:               hub,
		dispatcher:        dispatcher,
		upgrader:          upgrader,
		maxMessageSize:    maxMessageSize,
		log:               log,
	}
}

// originChecker monta a função de validação de origem do handshake.
// "*" libera qualquer origem
func originChecker(allowed []string) func(r *http.Request) bool {
	for _, origin := range allowed {
		if origin == "*" {
			return func(r *http.Request) bool { return true }
		}
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowedSet[origin] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return allowedSet[origin]
	}
}

// ChatPage renderiza a página do chat com o histórico completo da sala
func (c *ChatController) ChatPage(ctx *gin.Context) {
	userID, username, ok := session.IdentityFromContext(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	messages, err := c.messageRepository.ListByRoom(ctx, message.DefaultRoom)
	if err != nil {
		c.log.Error("erro ao carregar o histórico do chat", "err", err)
		ctx.String(http.StatusInternalServerError, "Erro ao carregar o chat")
		return
	}

	ctx.HTML(http.StatusOK, "chat.html", gin.H{
		"Username": username,
		"UserID":   userID,
		"Messages": messages,
	})
}

// History retorna o histórico da sala em JSON
// @Summary Retorna o histórico de mensagens
// @Description Todas as mensagens da sala, ordenadas por timestamp ascendente
// @Tags chat
// @Produce json
// @Success 200 {object} dto.HistoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/messages [get]
func (c *ChatController) History(ctx *gin.Context) {
	messages, err := c.messageRepository.ListByRoom(ctx, message.DefaultRoom)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar histórico", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(message.DefaultRoom, messages))
}

// ServeWS faz o upgrade da conexão para WebSocket e registra o cliente no
// hub. O handshake só acontece com uma sessão válida (middleware); a
// identidade da sessão fica associada à conexão
func (c *ChatController) ServeWS(ctx *gin.Context) {
	userID, username, ok := session.IdentityFromContext(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// O upgrader já escreveu a resposta de erro
		c.log.Warn("erro no upgrade para WebSocket", "err", err)
		return
	}

	client := chat.NewClient(conn, c.hub, message.DefaultRoom, userID, username, c.maxMessageSize)
	c.hub.StartClient(client, c.dispatcher)
}
