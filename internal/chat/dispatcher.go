package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hugohenrick/go-chat/internal/domain/message"
	"github.com/hugohenrick/go-chat/pkg/logger"
)

// persistTimeout limita quanto tempo a gravação de uma mensagem pode levar
const persistTimeout = 5 * time.Second

// InboundPayload é o evento de mensagem recebido de um cliente.
// Os três campos são obrigatórios
type InboundPayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// OutboundPayload é o evento de mensagem distribuído a todos os clientes
type OutboundPayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Dispatcher coordena o caminho de uma mensagem recebida: validação,
// persistência e fan-out para a sala.
//
// A entrega é fire-and-forget (no máximo uma vez): eventos inválidos ou
// que falham na persistência são descartados com um diagnóstico no log e
// o remetente não recebe confirmação nem erro
type Dispatcher struct {
	messages message.Repository
	hub      *Hub
	log      logger.Logger
}

// NewDispatcher cria uma nova instância de Dispatcher
func NewDispatcher(messages message.Repository, hub *Hub, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		messages: messages,
		hub:      hub,
		log:      log,
	}
}

// HandleMessage processa um evento de mensagem vindo de um cliente.
// A mensagem só é distribuída depois de persistida com sucesso
func (d *Dispatcher) HandleMessage(ctx context.Context, c *Client, raw []byte) {
	var payload InboundPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		d.log.Warn("payload de mensagem inválido; evento descartado", "username", c.username, "err", err)
		return
	}

	msg := &message.Message{
		UserID:   payload.UserID,
		Username: payload.Username,
		Content:  payload.Message,
		Room:     c.room,
	}

	if err := msg.Validate(); err != nil {
		d.log.Warn("payload de mensagem incompleto; evento descartado", "username", c.username)
		return
	}

	saveCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	if err := d.messages.Save(saveCtx, msg); err != nil {
		d.log.Error("erro ao salvar mensagem; evento descartado", "username", c.username, "err", err)
		return
	}

	out, err := json.Marshal(OutboundPayload{
		Username: msg.Username,
		Message:  msg.Content,
	})
	if err != nil {
		d.log.Error("erro ao serializar mensagem de saída", "err", err)
		return
	}

	d.hub.Broadcast(c.room, out)
}
