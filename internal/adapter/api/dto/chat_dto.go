package dto

import (
	"time"

	"github.com/hugohenrick/go-chat/internal/domain/message"
)

// MessageResponse representa uma mensagem do histórico do chat
type MessageResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Room      string    `json:"room"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse representa a resposta com o histórico completo de uma sala
type HistoryResponse struct {
	Room       string            `json:"room"`
	Messages   []MessageResponse `json:"messages"`
	TotalCount int               `json:"total_count"`
}

// ToMessageResponse converte uma mensagem do domínio para DTO de resposta
func ToMessageResponse(m message.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Username:  m.Username,
		Content:   m.Content,
		Room:      m.Room,
		Timestamp: m.Timestamp,
	}
}

// ToHistoryResponse converte uma lista de mensagens para DTO de resposta
func ToHistoryResponse(room string, messages []message.Message) HistoryResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, ToMessageResponse(m))
	}

	return HistoryResponse{
		Room:       room,
		Messages:   responses,
		TotalCount: len(responses),
	}
}
