package message

import (
	"errors"
	"time"
)

// DefaultRoom é a sala global usada quando nenhuma outra é informada
const DefaultRoom = "general"

// ErrInvalidMessage indica que a mensagem não possui todos os campos obrigatórios
var ErrInvalidMessage = errors.New("mensagem inválida: user_id, username e content são obrigatórios")

// Message representa uma mensagem do chat
// O username é uma cópia desnormalizada do nome do remetente no momento do envio
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Room      string    `json:"room"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate verifica se a mensagem possui os campos obrigatórios
func (m *Message) Validate() error {
	if m.UserID == "" || m.Username == "" || m.Content == "" {
		return ErrInvalidMessage
	}
	return nil
}
