package message

import (
	"context"
)

// Repository define a interface para operações de repositório de mensagens
//
// O histórico é um log somente de inserção: mensagens nunca são alteradas
// ou removidas depois de gravadas.
type Repository interface {
	// Save persiste uma nova mensagem. ID e Timestamp são gerados quando
	// ausentes. A gravação é durável antes do retorno
	Save(ctx context.Context, m *Message) error

	// ListByRoom retorna todas as mensagens de uma sala ordenadas por
	// timestamp ascendente, com a ordem de inserção como desempate
	ListByRoom(ctx context.Context, room string) ([]Message, error)

	// CountByRoom conta quantas mensagens uma sala tem
	CountByRoom(ctx context.Context, room string) (int, error)
}
