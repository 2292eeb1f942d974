package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/go-chat/internal/domain/message"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository implementa a interface message.Repository usando PostgreSQL
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository cria uma nova instância de MessageRepository
func NewMessageRepository(db *pgxpool.Pool) message.Repository {
	return &MessageRepository{
		db: db,
	}
}

// Save implementa message.Repository.Save
func (r *MessageRepository) Save(ctx context.Context, m *message.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Room == "" {
		m.Room = message.DefaultRoom
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}

	query := `
		INSERT INTO messages (id, user_id, username, content, room, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Username,
		m.Content,
		m.Room,
		m.Timestamp,
	)

	if err != nil {
		return fmt.Errorf("erro ao salvar mensagem: %w", err)
	}

	return nil
}

// ListByRoom implementa message.Repository.ListByRoom
//
// A coluna seq é um bigserial preenchido na inserção, então o desempate
// entre timestamps iguais é exatamente a ordem de chegada no banco.
func (r *MessageRepository) ListByRoom(ctx context.Context, room string) ([]message.Message, error) {
	if room == "" {
		room = message.DefaultRoom
	}

	query := `
		SELECT id, user_id, username, content, room, created_at
		FROM messages
		WHERE room = $1
		ORDER BY created_at ASC, seq ASC
	`

	rows, err := r.db.Query(ctx, query, room)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico: %w", err)
	}
	defer rows.Close()

	var messages []message.Message
	for rows.Next() {
		var msg message.Message
		err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Username,
			&msg.Content,
			&msg.Room,
			&msg.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler mensagem: %w", err)
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}

	return messages, nil
}

// CountByRoom implementa message.Repository.CountByRoom
func (r *MessageRepository) CountByRoom(ctx context.Context, room string) (int, error) {
	if room == "" {
		room = message.DefaultRoom
	}

	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM messages WHERE room = $1", room).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar mensagens: %w", err)
	}

	return count, nil
}
