package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{
			name: "mensagem completa",
			msg:  Message{UserID: "u1", Username: "alice", Content: "hi"},
		},
		{
			name:    "sem user_id",
			msg:     Message{Username: "alice", Content: "hi"},
			wantErr: true,
		},
		{
			name:    "sem username",
			msg:     Message{UserID: "u1", Content: "hi"},
			wantErr: true,
		},
		{
			name:    "sem content",
			msg:     Message{UserID: "u1", Username: "alice"},
			wantErr: true,
		},
		{
			name:    "vazia",
			msg:     Message{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMessage)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
