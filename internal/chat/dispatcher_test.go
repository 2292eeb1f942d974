package chat

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/go-chat/internal/domain/message"
	"github.com/hugohenrick/go-chat/pkg/logger"
	"github.com/stretchr/testify/require"
)

func setupDispatcher(t *testing.T, repo *fakeMessageRepo) (*Dispatcher, *Hub, *Client, *Client) {
	t.Helper()

	hub := startHub(t)
	dispatcher := NewDispatcher(repo, hub, logger.NewLogger())

	a := NewClient(nil, hub, message.DefaultRoom, "u1", "alice", 0)
	b := NewClient(nil, hub, message.DefaultRoom, "u2", "bob", 0)
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.CountClients(message.DefaultRoom) == 2 },
		time.Second, 10*time.Millisecond)

	return dispatcher, hub, a, b
}

func TestDispatcher_ValidMessagePersistsThenBroadcasts(t *testing.T) {
	req := require.New(t)
	repo := &fakeMessageRepo{}
	dispatcher, _, a, b := setupDispatcher(t, repo)

	raw := []byte(`{"userId":"u1","username":"alice","message":"hi"}`)
	dispatcher.HandleMessage(context.Background(), a, raw)

	// Exatamente uma mensagem persistida
	req.Equal(1, repo.count())
	saved := repo.saved[0]
	req.Equal("u1", saved.UserID)
	req.Equal("alice", saved.Username)
	req.Equal("hi", saved.Content)
	req.Equal(message.DefaultRoom, saved.Room)
	req.NotEmpty(saved.ID)
	req.False(saved.Timestamp.IsZero())

	// Todos os pares recebem o evento, inclusive o remetente
	var got OutboundPayload
	req.NoError(json.Unmarshal(recv(t, a.Send()), &got))
	req.Equal(OutboundPayload{Username: "alice", Message: "hi"}, got)

	req.NoError(json.Unmarshal(recv(t, b.Send()), &got))
	req.Equal(OutboundPayload{Username: "alice", Message: "hi"}, got)
}

func TestDispatcher_IncompletePayloadIsDropped(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"username":"alice","message":"hi"}`),
		[]byte(`{"userId":"u1","message":"hi"}`),
		[]byte(`{"userId":"u1","username":"alice"}`),
		[]byte(`{"userId":"","username":"","message":""}`),
		[]byte(`nem json`),
	}

	for _, raw := range payloads {
		repo := &fakeMessageRepo{}
		dispatcher, _, a, b := setupDispatcher(t, repo)

		dispatcher.HandleMessage(context.Background(), a, raw)

		// Nada persistido, nada distribuído, remetente não recebe erro
		require.Equal(t, 0, repo.count(), "payload: %s", raw)
		expectNothing(t, a.Send())
		expectNothing(t, b.Send())
	}
}

func TestDispatcher_PersistenceFailureSuppressesBroadcast(t *testing.T) {
	repo := &fakeMessageRepo{err: errors.New("banco indisponível")}
	dispatcher, _, a, b := setupDispatcher(t, repo)

	raw := []byte(`{"userId":"u1","username":"alice","message":"hi"}`)
	dispatcher.HandleMessage(context.Background(), a, raw)

	// A mensagem nunca é distribuída antes de estar durável
	expectNothing(t, a.Send())
	expectNothing(t, b.Send())
}

func TestDispatcher_PerConnectionOrderPreserved(t *testing.T) {
	req := require.New(t)
	repo := &fakeMessageRepo{}
	dispatcher, _, a, _ := setupDispatcher(t, repo)

	for _, content := range []string{"um", "dois", "três"} {
		payload, err := json.Marshal(InboundPayload{UserID: "u1", Username: "alice", Message: content})
		req.NoError(err)
		dispatcher.HandleMessage(context.Background(), a, payload)
	}

	req.Equal(3, repo.count())
	req.Equal("um", repo.saved[0].Content)
	req.Equal("dois", repo.saved[1].Content)
	req.Equal("três", repo.saved[2].Content)
}
