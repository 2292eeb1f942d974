package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hugohenrick/go-chat/internal/adapter/api/controller"
	"github.com/hugohenrick/go-chat/internal/adapter/api/route"
	"github.com/hugohenrick/go-chat/internal/chat"
	"github.com/hugohenrick/go-chat/internal/domain/message"
	"github.com/hugohenrick/go-chat/internal/domain/user"
	"github.com/hugohenrick/go-chat/pkg/logger"
	"github.com/hugohenrick/go-chat/pkg/session"
	"github.com/stretchr/testify/require"
)

func newWSServer(t *testing.T, messages message.Repository) (*httptest.Server, *chat.Hub, *session.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lg := logger.NewLogger()
	sessions, err := session.NewService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	users := newFakeUserRepo()
	hub := chat.NewHub(lg)
	go hub.Run()
	t.Cleanup(func() {
		_ = hub.Shutdown(time.Second)
	})

	dispatcher := chat.NewDispatcher(messages, hub, lg)
	authController := controller.NewAuthController(users, sessions, lg)
	chatController := controller.NewChatController(messages, hub, dispatcher, []string{"*"}, 4096, lg)

	router := gin.New()
	route.SetupChatRoutes(router, chatController, authController, sessions)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, hub, sessions
}

func wsUser(id, username string) *user.User {
	return &user.User{ID: id, Username: username, Email: username + "@example.com"}
}

func dialWS(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{}
	header.Add("Cookie", session.CookieName+"="+token)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	return payload
}

func TestWebSocket_MessageReachesAllConnectedPeers(t *testing.T) {
	req := require.New(t)
	messages := &fakeMessageRepo{}
	srv, hub, sessions := newWSServer(t, messages)

	tokenA, err := sessions.Issue(wsUser("u1", "alice"))
	req.NoError(err)
	tokenB, err := sessions.Issue(wsUser("u2", "bob"))
	req.NoError(err)

	connA := dialWS(t, srv, tokenA)
	connB := dialWS(t, srv, tokenB)

	req.Eventually(func() bool { return hub.CountClients(message.DefaultRoom) == 2 },
		2*time.Second, 10*time.Millisecond)

	payload := []byte(`{"userId":"u1","username":"alice","message":"hi"}`)
	req.NoError(connA.WriteMessage(websocket.TextMessage, payload))

	expected := `{"username":"alice","message":"hi"}`
	req.JSONEq(expected, string(readWS(t, connA)))
	req.JSONEq(expected, string(readWS(t, connB)))

	// Exatamente uma mensagem persistida, antes da distribuição
	msgs, err := messages.ListByRoom(context.Background(), message.DefaultRoom)
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal("hi", msgs[0].Content)
}

func TestWebSocket_HandshakeRequiresSession(t *testing.T) {
	req := require.New(t)
	srv, _, _ := newWSServer(t, &fakeMessageRepo{})

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)

	req.Error(err)
	req.Nil(conn)
	if resp != nil {
		defer resp.Body.Close()
		req.Equal(http.StatusFound, resp.StatusCode)
	}
}

func TestWebSocket_ShutdownClosesActiveConnections(t *testing.T) {
	req := require.New(t)
	srv, hub, sessions := newWSServer(t, &fakeMessageRepo{})

	token, err := sessions.Issue(wsUser("u1", "alice"))
	req.NoError(err)

	conn := dialWS(t, srv, token)
	req.Eventually(func() bool { return hub.CountClients(message.DefaultRoom) == 1 },
		2*time.Second, 10*time.Millisecond)

	// O desligamento com um cliente conectado termina bem antes do timeout,
	// sem esperar o próximo tick de ping
	start := time.Now()
	req.NoError(hub.Shutdown(5 * time.Second))
	req.Less(time.Since(start), 2*time.Second)

	// A conexão do cliente é encerrada
	req.NoError(conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = conn.ReadMessage()
	req.Error(err)
}

func TestWebSocket_DisconnectRemovesClient(t *testing.T) {
	req := require.New(t)
	srv, hub, sessions := newWSServer(t, &fakeMessageRepo{})

	token, err := sessions.Issue(wsUser("u1", "alice"))
	req.NoError(err)

	conn := dialWS(t, srv, token)
	req.Eventually(func() bool { return hub.CountClients(message.DefaultRoom) == 1 },
		2*time.Second, 10*time.Millisecond)

	req.NoError(conn.Close())
	req.Eventually(func() bool { return hub.CountClients(message.DefaultRoom) == 0 },
		2*time.Second, 10*time.Millisecond)
}
