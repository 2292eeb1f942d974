package chat

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Tempo máximo para escrever um frame no cliente
	writeWait = 10 * time.Second

	// Tempo máximo sem pong antes de considerar a conexão morta
	pongWait = 60 * time.Second

	// Intervalo de envio de pings (precisa ser menor que pongWait)
	pingPeriod = 54 * time.Second

	// Tamanho do buffer de envio de cada cliente
	sendBufferSize = 256
)

// Client representa uma conexão WebSocket autenticada em uma sala
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	hub      *Hub
	room     string
	userID   string
	username string
	closed   bool

	maxMessageSize int64
}

// NewClient cria um novo Client para a conexão informada
func NewClient(conn *websocket.Conn, hub *Hub, room, userID, username string, maxMessageSize int64) *Client {
	if conn != nil && maxMessageSize > 0 {
		conn.SetReadLimit(maxMessageSize)
	}

	return &Client{
		conn:           conn,
		send:           make(chan []byte, sendBufferSize),
		hub:            hub,
		room:           room,
		userID:         userID,
		username:       username,
		maxMessageSize: maxMessageSize,
	}
}

// Send retorna o canal de leitura das mensagens de saída do cliente
func (c *Client) Send() <-chan []byte {
	return c.send
}

// ReadPump lê os frames do cliente e os entrega ao dispatcher, um de cada
// vez, preservando a ordem de eventos de uma mesma conexão.
// Deve rodar em goroutine própria; retorna quando a conexão encerra
func (c *Client) ReadPump(dispatcher *Dispatcher) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("erro de leitura no WebSocket", "username", c.username, "err", err)
			}
			break
		}

		dispatcher.HandleMessage(context.Background(), c, raw)
	}
}

// WritePump envia ao cliente os payloads do canal send e mantém a conexão
// viva com pings periódicos. Deve rodar em goroutine própria
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// O hub fechou o canal
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
