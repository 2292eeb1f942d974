// Package chat implementa o canal de tempo real do chat: o registro de
// conexões WebSocket por sala e o fan-out de mensagens persistidas para
// todos os clientes conectados.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/hugohenrick/go-chat/pkg/logger"
)

// Event representa um payload pronto para ser distribuído a uma sala
type Event struct {
	Room    string
	Payload []byte
}

// Hub mantém o registro de clientes conectados, particionado por sala,
// e distribui eventos para todos os membros de uma sala.
// Hoje só existe a sala padrão, mas o registro já é indexado por sala
// para não fechar a porta para múltiplas salas
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mutex      sync.RWMutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	log        logger.Logger
}

// NewHub cria uma nova instância de Hub pronta para uso
func NewHub(log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		log:        log,
	}
}

// Register adiciona um cliente ao registro da sua sala
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.ctx.Done():
	}
}

// Unregister remove um cliente do registro. Nenhum aviso é enviado aos
// demais membros da sala
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// Broadcast envia um evento para todos os clientes da sala, inclusive o
// remetente
func (h *Hub) Broadcast(room string, payload []byte) {
	select {
	case h.broadcast <- Event{Room: room, Payload: payload}:
	case <-h.ctx.Done():
	}
}

// CountClients retorna quantos clientes estão conectados em uma sala
func (h *Hub) CountClients(room string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[room])
}

// StartClient registra o cliente e inicia suas goroutines de leitura e
// escrita, rastreadas para o desligamento gracioso
func (h *Hub) StartClient(c *Client, dispatcher *Dispatcher) {
	h.Register(c)

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.WritePump()
	}()
	go func() {
		defer h.wg.Done()
		c.ReadPump(dispatcher)
	}()
}

// Run inicia o loop de eventos do hub. Deve ser chamado em uma goroutine
// própria; retorna quando Shutdown é chamado
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAllClients()
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case event := <-h.broadcast:
			h.handleBroadcast(event)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	if c == nil {
		return
	}

	h.mutex.Lock()
	room, ok := h.rooms[c.room]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[c.room] = room
	}
	c.closed = false
	room[c] = true
	count := len(room)
	h.mutex.Unlock()

	h.log.Info("usuário conectado", "room", c.room, "username", c.username, "total", count)
}

func (h *Hub) removeClient(c *Client) {
	h.mutex.Lock()
	room, ok := h.rooms[c.room]
	if !ok || !room[c] {
		h.mutex.Unlock()
		return
	}
	delete(room, c)
	c.closed = true
	if len(room) == 0 {
		delete(h.rooms, c.room)
	}
	count := len(room)
	h.mutex.Unlock()

	// Fechar o canal depois de liberar o lock
	close(c.send)
	h.log.Info("usuário desconectado", "room", c.room, "username", c.username, "total", count)
}

// handleBroadcast distribui o evento para todos os clientes da sala.
// Clientes com buffer de envio cheio são removidos
func (h *Hub) handleBroadcast(event Event) {
	h.mutex.RLock()
	clients := make([]*Client, 0, len(h.rooms[event.Room]))
	for client := range h.rooms[event.Room] {
		clients = append(clients, client)
	}
	h.mutex.RUnlock()

	var failed []*Client
	for _, client := range clients {
		if !h.safeSend(client, event.Payload) {
			failed = append(failed, client)
		}
	}

	h.dropFailedClients(failed)
}

// safeSend tenta entregar o payload ao cliente sem bloquear o hub
func (h *Hub) safeSend(c *Client, payload []byte) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	room, ok := h.rooms[c.room]
	if !ok || !room[c] || c.closed {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (h *Hub) dropFailedClients(failed []*Client) {
	if len(failed) == 0 {
		return
	}

	h.mutex.Lock()
	var channels []chan []byte
	for _, client := range failed {
		room, ok := h.rooms[client.room]
		if !ok || !room[client] {
			continue
		}
		delete(room, client)
		client.closed = true
		if len(room) == 0 {
			delete(h.rooms, client.room)
		}
		channels = append(channels, client.send)
		h.log.Warn("cliente removido por buffer de envio cheio", "room", client.room, "username", client.username)
	}
	h.mutex.Unlock()

	for _, ch := range channels {
		close(ch)
	}
}

// closeAllClients remove todos os clientes do registro e fecha seus canais
// e conexões. Fechar o canal send faz o WritePump retornar de imediato, sem
// esperar o próximo tick de ping
func (h *Hub) closeAllClients() {
	h.mutex.Lock()
	var clients []*Client
	for name, room := range h.rooms {
		for client := range room {
			client.closed = true
			clients = append(clients, client)
		}
		delete(h.rooms, name)
	}
	h.mutex.Unlock()

	for _, client := range clients {
		close(client.send)
		if client.conn != nil {
			_ = client.conn.Close()
		}
	}

	h.log.Info("conexões encerradas", "total", len(clients))
}

// Shutdown encerra o hub e aguarda o término das goroutines dos clientes,
// respeitando o timeout informado
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return context.DeadlineExceeded
	}
}
