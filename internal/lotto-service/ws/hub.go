package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub gerencia conexões WebSocket e assinaturas por jogo
// subs: mapeia gameType para o conjunto de conexões inscritas
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// gameType -> set of connections
	subs map[string]map[*websocket.Conn]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[string]map[*websocket.Conn]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
// Permite subscribe/unsubscribe por jogo e responde a pings
// Cada cliente pode acompanhar múltiplos jogos ao mesmo tempo
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			h.mu.Lock()
			if _, ok := h.subs[msg.GameType]; !ok {
				h.subs[msg.GameType] = make(map[*websocket.Conn]struct{})
			}
			h.subs[msg.GameType][conn] = struct{}{}
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			if m, ok := h.subs[msg.GameType]; ok {
				delete(m, conn)
				if len(m) == 0 {
					delete(h.subs, msg.GameType)
				}
			}
			h.mu.Unlock()
		case "ping":
			_ = conn.WriteJSON(map[string]string{"type": "pong"})
		}
	}

	// remove a conexão de todas as assinaturas ao encerrar
	h.mu.Lock()
	for game, conns := range h.subs {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subs, game)
		}
	}
	h.mu.Unlock()
}

// Broadcast envia a atualização para todos os clientes inscritos no jogo
func (h *Hub) Broadcast(upd DrawUpdate) {
	payload, err := json.Marshal(upd)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subs[upd.GameType]))
	for c := range h.subs[upd.GameType] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		_ = c.WriteMessage(websocket.TextMessage, payload)
	}
}
