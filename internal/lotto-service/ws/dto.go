package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// GameType: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type     string `json:"type"`     // subscribe | unsubscribe | ping
	GameType string `json:"gameType"` // requerido em subscribe/unsubscribe
}

// DrawUpdate representa um sorteio recém-persistido enviado aos clientes WebSocket
type DrawUpdate struct {
	GameType string      `json:"gameType"`
	Payload  interface{} `json:"payload"`
}
