package api

import (
	"encoding/json"
	"sync"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type searchStartedPayload struct {
	SessionID string `json:"session_id"`
	ToMove    int    `json:"to_move"`
	BudgetMs  int64  `json:"budget_ms"`
}

type searchProgressPayload struct {
	SessionID string  `json:"session_id"`
	Depth     int     `json:"depth"`
	Move      moveDTO `json:"move"`
	Score     float64 `json:"score"`
	Nodes     int64   `json:"nodes"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

type searchResultPayload struct {
	SessionID string  `json:"session_id"`
	Move      moveDTO `json:"move"`
	Score     float64 `json:"score"`
	Depth     int     `json:"depth"`
	Nodes     int64   `json:"nodes"`
	WinProb   int     `json:"win_prob"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

// Hub fans search telemetry out to websocket observers. Slow clients are
// dropped rather than allowed to stall a search.
type Hub struct {
	mu                sync.Mutex
	clients           map[*client]struct{}
	broadcastStarted  chan searchStartedPayload
	broadcastProgress chan searchProgressPayload
	broadcastResult   chan searchResultPayload
}

type client struct {
	hub  *Hub
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:           make(map[*client]struct{}),
		broadcastStarted:  make(chan searchStartedPayload, 16),
		broadcastProgress: make(chan searchProgressPayload, 64),
		broadcastResult:   make(chan searchResultPayload, 16),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastStarted:
			h.broadcast(wsMessage{Type: "search_started", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastProgress:
			h.broadcast(wsMessage{Type: "search_progress", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastResult:
			h.broadcast(wsMessage{Type: "search_result", Payload: mustMarshal(payload)})
		}
	}
}

func (h *Hub) broadcast(msg wsMessage) {
	h.mu.Lock()
	for c := range h.clients {
		c.sendJSON(msg)
	}
	h.mu.Unlock()
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

// publishProgress is wired into the engine's per-depth callback. It never
// blocks: when the channel is full the update is dropped.
func (h *Hub) publishProgress(sessionID string, p engine.Progress) {
	payload := searchProgressPayload{
		SessionID: sessionID,
		Depth:     p.Depth,
		Move:      moveDTO{X: p.Move.X, Y: p.Move.Y, Player: colorToInt(p.Move.Color)},
		Score:     p.Score,
		Nodes:     p.Nodes,
		ElapsedMs: p.Elapsed.Milliseconds(),
	}
	select {
	case h.broadcastProgress <- payload:
	default:
	}
}

func (h *Hub) publishStarted(payload searchStartedPayload) {
	select {
	case h.broadcastStarted <- payload:
	default:
	}
}

func (h *Hub) publishResult(payload searchResultPayload) {
	select {
	case h.broadcastResult <- payload:
	default:
	}
}

func (c *client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
