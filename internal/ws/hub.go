package ws

import (
	"log"
	"sync"
)

// Hub fans delivered notifications out to every connected client. It
// satisfies the dispatcher's Broadcaster seam.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	broadcast chan []byte
	done      chan struct{}
	logger    *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan []byte, 1024),
		done:      make(chan struct{}),
		logger:    logger,
	}
}

// Run drains the broadcast queue onto client send buffers. Slow
// consumers are dropped rather than allowed to block the loop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return
		case message := <-h.broadcast:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				targets = append(targets, c)
			}
			h.mu.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- message:
				default:
					h.drop(client)
				}
			}

			if h.logger != nil {
				h.logger.Printf("WS notification broadcast | clients=%d", len(targets))
			}
		}
	}
}

func (h *Hub) Stop() {
	if h == nil {
		return
	}
	close(h.done)
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	if h.logger != nil {
		h.logger.Printf("WS connected | total_clients=%d", total)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.drop(client)
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		close(client.send)
		if h.logger != nil {
			h.logger.Printf("WS disconnected | total_clients=%d", total)
		}
	}
}

// Broadcast enqueues a message for every connected client. Never blocks;
// messages are dropped when the queue is full.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		if h.logger != nil {
			h.logger.Printf("WS broadcast dropped | reason=buffer_full")
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
