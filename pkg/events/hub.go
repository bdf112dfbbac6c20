package events

import (
	"sync"

	"github.com/gorilla/websocket"
)

// subscriber is one connected audit-feed consumer.
type subscriber struct {
	conn *websocket.Conn
	send chan Event // buffered; slow consumers drop events, the table is the durable record
	done chan struct{}
}

// Hub fans committed events out to connected WebSocket subscribers. Delivery
// is best-effort: the events table, written in the mutating transaction, is
// the audit trail; the hub is a live view over it.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

func (h *Hub) add(conn *websocket.Conn) *subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{
		conn: conn,
		send: make(chan Event, 32),
		done: make(chan struct{}),
	}
	h.subs[sub] = struct{}{}
	return sub
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; ok {
		close(sub.done)
		delete(h.subs, sub)
	}
}

// SubscriberCount reports how many feed connections are currently open.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Broadcast sends an event to every subscriber without blocking the caller.
func (h *Hub) Broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.send <- e:
		default:
			// queue full; drop rather than stall settlement
		}
	}
}
