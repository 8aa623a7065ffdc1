// Package notify is the fire-and-forget notification sink: connected clients
// receive short "show this to the user" messages over a websocket. Delivery
// is best-effort; a slow or absent client never blocks or fails the
// operation that raised the notice.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

type Notice struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Notice
	direct     chan directNotice
	stop       chan struct{}
	done       chan struct{}

	mu      sync.RWMutex
	stopped bool
	clients map[*Client]bool
}

type directNotice struct {
	userID uuid.UUID
	notice Notice
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan Notice, 64),
		direct:     make(chan directNotice, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case notice := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.push(notice)
			}
			h.mu.RUnlock()

		case dn := <-h.direct:
			h.mu.RLock()
			for client := range h.clients {
				if client.userID == dn.userID {
					client.push(dn.notice)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop shuts the hub down and waits for Run to exit.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// Unregister detaches a client, tolerating a hub that has already stopped;
// a blocking send here would strand the client's read pump at shutdown.
func (h *Hub) Unregister(c *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	// Non-blocking in case the hub stops between the check and the send.
	select {
	case h.unregister <- c:
	default:
	}
}

// Broadcast queues a notice for every connected client. Drops the notice if
// the hub's queue is full.
func (h *Hub) Broadcast(title, body string) {
	select {
	case h.broadcast <- Notice{Title: title, Body: body}:
	default:
	}
}

// Notify queues a notice for one user's connections. Drops on backpressure.
func (h *Hub) Notify(userID uuid.UUID, title, body string) {
	select {
	case h.direct <- directNotice{userID: userID, notice: Notice{Title: title, Body: body}}:
	default:
	}
}
