package devserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/navkit-dev/navkit/pkg/router"
)

// EventMessage is sent to debug clients via WebSocket, one per router
// lifecycle event.
type EventMessage struct {
	Type         string `json:"type"`
	Kind         string `json:"kind"`
	NavigationID int64  `json:"navigationId"`
	Description  string `json:"description"`
}

// EventFeed manages WebSocket connections for the router event stream.
// Connected debug clients receive every router lifecycle event as JSON.
type EventFeed struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	detach func()
}

// NewEventFeed creates an event feed with no attached router.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
	}
}

// Attach subscribes the feed to the router's event stream. The feed is a
// passive observer; broadcast failures never affect navigation.
func (f *EventFeed) Attach(r *router.Router) {
	f.detach = r.Subscribe(func(ev router.Event) {
		f.broadcast(EventMessage{
			Type:         "event",
			Kind:         ev.Kind(),
			NavigationID: ev.NavigationID(),
			Description:  ev.String(),
		})
	})
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (f *EventFeed) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := f.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	f.mu.Lock()
	f.clients[conn] = true
	f.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}

// broadcast sends a message to all connected clients.
func (f *EventFeed) broadcast(msg EventMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	f.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(f.clients))
	for client := range f.clients {
		clients = append(clients, client)
	}
	f.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			f.mu.Lock()
			delete(f.clients, client)
			f.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (f *EventFeed) ClientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Close detaches from the router and closes all client connections.
func (f *EventFeed) Close() {
	if f.detach != nil {
		f.detach()
		f.detach = nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		client.Close()
		delete(f.clients, client)
	}
}
