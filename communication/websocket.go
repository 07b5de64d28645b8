package communication

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// WSEvent is the envelope pushed to dashboard clients.
type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventLog                = "LOG"
	EventTournamentStart    = "TOURNAMENT_START"
	EventTournamentComplete = "TOURNAMENT_COMPLETE"
	EventTournamentError    = "TOURNAMENT_ERROR"
)

// WebSocketManager fans events out to every connected dashboard client.
type WebSocketManager struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan WSEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
}

var (
	wsManager *WebSocketManager
	once      sync.Once
)

// GetWSManager returns the singleton manager, starting its loop on first
// use.
func GetWSManager() *WebSocketManager {
	once.Do(func() {
		wsManager = &WebSocketManager{
			clients:    make(map[*websocket.Conn]bool),
			broadcast:  make(chan WSEvent, 64),
			register:   make(chan *websocket.Conn),
			unregister: make(chan *websocket.Conn),
		}
		go wsManager.run()
	})
	return wsManager
}

func (manager *WebSocketManager) run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client] = true
			manager.mu.Unlock()

		case client := <-manager.unregister:
			manager.mu.Lock()
			if _, ok := manager.clients[client]; ok {
				delete(manager.clients, client)
				client.Close()
			}
			manager.mu.Unlock()

		case event := <-manager.broadcast:
			manager.mu.Lock()
			for client := range manager.clients {
				if err := client.WriteJSON(event); err != nil {
					log.Printf("WebSocket error: %v", err)
					client.Close()
					delete(manager.clients, client)
				}
			}
			manager.mu.Unlock()
		}
	}
}

// BroadcastEvent pushes one event to all connected clients.
func BroadcastEvent(eventType string, payload interface{}) {
	GetWSManager().broadcast <- WSEvent{Type: eventType, Payload: payload}
}

func (w *WebSocketManager) Register() chan<- *websocket.Conn {
	return w.register
}

func (w *WebSocketManager) Unregister() chan<- *websocket.Conn {
	return w.unregister
}
