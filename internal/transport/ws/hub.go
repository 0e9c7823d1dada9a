package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// MessageType defines the type of WebSocket message.
type MessageType string

const (
	MsgDisconnect MessageType = "disconnect"
)

// Message is the WebSocket envelope format.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the spectator connections of live games. A game can have any
// number of watching screens; all of them receive every event.
type Hub struct {
	conns map[string]map[*Connection]struct{} // gameID -> connections
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	disconnect chan string

	log logrus.FieldLogger
}

// Connection is one spectator screen.
type Connection struct {
	GameID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage targets all connections of one game.
type BroadcastMessage struct {
	GameID  string
	Message *Message
}

// NewHub creates the hub and starts its event loop.
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		disconnect: make(chan string),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.GameID] == nil {
				h.conns[conn.GameID] = make(map[*Connection]struct{})
			}
			h.conns[conn.GameID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.WithField("game_id", conn.GameID).Debug("spectator connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.GameID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.GameID)
					}
				}
			}
			h.mu.Unlock()
			h.log.WithField("game_id", conn.GameID).Debug("spectator disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.GameID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case gameID := <-h.disconnect:
			data, _ := json.Marshal(&Message{Type: MsgDisconnect, Payload: json.RawMessage(`{"gameId":"` + gameID + `"}`)})
			h.mu.Lock()
			for conn := range h.conns[gameID] {
				select {
				case conn.Send <- data:
				default:
				}
				close(conn.Send)
			}
			delete(h.conns, gameID)
			h.mu.Unlock()
		}
	}
}

// Register adds a connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToGame sends an event to every screen watching a game
// (implements service.Broadcaster).
func (h *Hub) BroadcastToGame(gameID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		GameID: gameID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectGame tells every screen of a game to go away and closes the
// connections (implements service.Broadcaster).
func (h *Hub) DisconnectGame(gameID string) {
	h.disconnect <- gameID
}
