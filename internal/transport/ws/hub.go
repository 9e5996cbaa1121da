package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgOrderState MessageType = "order_state" // Total + gift allowances after a mutation
	MsgSubmitted  MessageType = "submitted"
	MsgError      MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for respondent sessions
type Hub struct {
	// formID -> sessionID -> conn
	sessionConns map[string]map[string]*Connection

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	FormID    string
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to deliver to one session
type BroadcastMessage struct {
	FormID    string
	SessionID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		sessionConns: make(map[string]map[string]*Connection),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.sessionConns[conn.FormID] == nil {
				h.sessionConns[conn.FormID] = make(map[string]*Connection)
			}
			h.sessionConns[conn.FormID][conn.SessionID] = conn
			log.Printf("Session %s connected to form %s", conn.SessionID, conn.FormID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if sessions, ok := h.sessionConns[conn.FormID]; ok {
				if existing, ok := sessions[conn.SessionID]; ok && existing == conn {
					delete(sessions, conn.SessionID)
					close(conn.Send)
					log.Printf("Session %s disconnected from form %s", conn.SessionID, conn.FormID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			if sessions, ok := h.sessionConns[msg.FormID]; ok {
				if conn, ok := sessions[msg.SessionID]; ok {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToSession sends a message to one session (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(formID, sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		FormID:    formID,
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectSession closes a session's connection if any (implements service.Broadcaster)
func (h *Hub) DisconnectSession(formID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sessions, ok := h.sessionConns[formID]; ok {
		if conn, ok := sessions[sessionID]; ok {
			delete(sessions, sessionID)
			close(conn.Send)
		}
	}
}
