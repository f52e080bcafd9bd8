package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"planpoker/models"
)

// Hub tracks live connections and which games they belong to, and fans
// outbound events out to them. It is the Notifier used by GameService.
type Hub struct {
	clients     map[string]*Client
	rooms       map[string]map[string]*Client
	register    chan *Client
	unregister  chan *Client
	mutex       sync.RWMutex
	gameService *GameService
}

type Client struct {
	hub    *Hub
	id     string
	socket *websocket.Conn
	send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetGameService wires the event dispatcher. Must be called before Run.
func (h *Hub) SetGameService(gameService *GameService) {
	h.gameService = gameService
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Client registered: %s - Total clients: %d", client.id, total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				for gameID, members := range h.rooms {
					if _, bound := members[client.id]; bound {
						delete(members, client.id)
						if len(members) == 0 {
							delete(h.rooms, gameID)
						}
					}
				}
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Client unregistered: %s - Total clients: %d", client.id, total)

			// The store, not the registry, decides which games the
			// connection actually played in.
			if h.gameService != nil {
				h.gameService.Disconnect(client.id)
			}
		}
	}
}

// BindToGame associates a connection with a game so broadcasts reach it.
func (h *Hub) BindToGame(clientID string, gameID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return
	}
	members, ok := h.rooms[gameID]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[gameID] = members
	}
	members[clientID] = client
}

// BroadcastToGame delivers an event to every connection bound to the game.
// Delivery is fire and forget; a connection whose buffer is full is dropped.
func (h *Hub) BroadcastToGame(gameID string, event string, payload any) {
	data, err := json.Marshal(models.Message{Type: event, Payload: payload})
	if err != nil {
		log.Printf("Error marshaling %s message: %v", event, err)
		return
	}

	h.mutex.RLock()
	members := make([]*Client, 0, len(h.rooms[gameID]))
	for _, client := range h.rooms[gameID] {
		members = append(members, client)
	}
	h.mutex.RUnlock()

	for _, client := range members {
		select {
		case client.send <- data:
		default:
			log.Printf("Client %s send buffer full, closing connection", client.id)
			client.socket.Close()
		}
	}
}

// SendToClient delivers an event to exactly one connection.
func (h *Hub) SendToClient(clientID string, event string, payload any) {
	data, err := json.Marshal(models.Message{Type: event, Payload: payload})
	if err != nil {
		log.Printf("Error marshaling %s message: %v", event, err)
		return
	}

	h.mutex.RLock()
	client, ok := h.clients[clientID]
	h.mutex.RUnlock()
	if !ok {
		return
	}

	select {
	case client.send <- data:
	default:
		log.Printf("Client %s send buffer full, closing connection", client.id)
		client.socket.Close()
	}
}

// GameMembers returns the ids of connections currently bound to a game.
func (h *Hub) GameMembers(gameID string) []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var ids []string
	for id := range h.rooms[gameID] {
		ids = append(ids, id)
	}
	return ids
}

// RegisterClient adopts an upgraded websocket connection and starts its
// read and write pumps.
func (h *Hub) RegisterClient(conn *websocket.Conn) *Client {
	client := &Client{
		hub:    h,
		id:     NewClientID(),
		socket: conn,
		send:   make(chan []byte, 256),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()

	for {
		_, data, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Error unmarshaling message from %s: %v", c.id, err)
			continue
		}

		c.handleMessage(msg.Type, msg.Payload)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

// handleMessage dispatches one inbound frame into the state machine. A
// payload that fails to decode is dropped without touching any game.
func (c *Client) handleMessage(event string, payload json.RawMessage) {
	service := c.hub.gameService

	switch event {
	case models.EventJoinGame:
		var p models.JoinPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", event, c.id, err)
			return
		}
		service.Join(p.GameID, c.id, p.Username)

	case models.EventStartGame:
		var p models.StartPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", event, c.id, err)
			return
		}
		service.Start(p.GameID, p.Username, p.Topic)

	case models.EventVote:
		var p models.VotePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", event, c.id, err)
			return
		}
		service.Vote(p.GameID, p.Username, p.Vote)

	case models.EventReveal:
		var p models.RevealPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", event, c.id, err)
			return
		}
		service.Reveal(p.GameID)

	case models.EventRestartGame:
		var p models.RestartPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			log.Printf("Malformed %s payload from %s: %v", event, c.id, err)
			return
		}
		service.Restart(p.GameID)

	default:
		log.Printf("Unknown message type: %s from client %s", event, c.id)
	}
}
