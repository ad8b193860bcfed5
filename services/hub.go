package services

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans scoring updates out to every client watching an evening.
type Hub struct {
	clients     map[*Client]bool
	broadcast   chan []byte
	register    chan *Client
	unregister  chan *Client
	mutex       sync.RWMutex
	gameService *GameService
}

type Client struct {
	hub         *Hub
	id          string
	socket      *websocket.Conn
	send        chan []byte
	eveningCode string
	playerID    int
	playerName  string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub(gameService *GameService) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		broadcast:   make(chan []byte),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		gameService: gameService,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client registered: %s for evening %s (player %d: %s) - Total clients: %d", client.id, client.eveningCode, client.playerID, client.playerName, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered: %s for evening %s (player %d: %s) - Total clients: %d", client.id, client.eveningCode, client.playerID, client.playerName, len(h.clients))
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastToEvening sends a typed message to every client connected for
// the given evening code.
func (h *Hub) BroadcastToEvening(eveningCode string, messageType string, payload interface{}) {
	message := Message{
		Type:    messageType,
		Payload: payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.RLock()
	for client := range h.clients {
		if strings.EqualFold(client.eveningCode, eveningCode) {
			select {
			case client.send <- data:
			default:
				close(client.send)
				delete(h.clients, client)
			}
		}
	}
	h.mutex.RUnlock()
}

// sendStandings answers one client's request for the current standings of
// a single game block.
func (h *Hub) sendStandings(client *Client, blockID string) {
	if h.gameService == nil {
		return
	}
	scorecard, err := h.gameService.GetStandings(client.eveningCode, blockID)
	if err != nil {
		log.Printf("Error loading standings for client %s: %v", client.id, err)
		return
	}
	h.sendTo(client, Message{
		Type: "standings",
		Payload: map[string]interface{}{
			"block_id":    blockID,
			"finalScores": scorecard.FinalScores,
			"positions":   scorecard.Positions,
			"winnerIds":   scorecard.WinnerIDs,
			"details":     scorecard.Details,
		},
	})
}

// sendSummary answers one client's request for the evening summary.
func (h *Hub) sendSummary(client *Client) {
	if h.gameService == nil {
		return
	}
	summary, err := h.gameService.EveningSummary(client.eveningCode)
	if err != nil {
		log.Printf("Error loading summary for client %s: %v", client.id, err)
		return
	}
	h.sendTo(client, Message{Type: "evening_summary", Payload: summary})
}

func (h *Hub) sendTo(client *Client, message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	select {
	case client.send <- data:
	default:
		close(client.send)
		h.mutex.Lock()
		delete(h.clients, client)
		h.mutex.Unlock()
	}
}

func (h *Hub) ConnectedPlayers(eveningCode string) []int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var playerIDs []int
	for client := range h.clients {
		if strings.EqualFold(client.eveningCode, eveningCode) {
			playerIDs = append(playerIDs, client.playerID)
		}
	}
	return playerIDs
}

func (h *Hub) RegisterClient(conn *websocket.Conn, eveningCode string, playerID int, playerName string) *Client {
	client := &Client{
		hub:         h,
		id:          uuid.NewString(),
		socket:      conn,
		send:        make(chan []byte, 256),
		eveningCode: strings.ToLower(eveningCode),
		playerID:    playerID,
		playerName:  playerName,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
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

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, _ := json.Marshal(Message{Type: "pong", Payload: "pong"})
		c.send <- data

	case "request_standings":
		payload, _ := msg.Payload.(map[string]interface{})
		blockID, _ := payload["block_id"].(string)
		if blockID == "" {
			log.Printf("Client %s requested standings without a block id", c.id)
			return
		}
		c.hub.sendStandings(c, blockID)

	case "request_summary":
		c.hub.sendSummary(c)

	default:
		log.Printf("Unknown message type: %s from player %d (%s) in evening %s", msg.Type, c.playerID, c.playerName, c.eveningCode)
	}
}
