package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "admin-notifications"

// Event is a real-time message pushed to connected admin clients
type Event struct {
	Type    string      `json:"type"` // "admin_notification"
	Payload interface{} `json:"payload"`
}

// Hub manages admin WebSocket clients. Every connected admin receives
// every broadcast; Redis pub/sub fans broadcasts out across instances.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *Event, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
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

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// BroadcastAdminNotification pushes an admin notification to every
// connected admin (local + Redis publish for other instances)
func (h *Hub) BroadcastAdminNotification(n *domain.AdminNotification) {
	event := &Event{Type: "admin_notification", Payload: n}

	select {
	case h.broadcast <- event:
	default:
		// hub backlog full, drop rather than block the request path
	}

	if h.redisClient != nil {
		data, err := json.Marshal(event)
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
	}
}

// subscribeRedis listens for notifications published by other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err == nil {
				// local broadcast only, never re-publish
				h.broadcast <- &event
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
