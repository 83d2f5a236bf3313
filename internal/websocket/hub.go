// Package websocket streams purchase activity to connected admin dashboards.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"featured-listing-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// feedChannel is the Redis channel relaying feed events across instances.
const feedChannel = "feature_feed_events"

// FeedEvent is one line on the admin live feed.
type FeedEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// feedEnvelope wraps an event on the Redis wire. Origin lets an instance
// skip its own messages, since local clients were already served directly.
type feedEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients map: AdminID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Identifies this instance on the Redis channel
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AdminID] = append(h.clients[client.AdminID], client)
			h.mu.Unlock()
			h.logger.Info("FeedHub", "Admin connected to feed", map[string]interface{}{"admin_id": client.AdminID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.AdminID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.AdminID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.AdminID]) == 0 {
					delete(h.clients, client.AdminID)
					h.logger.Info("FeedHub", "Admin disconnected from feed", map[string]interface{}{"admin_id": client.AdminID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a feed event to every connected dashboard, here and on
// sibling instances via Redis.
func (h *Hub) Broadcast(event FeedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("FeedHub", "Failed to marshal feed event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.broadcastLocal(data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(feedEnvelope{Origin: h.instanceID, Message: data})
		h.rdb.Publish(context.Background(), feedChannel, envelope)
	}
}

func (h *Hub) broadcastLocal(data []byte) {
	var stalled []*Client
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				stalled = append(stalled, client)
			}
		}
	}
	h.mu.RUnlock()

	// Drop slow consumers outside the lock. Only the Run loop closes Send,
	// and it ignores clients it has already removed, so a client stalled in
	// several broadcasts is still closed exactly once.
	for _, client := range stalled {
		h.unregister <- client
	}
}

// subscribeToRedis relays feed events published by sibling instances to the
// dashboards connected here.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, feedChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope feedEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if envelope.Origin == h.instanceID {
			continue
		}
		h.broadcastLocal(envelope.Message)
	}
}
