// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	wstypes "msm-console/internal/domain/websocket"

	"go.uber.org/zap"
)

type Hub struct {
	// Registered clients by workspace ID
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Handler registry for modular message handling
	handlerRegistry *HandlerRegistry

	logger *zap.Logger
}

type BroadcastMessage struct {
	// WorkspaceIDs nil means every connected workspace.
	WorkspaceIDs []string
	Channel      wstypes.ChannelType
	Message      *wstypes.WSMessage
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[string]map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client, 16),
		broadcast:       make(chan *BroadcastMessage, 256),
		handlerRegistry: NewHandlerRegistry(),
		logger:          logger,
	}
}

// RegisterHandler registers a message handler
func (h *Hub) RegisterHandler(handler MessageHandler) {
	h.handlerRegistry.Register(handler)
}

// HandleClientMessage processes a message from a client using registered handlers
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) (bool, error) {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return false, nil // Will be handled by client's default handler
	}

	return true, handler.HandleMessage(ctx, client, msg)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.workspaceID] == nil {
		h.clients[client.workspaceID] = make(map[*Client]bool)
	}
	h.clients[client.workspaceID][client] = true

	h.logger.Info("websocket client connected",
		zap.String("workspace_id", client.workspaceID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"workspace_id": client.workspaceID,
		"channels":     wstypes.DefaultChannels,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.workspaceID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.workspaceID)
			}

			h.logger.Info("websocket client disconnected",
				zap.String("workspace_id", client.workspaceID),
				zap.Int("total", h.totalClients()),
			)
		}
	}
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.WorkspaceIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	for _, workspaceID := range msg.WorkspaceIDs {
		if clients, ok := h.clients[workspaceID]; ok {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
	}
}

// Push queues msg for every connection of one workspace. It never blocks a
// request: when the queue is full the event is dropped.
func (h *Hub) Push(workspaceID string, msg *wstypes.WSMessage) {
	select {
	case h.broadcast <- &BroadcastMessage{
		WorkspaceIDs: []string{workspaceID},
		Channel:      msg.Type.Channel(),
		Message:      msg,
	}:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping event",
			zap.String("workspace_id", workspaceID),
			zap.String("type", string(msg.Type)),
		)
	}
}

func (h *Hub) GetConnectedClients(workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.clients[workspaceID]; ok {
		return len(clients)
	}
	return 0
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

// DisconnectWorkspace closes every connection of a workspace, used when the
// workspace is evicted.
func (h *Hub) DisconnectWorkspace(workspaceID, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[workspaceID]; ok {
		disconnectMsg := wstypes.NewMessage(wstypes.EventTypeDisconnected, map[string]interface{}{
			"reason": reason,
		})

		for client := range clients {
			client.SendMessage(disconnectMsg)
			client.Close()
		}

		delete(h.clients, workspaceID)
		h.logger.Info("disconnected workspace clients",
			zap.String("workspace_id", workspaceID),
			zap.String("reason", reason),
		)
	}
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
}
