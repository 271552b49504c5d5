// internal/handlers/websocket/websocket.go
package websocket

import (
	"net/http"
	"net/url"
	"time"

	"msm-console/internal/middleware"
	"msm-console/internal/pkg/response"
	ws "msm-console/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins, or from the
// console's own host when none are given.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if allowed[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
		logger: logger,
	}
}

// HandleConnection attaches the push channel to the browser's workspace.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	workspace, ok := middleware.GetWorkspace(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "missing console workspace", ws.ErrNoWorkspace)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, workspace.ID)
	h.hub.Register <- client

	h.logger.Info("WebSocket client connected",
		zap.String("workspace_id", workspace.ID),
		zap.String("ip", c.ClientIP()),
	)

	go client.WritePump()
	go client.ReadPump()
}

// GetStats returns WebSocket connection statistics
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	}
	if workspace, ok := middleware.GetWorkspace(c); ok {
		stats["workspace_connections"] = h.hub.GetConnectedClients(workspace.ID)
	}

	response.Success(c, http.StatusOK, "WebSocket stats", stats)
}
