package handler

import (
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origin is enforced by the auth middleware, not the upgrade
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades admin connections onto the notification hub
type WSHandler struct {
	hub *ws.Hub
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect handles GET /api/v1/admin/notifications/ws
func (h *WSHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		common.ErrorResponse(c, http.StatusBadRequest, "WebSocket upgrade failed", err)
		return
	}

	client := ws.NewClient(h.hub, conn, middleware.GetUserID(c))
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
