package rest

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"agrilink/internal/middleware"
	"agrilink/internal/ws"
	"agrilink/pkg/logger"
	jsonres "agrilink/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// clients are mobile apps; origin enforcement happens at the gateway
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub   *ws.Hub
	users middleware.UserResolver
}

func NewWSHandler(hub *ws.Hub, users middleware.UserResolver) *WSHandler {
	return &WSHandler{
		hub:   hub,
		users: users,
	}
}

// Serve upgrades the connection. Browsers cannot set headers on the
// websocket handshake, so the token rides in the query string.
func (h *WSHandler) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", "Missing token", nil))
	}

	identity, err := middleware.ResolveTokenIdentity(c.Request().Context(), h.users, token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", "Invalid token", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("Failed to upgrade websocket", err)
		return nil
	}

	client := &ws.Client{
		Hub:     h.hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		UserID:  identity.UserID,
		IsAdmin: identity.IsAdmin(),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	return nil
}
