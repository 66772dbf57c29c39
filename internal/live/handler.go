package live

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint. allowOrigin follows the HTTP CORS policy.
func NewHandler(hub *Hub, allowOrigin func(origin string) bool) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowOrigin == nil {
					return true
				}
				return allowOrigin(origin)
			},
		},
	}
}

func (h *Handler) Serve(c echo.Context) error {
	auctionID := c.Param("id")
	if auctionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": map[string]string{"code": "bad_request", "message": "auction id is required"},
		})
	}
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logrus.WithError(err).WithField("auction", auctionID).Warn("websocket upgrade failed")
		return nil
	}
	client := &Client{
		ID:        uuid.NewString(),
		AuctionID: auctionID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
	}
	h.hub.register(client)
	client.send <- []byte(`{"type":"connected","auctionId":"` + auctionID + `","clientId":"` + client.ID + `"}`)
	go client.writePump()
	go client.readPump(h.hub)
	return nil
}
