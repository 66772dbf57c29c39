package live

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastDropsSlowViewers(t *testing.T) {
	h := NewHub()
	fast := &Client{ID: "fast", AuctionID: "a1", send: make(chan []byte, 2)}
	slow := &Client{ID: "slow", AuctionID: "a1", send: make(chan []byte)}
	other := &Client{ID: "other", AuctionID: "a2", send: make(chan []byte, 2)}
	h.register(fast)
	h.register(slow)
	h.register(other)
	require.Equal(t, 2, h.Viewers("a1"))

	sent := h.Broadcast("a1", []byte("x"))
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, h.Viewers("a1"))
	assert.Equal(t, []byte("x"), <-fast.send)
	assert.Len(t, other.send, 0)

	_, open := <-slow.send
	assert.False(t, open)
}

func TestWebsocketReceivesPublishedEvents(t *testing.T) {
	hub := NewHub()
	e := echo.New()
	e.GET("/ws/auctions/:id", NewHandler(hub, nil).Serve)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/auctions/a1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, hello, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(hello), `"type":"connected"`)

	require.NoError(t, hub.Publish(context.Background(), events.Event{ID: "e1", Type: events.TypeBid, AuctionID: "a1", Amount: 15}))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var got events.Event
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, events.TypeBid, got.Type)
	assert.Equal(t, int64(15), got.Amount)
}

func TestOriginCheck(t *testing.T) {
	h := NewHandler(NewHub(), func(origin string) bool { return strings.HasSuffix(origin, ".vercel.app") })
	req := httptest.NewRequest("GET", "/ws/auctions/a1", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, h.upgrader.CheckOrigin(req))
	req.Header.Set("Origin", "https://shop.vercel.app")
	assert.True(t, h.upgrader.CheckOrigin(req))
}
