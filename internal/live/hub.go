// Package live pushes auction events to browsers watching an auction.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/shinyyama/auction-backend/internal/events"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

// Hub tracks viewers per auction and fans payloads out to them.
type Hub struct {
	mu      sync.RWMutex
	viewers map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{viewers: make(map[string]map[*Client]struct{})}
}

type Client struct {
	ID        string
	AuctionID string
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.viewers[c.AuctionID]
	if !ok {
		set = make(map[*Client]struct{})
		h.viewers[c.AuctionID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.viewers[c.AuctionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.viewers, c.AuctionID)
		}
	}
	h.mu.Unlock()
	c.closeOnce.Do(func() { close(c.send) })
}

// Broadcast delivers payload to every viewer of auctionID. Viewers whose
// buffer is full are dropped.
func (h *Hub) Broadcast(auctionID string, payload []byte) int {
	h.mu.RLock()
	var slow []*Client
	sent := 0
	for c := range h.viewers[auctionID] {
		select {
		case c.send <- payload:
			sent++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()
	for _, c := range slow {
		h.unregister(c)
	}
	return sent
}

func (h *Hub) Viewers(auctionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers[auctionID])
}

// Publish lets the hub act as an in-process events.Publisher.
func (h *Hub) Publish(_ context.Context, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	h.Broadcast(e.AuctionID, payload)
	return nil
}

// ConsumeRedis relays every auction event published on Redis to local
// viewers until ctx is done.
func (h *Hub) ConsumeRedis(ctx context.Context, client *redis.Client) error {
	pubsub := client.PSubscribe(ctx, events.RedisPattern)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.RedisPattern, err)
	}
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			auctionID := events.AuctionIDFromChannel(msg.Channel)
			n := h.Broadcast(auctionID, []byte(msg.Payload))
			logrus.WithFields(logrus.Fields{"auction": auctionID, "viewers": n}).Debug("live event relayed")
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
func (c *Client) readPump(h *Hub) {
	defer h.unregister(c)
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("client", c.ID).Debug("live socket closed")
			}
			return
		}
	}
}
