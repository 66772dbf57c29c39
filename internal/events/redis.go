package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	redisChannelPrefix = "auction_events:"
	RedisPattern       = redisChannelPrefix + "*"
)

func RedisChannel(auctionID string) string {
	return redisChannelPrefix + auctionID
}

// AuctionIDFromChannel reverses RedisChannel.
func AuctionIDFromChannel(channel string) string {
	return strings.TrimPrefix(channel, redisChannelPrefix)
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, RedisChannel(e.AuctionID), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}
