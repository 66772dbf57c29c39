package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const natsSubjectPrefix = "auction.events."

func NATSSubject(auctionID string) string {
	return natsSubjectPrefix + auctionID
}

// NATSPublisher forwards events to downstream consumers on auction.events.<id>.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

func (p *NATSPublisher) Publish(_ context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := nats.NewMsg(NATSSubject(e.AuctionID))
	msg.Data = payload
	msg.Header.Set(nats.MsgIdHdr, e.ID)
	msg.Header.Set("Event-Type", string(e.Type))
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}
