// Package events publishes committed auction changes to live viewers and
// downstream consumers.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/auction-backend/internal/model"
)

type Type string

const (
	TypeBid       Type = "bid"
	TypeBuyNow    Type = "buyNow"
	TypeClosed    Type = "closed"
	TypeActivated Type = "activated"
	TypeDeleted   Type = "deleted"
)

type Event struct {
	ID           string    `json:"eventId"`
	Type         Type      `json:"type"`
	AuctionID    string    `json:"auctionId"`
	Amount       int64     `json:"amount,omitempty"`
	UID          string    `json:"uid,omitempty"`
	Name         string    `json:"name,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	CurrentPrice int64     `json:"currentPrice"`
	CopiesSold   int       `json:"copiesSold"`
	TotalCopies  int       `json:"totalCopies"`
	Status       string    `json:"status"`
	ClosedBy     string    `json:"closedBy,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	At           time.Time `json:"at"`
}

// FromAuction snapshots a after a committed change.
func FromAuction(typ Type, a *model.Auction, at time.Time) Event {
	return Event{
		ID:           uuid.NewString(),
		Type:         typ,
		AuctionID:    a.ID,
		CurrentPrice: a.Price(),
		CopiesSold:   a.CopiesSold,
		TotalCopies:  a.TotalCopies,
		Status:       string(a.Status),
		ClosedBy:     string(a.ClosedBy),
		ExpiresAt:    a.ExpiresAt,
		At:           at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
