package auction

import (
	"fmt"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
)

const (
	DefaultAntiSnipeWindow    = 5 * time.Minute
	DefaultAntiSnipeExtension = 5 * time.Minute
)

type Participant struct {
	UID  string
	Name string
}

// Rules applies bid, buy-now and expiry transitions to a freshly read auction.
// Callers run them inside the transaction that persists the result.
type Rules struct {
	AntiSnipeWindow    time.Duration
	AntiSnipeExtension time.Duration
}

func DefaultRules() Rules {
	return Rules{
		AntiSnipeWindow:    DefaultAntiSnipeWindow,
		AntiSnipeExtension: DefaultAntiSnipeExtension,
	}
}

type Outcome struct {
	Amount   int64
	Closed   bool
	Extended bool
}

func checkOpen(a *model.Auction, now time.Time) error {
	if a.IsClosed() {
		return ErrAuctionClosed
	}
	if a.Status == model.AuctionStatusScheduled {
		return ErrAuctionNotActive
	}
	if a.Expired(now) {
		return fmt.Errorf("%w: expired at %s", ErrAuctionClosed, a.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return nil
}

// ApplyBid validates amount against a and records bidder as the new leader.
// A bid that reaches the buy-now price closes the auction and awards every
// remaining copy to the bidder.
func (r Rules) ApplyBid(a *model.Auction, bidder Participant, amount float64, now time.Time) (Outcome, error) {
	if err := checkOpen(a, now); err != nil {
		return Outcome{}, err
	}
	if bidder.UID == a.SellerUID {
		return Outcome{}, ErrSellerCannotBid
	}
	bid, err := TermsOf(a).Validate(amount)
	if err != nil {
		return Outcome{}, err
	}

	price := bid
	a.CurrentPrice = &price
	a.LeaderUID = bidder.UID
	a.LeaderName = bidder.Name

	out := Outcome{Amount: bid}
	if a.BuyNowPrice != nil && *a.BuyNowPrice > 0 && bid >= *a.BuyNowPrice {
		winners := a.Winners()
		if rest := a.Remaining(); rest > 0 {
			winners[bidder.UID] += rest
		}
		a.SetWinners(winners)
		a.CopiesSold = a.TotalCopies
		markClosed(a, model.ClosedByBid, now)
		out.Closed = true
		return out, nil
	}

	if left := a.ExpiresAt.Sub(now); left <= r.AntiSnipeWindow {
		a.ExpiresAt = a.ExpiresAt.Add(r.AntiSnipeExtension)
		out.Extended = true
	}
	return out, nil
}

// ApplyBuyNow sells qty copies to buyer at the buy-now price.
func (r Rules) ApplyBuyNow(a *model.Auction, buyer Participant, qty int, now time.Time) (Outcome, error) {
	if qty < 1 {
		return Outcome{}, ErrInvalidQuantity
	}
	if err := checkOpen(a, now); err != nil {
		return Outcome{}, err
	}
	if a.BuyNowPrice == nil || *a.BuyNowPrice <= 0 {
		return Outcome{}, ErrNoBuyNow
	}
	if buyer.UID == a.SellerUID {
		return Outcome{}, ErrSellerCannotBid
	}
	if rest := a.Remaining(); qty > rest {
		return Outcome{}, fmt.Errorf("%w: %d requested, %d available", ErrInsufficientStock, qty, rest)
	}

	price := *a.BuyNowPrice
	a.CopiesSold += qty
	winners := a.Winners()
	winners[buyer.UID] += qty
	a.SetWinners(winners)
	a.CurrentPrice = &price
	a.LeaderUID = buyer.UID
	a.LeaderName = buyer.Name

	out := Outcome{Amount: price}
	if a.CopiesSold >= a.TotalCopies {
		markClosed(a, model.ClosedByBuyNow, now)
		out.Closed = true
	}
	return out, nil
}

// CloseOnExpiry closes an expired auction that is still open. It reports
// false when a is already closed or its deadline has not passed.
func CloseOnExpiry(a *model.Auction, now time.Time) bool {
	if a.IsClosed() || !a.Expired(now) {
		return false
	}
	if a.HasBids() {
		winners := a.Winners()
		if len(winners) == 0 {
			winners[a.LeaderUID] = a.Remaining()
			a.SetWinners(winners)
			a.CopiesSold = a.TotalCopies
		}
	}
	markClosed(a, model.ClosedByTimeout, now)
	return true
}

// MayClose reports whether viewer has a legitimate interest in closing a.
func MayClose(a *model.Auction, viewerUID string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if viewerUID == "" {
		return false
	}
	return viewerUID == a.SellerUID || viewerUID == a.LeaderUID
}

// NeedsSettlement reports whether a closed auction still owes the winner a
// close message. Buy-now closures settle per purchase instead.
func NeedsSettlement(a *model.Auction) bool {
	return a.IsClosed() && a.ClosedBy != model.ClosedByBuyNow && a.HasBids()
}

func markClosed(a *model.Auction, by model.ClosedBy, now time.Time) {
	closedAt := now
	a.Status = model.AuctionStatusClosed
	a.ClosedBy = by
	a.ClosedAt = &closedAt
}
