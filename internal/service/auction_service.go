//go:generate mockgen -source=auction_service.go -destination=mock_auction_service.go -package=service

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/auction-backend/internal/auction"
	"github.com/shinyyama/auction-backend/internal/events"
	"github.com/shinyyama/auction-backend/internal/guard"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/reqctx"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	defaultBuyNowLockTTL = 30 * time.Second
	defaultBatchSize     = 100
	defaultBidHistory    = 200
)

type BidResult struct {
	Auction  *model.Auction
	Amount   int64
	Extended bool
	Closed   bool
}

type BuyNowResult struct {
	Auction  *model.Auction
	Quantity int
	Price    int64
	EventID  string
	Closed   bool
}

// BlobDeleter removes stored images by their internal path.
type BlobDeleter interface {
	Delete(ctx context.Context, path string) error
}

type AuctionService interface {
	Create(ctx context.Context, seller auction.Participant, draft auction.Draft) (*model.Auction, error)
	Get(ctx context.Context, id, viewerUID string) (*model.Auction, error)
	Observe(ctx context.Context, id, viewerUID string) (*model.Auction, error)
	PlaceBid(ctx context.Context, id string, bidder auction.Participant, amount float64) (*BidResult, error)
	BuyNow(ctx context.Context, id string, buyer auction.Participant, quantity int) (*BuyNowResult, error)
	ListBids(ctx context.Context, id string) ([]model.Bid, error)
	List(ctx context.Context, status model.AuctionStatus, limit, offset int) ([]model.Auction, int64, error)
	ListBySeller(ctx context.Context, sellerUID string) ([]model.Auction, error)
	ListParticipations(ctx context.Context, uid string) ([]model.Auction, error)
	ListWon(ctx context.Context, uid string) ([]model.Auction, error)
	Delete(ctx context.Context, id, uid string) error
	ActivateDue(ctx context.Context) (int, error)
	CloseExpired(ctx context.Context) (int, error)
}

type AuctionDeps struct {
	Auctions   repository.AuctionRepository
	Bids       repository.BidRepository
	Profiles   ProfileService
	Settlement SettlementService
	Publisher  events.Publisher
	Locker     guard.Locker
	Blobs      BlobDeleter
	Rules      auction.Rules
	LockTTL    time.Duration
}

type auctionService struct {
	AuctionDeps
	now func() time.Time
}

func NewAuctionService(deps AuctionDeps) AuctionService {
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}
	if deps.Locker == nil {
		deps.Locker = guard.NewMemoryLocker()
	}
	if deps.LockTTL <= 0 {
		deps.LockTTL = defaultBuyNowLockTTL
	}
	if deps.Rules == (auction.Rules{}) {
		deps.Rules = auction.DefaultRules()
	}
	return &auctionService{AuctionDeps: deps, now: time.Now}
}

func (s *auctionService) Create(ctx context.Context, seller auction.Participant, draft auction.Draft) (*model.Auction, error) {
	if seller.UID == "" {
		return nil, ErrForbidden
	}
	if err := s.ensureNotBanned(ctx, seller.UID); err != nil {
		return nil, err
	}
	draft.Normalize()
	if err := draft.Validate(s.now()); err != nil {
		return nil, err
	}
	seller.Name = s.Profiles.DisplayName(ctx, seller.UID, seller.Name)
	a := draft.Build(uuid.NewString(), 0, seller)
	if err := s.Auctions.CreateNumbered(ctx, a); err != nil {
		return nil, err
	}
	reqctx.Log(reqctx.WithAuctionID(ctx, a.ID)).WithFields(logrus.Fields{
		"uid":    seller.UID,
		"number": a.Number,
		"status": a.Status,
	}).Info("auction created")
	return a, nil
}

func (s *auctionService) Get(ctx context.Context, id, viewerUID string) (*model.Auction, error) {
	return s.Observe(ctx, id, viewerUID)
}

// Observe closes an expired auction on behalf of an interested viewer and
// makes sure a closed auction has its settlement message. Settlement
// failures are logged; the next observation retries them.
func (s *auctionService) Observe(ctx context.Context, id, viewerUID string) (*model.Auction, error) {
	ctx = reqctx.WithAuctionID(ctx, id)
	a, err := s.Auctions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	now := s.now()
	if !a.IsClosed() && a.Expired(now) {
		isAdmin := false
		if viewerUID != "" {
			if isAdmin, err = s.Profiles.IsAdmin(ctx, viewerUID); err != nil {
				return nil, err
			}
		}
		if auction.MayClose(a, viewerUID, isAdmin) {
			closed, err := s.closeExpired(ctx, id)
			if err != nil {
				reqctx.Log(ctx).WithError(err).WithField("stage", "close").Warn("close on expiry failed")
			} else {
				a = closed
			}
		}
	}
	s.settle(ctx, a)
	return a, nil
}

func (s *auctionService) closeExpired(ctx context.Context, id string) (*model.Auction, error) {
	now := s.now()
	a, err := s.Auctions.Mutate(ctx, id, func(a *model.Auction) (*model.Bid, error) {
		if !auction.CloseOnExpiry(a, now) {
			return nil, repository.ErrNoChange
		}
		return nil, nil
	})
	if errors.Is(err, repository.ErrNoChange) {
		return a, nil
	}
	if err != nil {
		return nil, err
	}
	reqctx.Log(ctx).WithField("leader", a.LeaderUID).Info("auction closed on expiry")
	s.publish(ctx, events.FromAuction(events.TypeClosed, a, now))
	return a, nil
}

func (s *auctionService) settle(ctx context.Context, a *model.Auction) {
	if s.Settlement == nil || !auction.NeedsSettlement(a) {
		return
	}
	if _, err := s.Settlement.EnsureClosedMessage(ctx, a, a.LeaderUID); err != nil {
		reqctx.Log(ctx).WithError(err).WithField("stage", "settlement").Warn("close message not sent")
	}
}

func (s *auctionService) PlaceBid(ctx context.Context, id string, bidder auction.Participant, amount float64) (*BidResult, error) {
	if bidder.UID == "" {
		return nil, ErrForbidden
	}
	ctx = reqctx.WithAuctionID(ctx, id)
	if err := s.ensureNotBanned(ctx, bidder.UID); err != nil {
		return nil, err
	}
	bidder.Name = s.Profiles.DisplayName(ctx, bidder.UID, bidder.Name)

	now := s.now()
	var out auction.Outcome
	a, err := s.Auctions.Mutate(ctx, id, func(a *model.Auction) (*model.Bid, error) {
		o, err := s.Rules.ApplyBid(a, bidder, amount, now)
		if err != nil {
			return nil, err
		}
		out = o
		return &model.Bid{
			ID:         uuid.NewString(),
			Amount:     o.Amount,
			BidderUID:  bidder.UID,
			BidderName: bidder.Name,
			Type:       model.BidTypeBid,
			Quantity:   1,
			CreatedAt:  now.UTC(),
		}, nil
	})
	if err != nil {
		return nil, notFound(err)
	}

	reqctx.Log(ctx).WithFields(logrus.Fields{
		"uid":      bidder.UID,
		"amount":   out.Amount,
		"extended": out.Extended,
		"closed":   out.Closed,
	}).Info("bid accepted")

	ev := events.FromAuction(events.TypeBid, a, now)
	ev.Amount, ev.UID, ev.Name, ev.Quantity = out.Amount, bidder.UID, bidder.Name, 1
	s.publish(ctx, ev)
	if out.Closed {
		s.publish(ctx, events.FromAuction(events.TypeClosed, a, now))
		s.settle(ctx, a)
	}
	return &BidResult{Auction: a, Amount: out.Amount, Extended: out.Extended, Closed: out.Closed}, nil
}

// BuyNow sells quantity copies to buyer. Overlapping requests from the same
// buyer for the same auction are refused while the first is in flight.
func (s *auctionService) BuyNow(ctx context.Context, id string, buyer auction.Participant, quantity int) (*BuyNowResult, error) {
	if buyer.UID == "" {
		return nil, ErrForbidden
	}
	if quantity < 1 {
		return nil, auction.ErrInvalidQuantity
	}
	ctx = reqctx.WithAuctionID(ctx, id)
	if err := s.ensureNotBanned(ctx, buyer.UID); err != nil {
		return nil, err
	}
	buyer.Name = s.Profiles.DisplayName(ctx, buyer.UID, buyer.Name)

	release, err := s.Locker.Acquire(ctx, guard.BuyNowKey(id, buyer.UID), s.LockTTL)
	switch {
	case errors.Is(err, guard.ErrHeld):
		return nil, ErrBuyNowInFlight
	case err != nil:
		reqctx.Log(ctx).WithError(err).Warn("buy-now guard unavailable")
	default:
		defer release()
	}

	now := s.now()
	eventID := uuid.NewString()
	var out auction.Outcome
	a, err := s.Auctions.Mutate(ctx, id, func(a *model.Auction) (*model.Bid, error) {
		o, err := s.Rules.ApplyBuyNow(a, buyer, quantity, now)
		if err != nil {
			return nil, err
		}
		out = o
		return &model.Bid{
			ID:         eventID,
			Amount:     o.Amount,
			BidderUID:  buyer.UID,
			BidderName: buyer.Name,
			Type:       model.BidTypeBuyNow,
			Quantity:   quantity,
			CreatedAt:  now.UTC(),
		}, nil
	})
	if err != nil {
		return nil, notFound(err)
	}

	reqctx.Log(ctx).WithFields(logrus.Fields{
		"uid":      buyer.UID,
		"quantity": quantity,
		"sold":     a.CopiesSold,
		"closed":   out.Closed,
	}).Info("buy-now accepted")

	ev := events.FromAuction(events.TypeBuyNow, a, now)
	ev.Amount, ev.UID, ev.Name, ev.Quantity = out.Amount, buyer.UID, buyer.Name, quantity
	s.publish(ctx, ev)
	if out.Closed {
		s.publish(ctx, events.FromAuction(events.TypeClosed, a, now))
	}
	if s.Settlement != nil {
		if _, err := s.Settlement.SendBuyNowMessage(ctx, a, buyer, quantity, eventID); err != nil {
			reqctx.Log(ctx).WithError(err).WithField("stage", "settlement").Warn("buy-now message not sent")
		}
	}
	return &BuyNowResult{Auction: a, Quantity: quantity, Price: out.Amount, EventID: eventID, Closed: out.Closed}, nil
}

func (s *auctionService) ListBids(ctx context.Context, id string) ([]model.Bid, error) {
	if _, err := s.Auctions.FindByID(ctx, id); err != nil {
		return nil, notFound(err)
	}
	return s.Bids.ListByAuction(ctx, id, defaultBidHistory)
}

func (s *auctionService) List(ctx context.Context, status model.AuctionStatus, limit, offset int) ([]model.Auction, int64, error) {
	return s.Auctions.List(ctx, status, limit, offset)
}

func (s *auctionService) ListBySeller(ctx context.Context, sellerUID string) ([]model.Auction, error) {
	return s.Auctions.ListBySeller(ctx, sellerUID)
}

func (s *auctionService) ListParticipations(ctx context.Context, uid string) ([]model.Auction, error) {
	return s.Auctions.ListByBidder(ctx, uid)
}

func (s *auctionService) ListWon(ctx context.Context, uid string) ([]model.Auction, error) {
	return s.Auctions.ListWonBy(ctx, uid)
}

// Delete removes an auction owned by uid, or any auction when uid is an admin.
func (s *auctionService) Delete(ctx context.Context, id, uid string) error {
	ctx = reqctx.WithAuctionID(ctx, id)
	a, err := s.Auctions.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if uid == "" {
		return ErrForbidden
	}
	if a.SellerUID != uid {
		isAdmin, err := s.Profiles.IsAdmin(ctx, uid)
		if err != nil {
			return err
		}
		if !isAdmin {
			return ErrForbidden
		}
	}
	if err := s.Auctions.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.publish(ctx, events.FromAuction(events.TypeDeleted, a, s.now()))

	if s.Blobs != nil {
		for _, p := range a.ImagePaths.Data() {
			if p == "" {
				continue
			}
			if err := s.Blobs.Delete(ctx, p); err != nil {
				reqctx.Log(ctx).WithError(err).WithField("path", p).Warn("image not deleted")
			}
		}
	}
	reqctx.Log(ctx).WithField("uid", uid).Info("auction deleted")
	return nil
}

// ActivateDue publishes scheduled auctions whose start time has passed.
func (s *auctionService) ActivateDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.Auctions.ListDueScheduled(ctx, now, defaultBatchSize)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range due {
		a := &due[i]
		ok, err := s.Auctions.Activate(ctx, a.ID, now)
		if err != nil {
			return n, err
		}
		if !ok {
			continue
		}
		n++
		a.Status = model.AuctionStatusActive
		a.Version++
		s.publish(ctx, events.FromAuction(events.TypeActivated, a, now))
	}
	return n, nil
}

// CloseExpired closes every open auction past its deadline as a system
// observer and sends the pending settlement messages.
func (s *auctionService) CloseExpired(ctx context.Context) (int, error) {
	ids, err := s.Auctions.ListExpiredOpen(ctx, s.now(), defaultBatchSize)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		actx := reqctx.WithAuctionID(ctx, id)
		a, err := s.closeExpired(actx, id)
		if err != nil {
			reqctx.Log(actx).WithError(err).Warn("sweep close failed")
			continue
		}
		if a.IsClosed() {
			n++
		}
		s.settle(actx, a)
	}
	return n, nil
}

func (s *auctionService) ensureNotBanned(ctx context.Context, uid string) error {
	banned, err := s.Profiles.IsBanned(ctx, uid)
	if err != nil {
		return err
	}
	if banned {
		return ErrBanned
	}
	return nil
}

func (s *auctionService) publish(ctx context.Context, e events.Event) {
	if err := s.Publisher.Publish(ctx, e); err != nil {
		reqctx.Log(ctx).WithError(err).WithField("event", e.Type).Warn("event not published")
	}
}
