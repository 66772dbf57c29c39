package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/auction-backend/internal/auction"
	"github.com/shinyyama/auction-backend/internal/db/dbtest"
	"github.com/shinyyama/auction-backend/internal/events"
	"github.com/shinyyama/auction-backend/internal/guard"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/shinyyama/auction-backend/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) count(typ events.Type) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

type recordingBlobs struct {
	mu    sync.Mutex
	paths []string
}

func (b *recordingBlobs) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paths = append(b.paths, path)
	return nil
}

type harness struct {
	db        *gorm.DB
	svc       *auctionService
	auctions  repository.AuctionRepository
	chats     repository.ChatRepository
	profiles  repository.ProfileRepository
	locker    *guard.MemoryLocker
	published *recordingPublisher
	blobs     *recordingBlobs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb := dbtest.Open(t)
	h := &harness{
		db:        gdb,
		auctions:  repository.NewAuctionRepository(gdb, 5),
		chats:     repository.NewChatRepository(gdb),
		profiles:  repository.NewProfileRepository(gdb),
		locker:    guard.NewMemoryLocker(),
		published: &recordingPublisher{},
		blobs:     &recordingBlobs{},
	}
	notify := NewNotificationService(repository.NewNotificationRepository(gdb))
	formatter := settlement.Formatter{Currency: "S/", PaymentDays: 5, Location: time.UTC}
	h.svc = NewAuctionService(AuctionDeps{
		Auctions:   h.auctions,
		Bids:       repository.NewBidRepository(gdb),
		Profiles:   NewProfileService(h.profiles),
		Settlement: NewSettlementService(h.chats, notify, formatter),
		Publisher:  h.published,
		Locker:     h.locker,
		Blobs:      h.blobs,
		Rules:      auction.DefaultRules(),
	}).(*auctionService)
	h.svc.now = func() time.Time { return t0 }
	return h
}

func (h *harness) at(now time.Time) {
	h.svc.now = func() time.Time { return now }
}

func (h *harness) profile(t *testing.T, uid string, mutate func(p map[string]interface{})) {
	t.Helper()
	_, err := h.profiles.Ensure(context.Background(), &model.UserProfile{UID: uid, DisplayName: uid})
	require.NoError(t, err)
	if mutate != nil {
		cols := map[string]interface{}{}
		mutate(cols)
		require.NoError(t, h.db.Model(&model.UserProfile{}).Where("uid = ?", uid).Updates(cols).Error)
	}
}

type auctionOpt func(a *model.Auction)

func withBuyNow(price int64) auctionOpt {
	return func(a *model.Auction) { a.BuyNowPrice = &price }
}

func withIncrement(inc int64) auctionOpt {
	return func(a *model.Auction) { a.Increment = inc }
}

func withCopies(n int) auctionOpt {
	return func(a *model.Auction) { a.TotalCopies = n }
}

func expiringAt(at time.Time) auctionOpt {
	return func(a *model.Auction) { a.ExpiresAt = at.UTC() }
}

func ledBy(uid string, price int64) auctionOpt {
	return func(a *model.Auction) {
		a.LeaderUID = uid
		a.LeaderName = uid
		a.CurrentPrice = &price
	}
}

func (h *harness) auction(t *testing.T, opts ...auctionOpt) *model.Auction {
	t.Helper()
	a := &model.Auction{
		ID:          uuid.NewString(),
		Title:       "Charizard 1st edition",
		BasePrice:   10,
		Increment:   1,
		TotalCopies: 1,
		Status:      model.AuctionStatusActive,
		ExpiresAt:   t0.Add(time.Hour),
		SellerUID:   "seller",
		SellerName:  "Seller",
	}
	a.SetWinners(map[string]int{})
	a.SetImages([]string{"https://img/1"}, []string{"auctions/seller/1.jpg"})
	for _, opt := range opts {
		opt(a)
	}
	require.NoError(t, h.auctions.CreateNumbered(context.Background(), a))
	return a
}

func (h *harness) messages(t *testing.T, buyer string) []model.Message {
	t.Helper()
	chatID, err := settlement.ChatID("seller", buyer)
	require.NoError(t, err)
	msgs, err := h.chats.ListMessages(context.Background(), chatID, 100)
	require.NoError(t, err)
	return msgs
}

func person(uid string) auction.Participant {
	return auction.Participant{UID: uid, Name: uid}
}

func TestPlaceBid_MinimumFollowsHistory(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t)

	res, err := h.svc.PlaceBid(ctx, a.ID, person("alice"), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Amount)
	assert.Equal(t, int64(11), auction.TermsOf(res.Auction).Minimum())

	_, err = h.svc.PlaceBid(ctx, a.ID, person("bob"), 10)
	require.ErrorIs(t, err, auction.ErrBidTooLow)

	res, err = h.svc.PlaceBid(ctx, a.ID, person("bob"), 15)
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Auction.LeaderUID)
	assert.False(t, res.Closed)

	bids, err := h.svc.ListBids(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, int64(15), bids[0].Amount)
	assert.Equal(t, int64(10), bids[1].Amount)
	assert.Equal(t, 2, h.published.count(events.TypeBid))
}

func TestPlaceBid_AntiSnipe(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	late := h.auction(t, expiringAt(t0.Add(3*time.Minute)))
	res, err := h.svc.PlaceBid(ctx, late.ID, person("alice"), 10)
	require.NoError(t, err)
	assert.True(t, res.Extended)
	assert.False(t, res.Auction.ExpiresAt.Before(late.ExpiresAt.Add(2*time.Minute)))

	res, err = h.svc.PlaceBid(ctx, late.ID, person("carol"), 11)
	require.NoError(t, err)
	assert.False(t, res.Extended, "eight minutes left is outside the window")

	h.at(t0.Add(4 * time.Minute))
	res, err = h.svc.PlaceBid(ctx, late.ID, person("bob"), 12)
	require.NoError(t, err)
	assert.True(t, res.Extended, "every late bid extends again")
	assert.WithinDuration(t, late.ExpiresAt.Add(10*time.Minute), res.Auction.ExpiresAt, time.Second)

	h.at(t0)

	early := h.auction(t, expiringAt(t0.Add(10*time.Minute)))
	res, err = h.svc.PlaceBid(ctx, early.ID, person("alice"), 10)
	require.NoError(t, err)
	assert.False(t, res.Extended)
	assert.WithinDuration(t, early.ExpiresAt, res.Auction.ExpiresAt, time.Second)
}

func TestPlaceBid_HugeIncrementCannotWrapMinimum(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withIncrement(1e18), ledBy("alice", 10))

	for _, amount := range []float64{11, 9e18, 1e30} {
		_, err := h.svc.PlaceBid(ctx, a.ID, person("zoe"), amount)
		assert.ErrorIs(t, err, auction.ErrBidOutOfRange, "amount %v", amount)
	}

	stored, err := h.auctions.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.LeaderUID)
	assert.Equal(t, int64(10), stored.Price())
	assert.Zero(t, h.published.count(events.TypeBid))
}

func TestPlaceBid_Rejections(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.profile(t, "mallory", func(p map[string]interface{}) { p["banned"] = true })
	a := h.auction(t, withBuyNow(50))

	_, err := h.svc.PlaceBid(ctx, a.ID, person("mallory"), 20)
	assert.ErrorIs(t, err, ErrBanned)

	_, err = h.svc.PlaceBid(ctx, a.ID, person("seller"), 20)
	assert.ErrorIs(t, err, auction.ErrSellerCannotBid)

	_, err = h.svc.PlaceBid(ctx, a.ID, person("alice"), 10.5)
	assert.ErrorIs(t, err, auction.ErrNonIntegerBid)

	_, err = h.svc.PlaceBid(ctx, a.ID, person("alice"), 51)
	assert.ErrorIs(t, err, auction.ErrBidAboveBuyNow)

	_, err = h.svc.PlaceBid(ctx, a.ID, auction.Participant{}, 20)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = h.svc.PlaceBid(ctx, uuid.NewString(), person("alice"), 20)
	assert.ErrorIs(t, err, ErrNotFound)

	h.at(a.ExpiresAt)
	_, err = h.svc.PlaceBid(ctx, a.ID, person("alice"), 20)
	assert.ErrorIs(t, err, auction.ErrAuctionClosed)
}

func TestPlaceBid_AtBuyNowPriceClosesAndSettles(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withBuyNow(40), withCopies(3))

	res, err := h.svc.PlaceBid(ctx, a.ID, person("bob"), 40)
	require.NoError(t, err)
	assert.True(t, res.Closed)
	assert.Equal(t, model.ClosedByBid, res.Auction.ClosedBy)
	assert.Equal(t, map[string]int{"bob": 3}, res.Auction.Winners())
	assert.Equal(t, 3, res.Auction.CopiesSold)

	msgs := h.messages(t, "bob")
	require.Len(t, msgs, 1)
	assert.Equal(t, settlement.CloseMessageID(a.ID), msgs[0].ID)
	assert.Equal(t, model.MessageEventClose, msgs[0].Event)
	assert.Equal(t, int64(40), msgs[0].FinalPrice)
	assert.Contains(t, msgs[0].Text, "(3 copias)")
	assert.Equal(t, 1, h.published.count(events.TypeClosed))
}

func TestBuyNow_SplitsCopiesAcrossBuyers(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withBuyNow(20), withCopies(5))

	res, err := h.svc.BuyNow(ctx, a.ID, person("alice"), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Auction.CopiesSold)
	assert.False(t, res.Closed)
	assert.NotEmpty(t, res.EventID)

	res, err = h.svc.BuyNow(ctx, a.ID, person("bob"), 2)
	require.NoError(t, err)
	assert.True(t, res.Closed)
	assert.Equal(t, 5, res.Auction.CopiesSold)
	assert.Equal(t, model.ClosedByBuyNow, res.Auction.ClosedBy)
	assert.Equal(t, map[string]int{"alice": 3, "bob": 2}, res.Auction.Winners())

	for buyer, qty := range map[string]int{"alice": 3, "bob": 2} {
		msgs := h.messages(t, buyer)
		require.Len(t, msgs, 1, buyer)
		assert.Equal(t, model.MessageEventBuyNow, msgs[0].Event)
		require.NotNil(t, msgs[0].Quantity)
		assert.Equal(t, qty, *msgs[0].Quantity)
		assert.Equal(t, int64(20), msgs[0].FinalPrice)
	}

	// A buy-now closure never gets a separate close message.
	_, err = h.svc.Observe(ctx, a.ID, "bob")
	require.NoError(t, err)
	assert.Len(t, h.messages(t, "bob"), 1)

	_, err = h.svc.BuyNow(ctx, a.ID, person("carol"), 1)
	assert.ErrorIs(t, err, auction.ErrAuctionClosed)
}

func TestBuyNow_RepeatPurchasesAccumulate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withBuyNow(20), withCopies(5))

	for i := 0; i < 2; i++ {
		_, err := h.svc.BuyNow(ctx, a.ID, person("alice"), 1)
		require.NoError(t, err)
	}
	got, err := h.auctions.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"alice": 2}, got.Winners())
	assert.Len(t, h.messages(t, "alice"), 2, "identical purchases keep distinct messages")
}

func TestBuyNow_Rejections(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withBuyNow(20), withCopies(2))
	plain := h.auction(t)

	_, err := h.svc.BuyNow(ctx, a.ID, person("alice"), 3)
	assert.ErrorIs(t, err, auction.ErrInsufficientStock)

	_, err = h.svc.BuyNow(ctx, a.ID, person("alice"), 0)
	assert.ErrorIs(t, err, auction.ErrInvalidQuantity)

	_, err = h.svc.BuyNow(ctx, plain.ID, person("alice"), 1)
	assert.ErrorIs(t, err, auction.ErrNoBuyNow)

	release, err := h.locker.Acquire(ctx, guard.BuyNowKey(a.ID, "alice"), time.Minute)
	require.NoError(t, err)
	_, err = h.svc.BuyNow(ctx, a.ID, person("alice"), 1)
	assert.ErrorIs(t, err, ErrBuyNowInFlight)
	release()

	_, err = h.svc.BuyNow(ctx, a.ID, person("alice"), 1)
	assert.NoError(t, err)
}

func TestBuyNow_ConcurrentNeverOversells(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withBuyNow(20), withCopies(5))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		failures []error
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			qty := 1 + i%2
			_, err := h.svc.BuyNow(ctx, a.ID, person(uuid.NewString()), qty)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			accepted += qty
		}(i)
	}
	wg.Wait()

	for _, err := range failures {
		assert.True(t, auction.IsConflict(err), "unexpected error: %v", err)
	}
	got, err := h.auctions.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, accepted, 5)
	assert.Equal(t, accepted, got.CopiesSold)
}

func TestObserve_OnlyInterestedViewersClose(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, ledBy("alice", 15), withCopies(2))
	h.at(a.ExpiresAt.Add(time.Minute))

	got, err := h.svc.Observe(ctx, a.ID, "stranger")
	require.NoError(t, err)
	assert.False(t, got.IsClosed())

	got, err = h.svc.Observe(ctx, a.ID, "")
	require.NoError(t, err)
	assert.False(t, got.IsClosed())

	got, err = h.svc.Get(ctx, a.ID, "seller")
	require.NoError(t, err)
	assert.True(t, got.IsClosed())
	assert.Equal(t, model.ClosedByTimeout, got.ClosedBy)
	assert.Equal(t, map[string]int{"alice": 2}, got.Winners())
	assert.Equal(t, 2, got.CopiesSold)

	msgs := h.messages(t, "alice")
	require.Len(t, msgs, 1)
	assert.Equal(t, settlement.CloseMessageID(a.ID), msgs[0].ID)
}

func TestObserve_AdminMayClose(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.profile(t, "root", func(p map[string]interface{}) { p["is_admin"] = true })
	a := h.auction(t, ledBy("alice", 15))
	h.at(a.ExpiresAt)

	got, err := h.svc.Observe(ctx, a.ID, "root")
	require.NoError(t, err)
	assert.True(t, got.IsClosed())
}

func TestObserve_ConcurrentObserversSendOneCloseMessage(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, ledBy("alice", 15))
	h.at(a.ExpiresAt.Add(time.Second))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(viewer string) {
			defer wg.Done()
			_, err := h.svc.Observe(ctx, a.ID, viewer)
			assert.NoError(t, err)
		}([]string{"seller", "alice"}[i%2])
	}
	wg.Wait()

	assert.Len(t, h.messages(t, "alice"), 1)
	assert.Equal(t, 1, h.published.count(events.TypeClosed))
}

func TestObserve_NoBidsClosesWithoutSettlement(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t)
	h.at(a.ExpiresAt)

	got, err := h.svc.Observe(ctx, a.ID, "seller")
	require.NoError(t, err)
	assert.True(t, got.IsClosed())
	assert.Empty(t, got.Winners())

	var cnt int64
	require.NoError(t, h.db.Model(&model.Message{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestObserve_SkipsCloseMessageAfterBuyNow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withBuyNow(20), withCopies(3))

	_, err := h.svc.BuyNow(ctx, a.ID, person("alice"), 1)
	require.NoError(t, err)

	h.at(a.ExpiresAt.Add(time.Minute))
	got, err := h.svc.Observe(ctx, a.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.ClosedByTimeout, got.ClosedBy)
	assert.Equal(t, map[string]int{"alice": 1}, got.Winners())

	msgs := h.messages(t, "alice")
	require.Len(t, msgs, 1)
	assert.Equal(t, model.MessageEventBuyNow, msgs[0].Event)
}

func TestObserve_SelfHealsMissingSettlement(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, ledBy("bob", 30))
	_, err := h.auctions.Mutate(ctx, a.ID, func(cur *model.Auction) (*model.Bid, error) {
		require.True(t, auction.CloseOnExpiry(cur, cur.ExpiresAt))
		return nil, nil
	})
	require.NoError(t, err)
	assert.Empty(t, h.messages(t, "bob"))

	_, err = h.svc.Observe(ctx, a.ID, "")
	require.NoError(t, err)
	require.Len(t, h.messages(t, "bob"), 1)

	// Once delivered, later observations leave a deleted chat alone.
	chatID, err := settlement.ChatID("seller", "bob")
	require.NoError(t, err)
	require.NoError(t, h.chats.SoftDelete(ctx, chatID, "bob"))
	_, err = h.svc.Observe(ctx, a.ID, "bob")
	require.NoError(t, err)
	mine, err := h.chats.ListByUser(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.profile(t, "seller", nil)
	h.profile(t, "mallory", func(p map[string]interface{}) { p["banned"] = true })

	draft := auction.Draft{
		Title:       "  Pikachu Illustrator ",
		BasePrice:   100,
		ExpiresAt:   t0.Add(24 * time.Hour),
		ImageURLs:   []string{"https://img/p"},
		ImagePaths:  []string{"auctions/seller/p.jpg"},
		TotalCopies: 2,
	}
	first, err := h.svc.Create(ctx, person("seller"), draft)
	require.NoError(t, err)
	assert.Equal(t, "Pikachu Illustrator", first.Title)
	assert.Equal(t, int64(1), first.Increment)
	assert.Equal(t, model.AuctionStatusActive, first.Status)

	start := t0.Add(time.Hour)
	draft.StartAt = &start
	second, err := h.svc.Create(ctx, person("seller"), draft)
	require.NoError(t, err)
	assert.Equal(t, first.Number+1, second.Number)
	assert.Equal(t, model.AuctionStatusScheduled, second.Status)

	_, err = h.svc.Create(ctx, person("mallory"), draft)
	assert.ErrorIs(t, err, ErrBanned)

	draft.BasePrice = 0
	_, err = h.svc.Create(ctx, person("seller"), draft)
	assert.ErrorIs(t, err, auction.ErrInvalidAuction)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.profile(t, "root", func(p map[string]interface{}) { p["is_admin"] = true })
	mine := h.auction(t)
	other := h.auction(t)

	assert.ErrorIs(t, h.svc.Delete(ctx, mine.ID, "stranger"), ErrForbidden)
	require.NoError(t, h.svc.Delete(ctx, mine.ID, "seller"))
	require.NoError(t, h.svc.Delete(ctx, other.ID, "root"))
	assert.ErrorIs(t, h.svc.Delete(ctx, mine.ID, "seller"), ErrNotFound)

	assert.Equal(t, []string{"auctions/seller/1.jpg", "auctions/seller/1.jpg"}, h.blobs.paths)
	assert.Equal(t, 2, h.published.count(events.TypeDeleted))
}

func TestActivateDueAndCloseExpired(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	start := t0.Add(-time.Minute)
	scheduled := h.auction(t, func(a *model.Auction) {
		a.Status = model.AuctionStatusScheduled
		a.StartAt = &start
	})
	future := t0.Add(time.Hour)
	later := h.auction(t, func(a *model.Auction) {
		a.Status = model.AuctionStatusScheduled
		a.StartAt = &future
		a.ExpiresAt = future.Add(time.Hour)
	})
	expired := h.auction(t, ledBy("carol", 12), expiringAt(t0.Add(-time.Second)))

	n, err := h.svc.ActivateDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := h.auctions.FindByID(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AuctionStatusActive, got.Status)
	got, err = h.auctions.FindByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AuctionStatusScheduled, got.Status)
	assert.Equal(t, 1, h.published.count(events.TypeActivated))

	n, err = h.svc.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	got, err = h.auctions.FindByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.True(t, got.IsClosed())
	assert.Len(t, h.messages(t, "carol"), 1)

	n, err = h.svc.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	a := h.auction(t, withBuyNow(20), withCopies(2))
	h.auction(t)

	_, err := h.svc.PlaceBid(ctx, a.ID, person("alice"), 12)
	require.NoError(t, err)
	_, err = h.svc.BuyNow(ctx, a.ID, person("bob"), 2)
	require.NoError(t, err)

	parts, err := h.svc.ListParticipations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, parts, 1)

	won, err := h.svc.ListWon(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, won, 1)
	assert.Equal(t, a.ID, won[0].ID)

	won, err = h.svc.ListWon(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, won)

	all, total, err := h.svc.List(ctx, model.AuctionStatusActive, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, all, 1)

	bySeller, err := h.svc.ListBySeller(ctx, "seller")
	require.NoError(t, err)
	assert.Len(t, bySeller, 2)
}

func TestNewAuctionServiceDefaults(t *testing.T) {
	svc := NewAuctionService(AuctionDeps{}).(*auctionService)
	assert.Equal(t, auction.DefaultRules(), svc.Rules)
	assert.Equal(t, defaultBuyNowLockTTL, svc.LockTTL)
	assert.NotNil(t, svc.Locker)
	assert.NoError(t, svc.Publisher.Publish(context.Background(), events.Event{}))
}
