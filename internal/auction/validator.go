package auction

import (
	"fmt"
	"math"

	"github.com/shinyyama/auction-backend/internal/model"
)

// MaxPrice bounds every price, increment and bid so sums stay far from int64 overflow.
const MaxPrice = 1_000_000_000_000

// Terms are the pricing inputs of a bid decision.
type Terms struct {
	BasePrice    int64
	CurrentPrice int64
	Increment    int64
	BuyNowPrice  *int64
	HasBid       bool
}

func TermsOf(a *model.Auction) Terms {
	t := Terms{
		BasePrice:   a.BasePrice,
		Increment:   a.Increment,
		BuyNowPrice: a.BuyNowPrice,
		HasBid:      a.HasBids(),
	}
	t.CurrentPrice = a.Price()
	return t
}

// Minimum returns the lowest acceptable next bid. It is MaxPrice+1, which no
// bid can meet, once the next step would pass MaxPrice.
func (t Terms) Minimum() int64 {
	if !t.HasBid {
		return t.BasePrice
	}
	inc := t.Increment
	if inc <= 0 {
		inc = 1
	}
	current := t.CurrentPrice
	if current <= 0 {
		current = t.BasePrice
	}
	if current >= MaxPrice || inc > MaxPrice-current {
		return MaxPrice + 1
	}
	return current + inc
}

// Validate checks amount against the terms and returns it as a whole number.
func (t Terms) Validate(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount != math.Trunc(amount) {
		return 0, ErrNonIntegerBid
	}
	floor := t.Minimum()
	if amount > MaxPrice || floor > MaxPrice {
		return 0, fmt.Errorf("%w: maximum is %d", ErrBidOutOfRange, int64(MaxPrice))
	}
	if amount < float64(floor) {
		return 0, fmt.Errorf("%w: minimum is %d", ErrBidTooLow, floor)
	}
	bid := int64(amount)
	if t.BuyNowPrice != nil && *t.BuyNowPrice > 0 && bid > *t.BuyNowPrice {
		return 0, fmt.Errorf("%w: buy-now is %d", ErrBidAboveBuyNow, *t.BuyNowPrice)
	}
	return bid, nil
}
