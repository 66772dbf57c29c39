package auction

import "errors"

var (
	ErrNonIntegerBid     = errors.New("bid amount must be a whole number")
	ErrBidTooLow         = errors.New("bid is below the minimum")
	ErrBidAboveBuyNow    = errors.New("bid exceeds the buy-now price")
	ErrBidOutOfRange     = errors.New("bid amount is out of range")
	ErrAuctionClosed     = errors.New("auction is closed")
	ErrAuctionNotActive  = errors.New("auction is not active yet")
	ErrInsufficientStock = errors.New("not enough copies left")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNoBuyNow          = errors.New("auction has no buy-now price")
	ErrSellerCannotBid   = errors.New("seller cannot bid on own auction")
	ErrInvalidAuction    = errors.New("invalid auction")
)

// IsValidation reports whether err is a rule violation the caller can fix.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNonIntegerBid, ErrBidTooLow, ErrBidAboveBuyNow, ErrBidOutOfRange, ErrInvalidQuantity,
		ErrNoBuyNow, ErrSellerCannotBid, ErrInvalidAuction,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err means the auction state no longer allows the action.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAuctionClosed) ||
		errors.Is(err, ErrAuctionNotActive) ||
		errors.Is(err, ErrInsufficientStock)
}
