package settlement

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	closeMessagePrefix  = "system_cierre_"
	buyNowMessagePrefix = "system_compraDirecta_"
)

var ErrMissingParticipant = errors.New("chat needs two participants")

// ChatID pairs two users deterministically, independent of argument order.
func ChatID(uidA, uidB string) (string, error) {
	if uidA == "" || uidB == "" {
		return "", ErrMissingParticipant
	}
	pair := []string{uidA, uidB}
	sort.Strings(pair)
	return strings.Join(pair, "_"), nil
}

func CloseMessageID(auctionID string) string {
	return closeMessagePrefix + auctionID
}

func BuyNowMessageID(stableKey string) string {
	return buyNowMessagePrefix + stableKey
}

// StableKey identifies one buy-now purchase. The event id wins when present;
// the composite fallback collides for repeated same-quantity purchases.
func StableKey(eventID, auctionID, buyerUID string, qty int) string {
	if eventID != "" {
		return eventID
	}
	return fmt.Sprintf("%s__%s__%d", auctionID, buyerUID, qty)
}
