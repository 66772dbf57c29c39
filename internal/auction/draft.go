package auction

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
)

// Draft is a seller's publish request before it becomes an auction.
type Draft struct {
	Title              string
	Description        string
	DeliveryZone       string
	BasePrice          int64
	Increment          int64
	BuyNowPrice        *int64
	TotalCopies        int
	ExpiresAt          time.Time
	StartAt            *time.Time
	SellerContact      string
	WinMessageTemplate string
	ImageURLs          []string
	ImagePaths         []string
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidAuction, reason)
}

// Normalize trims text fields and fills defaults for increment and copies.
func (d *Draft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.DeliveryZone = strings.TrimSpace(d.DeliveryZone)
	d.SellerContact = strings.TrimSpace(d.SellerContact)
	if strings.TrimSpace(d.WinMessageTemplate) == "" {
		d.WinMessageTemplate = ""
	}
	if d.Increment == 0 {
		d.Increment = 1
	}
	if d.TotalCopies == 0 {
		d.TotalCopies = 1
	}
	if d.BuyNowPrice != nil && *d.BuyNowPrice == 0 {
		d.BuyNowPrice = nil
	}
}

func (d Draft) Validate(now time.Time) error {
	if d.Title == "" {
		return invalid("title is required")
	}
	if len([]rune(d.Title)) > 160 {
		return invalid("title is too long")
	}
	if d.BasePrice <= 0 {
		return invalid("base price must be greater than 0")
	}
	if d.Increment <= 0 {
		return invalid("increment must be greater than 0")
	}
	if d.BasePrice > MaxPrice || d.Increment > MaxPrice {
		return invalid("prices must not exceed " + strconv.FormatInt(MaxPrice, 10))
	}
	if d.BuyNowPrice != nil && *d.BuyNowPrice > MaxPrice {
		return invalid("buy-now price must not exceed " + strconv.FormatInt(MaxPrice, 10))
	}
	if d.BuyNowPrice != nil && *d.BuyNowPrice <= d.BasePrice {
		return invalid("buy-now price must be greater than the base price")
	}
	if d.TotalCopies < 1 {
		return invalid("copies must be at least 1")
	}
	if d.ExpiresAt.IsZero() || !d.ExpiresAt.After(now) {
		return invalid("end time must be in the future")
	}
	if d.StartAt != nil {
		if !d.StartAt.After(now) {
			return invalid("start time must be in the future")
		}
		if !d.StartAt.Before(d.ExpiresAt) {
			return invalid("start time must be before the end time")
		}
	}
	if len(d.ImagePaths) > 0 && len(d.ImagePaths) != len(d.ImageURLs) {
		return invalid("image paths do not match image urls")
	}
	return nil
}

// Build turns a validated draft into a new auction owned by seller.
func (d Draft) Build(id string, number uint64, seller Participant) *model.Auction {
	a := &model.Auction{
		ID:                 id,
		Number:             number,
		Title:              d.Title,
		Description:        d.Description,
		DeliveryZone:       d.DeliveryZone,
		BasePrice:          d.BasePrice,
		Increment:          d.Increment,
		BuyNowPrice:        d.BuyNowPrice,
		TotalCopies:        d.TotalCopies,
		ExpiresAt:          d.ExpiresAt.UTC(),
		SellerUID:          seller.UID,
		SellerName:         seller.Name,
		SellerContact:      d.SellerContact,
		WinMessageTemplate: d.WinMessageTemplate,
		Status:             model.AuctionStatusActive,
	}
	if d.StartAt != nil {
		start := d.StartAt.UTC()
		a.StartAt = &start
		a.Status = model.AuctionStatusScheduled
	}
	a.SetWinners(map[string]int{})
	a.SetImages(d.ImageURLs, d.ImagePaths)
	return a
}
