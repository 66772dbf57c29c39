package model

import (
	"time"

	"gorm.io/datatypes"
)

type AuctionStatus string

const (
	AuctionStatusScheduled AuctionStatus = "scheduled"
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusClosed    AuctionStatus = "closed"
)

// ClosedBy records which path ended the auction.
type ClosedBy string

const (
	ClosedByBid     ClosedBy = "bid"
	ClosedByBuyNow  ClosedBy = "buyNow"
	ClosedByTimeout ClosedBy = "timeout"
)

type Auction struct {
	ID                 string                             `gorm:"column:id;primaryKey;size:36" json:"id"`
	Number             uint64                             `gorm:"column:number;uniqueIndex:uk_auctions_number" json:"number"`
	Title              string                             `gorm:"column:title;size:160;not null" json:"title"`
	Description        string                             `gorm:"column:description;type:text" json:"description"`
	DeliveryZone       string                             `gorm:"column:delivery_zone;size:255" json:"deliveryZone"`
	BasePrice          int64                              `gorm:"column:base_price;not null" json:"basePrice"`
	Increment          int64                              `gorm:"column:increment;not null" json:"increment"`
	BuyNowPrice        *int64                             `gorm:"column:buy_now_price" json:"buyNowPrice"`
	TotalCopies        int                                `gorm:"column:total_copies;not null" json:"totalCopies"`
	CopiesSold         int                                `gorm:"column:copies_sold;not null" json:"copiesSold"`
	CurrentPrice       *int64                             `gorm:"column:current_price" json:"currentPrice"`
	LeaderUID          string                             `gorm:"column:leader_uid;size:128;index" json:"leaderUid"`
	LeaderName         string                             `gorm:"column:leader_name;size:255" json:"leaderName"`
	Status             AuctionStatus                      `gorm:"column:status;size:16;not null;index:idx_auctions_status_start" json:"status"`
	StartAt            *time.Time                         `gorm:"column:start_at;index:idx_auctions_status_start" json:"startAt"`
	ExpiresAt          time.Time                          `gorm:"column:expires_at;not null;index" json:"expiresAt"`
	ClosedAt           *time.Time                         `gorm:"column:closed_at" json:"closedAt"`
	ClosedBy           ClosedBy                           `gorm:"column:closed_by;size:16" json:"closedBy"`
	WinnerQuantities   datatypes.JSONType[map[string]int] `gorm:"column:winner_quantities" json:"winnerQuantities"`
	SellerUID          string                             `gorm:"column:seller_uid;size:128;not null;index" json:"sellerUid"`
	SellerName         string                             `gorm:"column:seller_name;size:255" json:"sellerName"`
	SellerContact      string                             `gorm:"column:seller_contact;size:64" json:"sellerContact"`
	WinMessageTemplate string                             `gorm:"column:win_message_template;type:text" json:"winMessageTemplate"`
	ImageURLs          datatypes.JSONType[[]string]       `gorm:"column:image_urls" json:"imageUrls"`
	ImagePaths         datatypes.JSONType[[]string]       `gorm:"column:image_paths" json:"-"`
	Version            int64                              `gorm:"column:version;not null" json:"-"`
	CreatedAt          time.Time                          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time                          `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Auction) TableName() string {
	return "auctions"
}

// Winners returns a copy of the winner quantities map; never nil.
func (a *Auction) Winners() map[string]int {
	out := make(map[string]int)
	for uid, qty := range a.WinnerQuantities.Data() {
		out[uid] = qty
	}
	return out
}

func (a *Auction) SetWinners(w map[string]int) {
	a.WinnerQuantities = datatypes.NewJSONType(w)
}

// Remaining is the number of copies still for sale.
func (a *Auction) Remaining() int {
	if r := a.TotalCopies - a.CopiesSold; r > 0 {
		return r
	}
	return 0
}

// HasBids reports whether anyone has bid or bought yet.
func (a *Auction) HasBids() bool {
	return a.LeaderUID != ""
}

// Price is the current price, or the base price before the first bid.
func (a *Auction) Price() int64 {
	if a.CurrentPrice != nil && *a.CurrentPrice > 0 {
		return *a.CurrentPrice
	}
	return a.BasePrice
}

func (a *Auction) Images() []string {
	return append([]string(nil), a.ImageURLs.Data()...)
}

func (a *Auction) FirstImage() string {
	if imgs := a.ImageURLs.Data(); len(imgs) > 0 {
		return imgs[0]
	}
	return ""
}

func (a *Auction) IsClosed() bool {
	return a.Status == AuctionStatusClosed
}

// Expired reports whether the deadline has passed at now.
func (a *Auction) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

func (a *Auction) SetImages(urls, paths []string) {
	if urls == nil {
		urls = []string{}
	}
	if paths == nil {
		paths = []string{}
	}
	a.ImageURLs = datatypes.NewJSONType(urls)
	a.ImagePaths = datatypes.NewJSONType(paths)
}
