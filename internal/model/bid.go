package model

import "time"

type BidType string

const (
	BidTypeBid    BidType = "bid"
	BidTypeBuyNow BidType = "buyNow"
)

// Bid is an append-only history entry for an auction.
type Bid struct {
	ID         string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	AuctionID  string    `gorm:"column:auction_id;size:36;not null;index:idx_bids_auction_created" json:"auctionId"`
	Amount     int64     `gorm:"column:amount;not null" json:"amount"`
	BidderUID  string    `gorm:"column:bidder_uid;size:128;not null;index" json:"uid"`
	BidderName string    `gorm:"column:bidder_name;size:255" json:"name"`
	Type       BidType   `gorm:"column:type;size:16;not null" json:"type"`
	Quantity   int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_bids_auction_created" json:"createdAt"`
}

func (Bid) TableName() string {
	return "auction_bids"
}
