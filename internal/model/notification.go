package model

import "time"

const (
	NotificationAuctionWon  = "auction_won"
	NotificationAuctionSold = "auction_sold"
	NotificationChatMessage = "chat_message"
)

type Notification struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement"`
	UserUID   string     `gorm:"column:user_uid;size:128;index;not null"`
	Type      string     `gorm:"column:type;size:64;not null"`
	Title     string     `gorm:"column:title;size:255"`
	Body      string     `gorm:"column:body;type:text"`
	AuctionID *string    `gorm:"column:auction_id;size:36;index"`
	ChatID    *string    `gorm:"column:chat_id;size:260;index"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
