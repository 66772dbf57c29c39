package model

import "time"

type MessageEvent string

const (
	MessageEventNone   MessageEvent = ""
	MessageEventClose  MessageEvent = "cierre"
	MessageEventBuyNow MessageEvent = "compraDirecta"
)

// Message ids are unique per chat; system messages use deterministic ids.
type Message struct {
	ChatID       string       `gorm:"column:chat_id;primaryKey;size:260" json:"chatId"`
	ID           string       `gorm:"column:id;primaryKey;size:255" json:"id"`
	SenderUID    *string      `gorm:"column:sender_uid;size:128" json:"senderUid"`
	Text         string       `gorm:"column:text;type:text;not null" json:"text"`
	System       bool         `gorm:"column:is_system;not null;index:idx_messages_system_event" json:"system"`
	Event        MessageEvent `gorm:"column:event;size:32;index:idx_messages_system_event" json:"event,omitempty"`
	AuctionID    string       `gorm:"column:auction_id;size:36;index:idx_messages_system_event" json:"auctionId,omitempty"`
	AuctionTitle string       `gorm:"column:auction_title;size:160" json:"auctionTitle,omitempty"`
	FinalPrice   int64        `gorm:"column:final_price" json:"finalPrice,omitempty"`
	Quantity     *int         `gorm:"column:quantity" json:"quantity,omitempty"`
	BuyNowKey    string       `gorm:"column:buy_now_key;size:255" json:"buyNowKey,omitempty"`
	ImageURL     string       `gorm:"column:image_url;size:1024" json:"imageUrl,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (Message) TableName() string {
	return "chat_messages"
}
