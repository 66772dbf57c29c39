package model

import "time"

type Chat struct {
	ID                    string      `gorm:"column:id;primaryKey;size:260" json:"id"`
	SellerUID             string      `gorm:"column:seller_uid;size:128;index" json:"sellerUid"`
	BuyerUID              string      `gorm:"column:buyer_uid;size:128;index" json:"buyerUid"`
	SellerName            string      `gorm:"column:seller_name;size:255" json:"sellerName"`
	BuyerName             string      `gorm:"column:buyer_name;size:255" json:"buyerName"`
	LastAuctionID         string      `gorm:"column:last_auction_id;size:36" json:"lastAuctionId"`
	LastAuctionTitle      string      `gorm:"column:last_auction_title;size:160" json:"lastAuctionTitle"`
	LastAuctionImageURL   string      `gorm:"column:last_auction_image_url;size:1024" json:"lastAuctionImageUrl"`
	LastAuctionFinalPrice int64       `gorm:"column:last_auction_final_price" json:"lastAuctionFinalPrice"`
	LastMessage           string      `gorm:"column:last_message;type:text" json:"lastMessage"`
	LastMessageAt         time.Time   `gorm:"column:last_message_at" json:"lastMessageAt"`
	LastMessageSenderUID  *string     `gorm:"column:last_message_sender_uid;size:128" json:"lastMessageSenderUid"`
	CreatedAt             time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	States                []ChatState `gorm:"foreignKey:ChatID;references:ID" json:"-"`
}

func (Chat) TableName() string {
	return "chats"
}

// HasParticipant reports whether uid is the seller or the buyer.
func (c *Chat) HasParticipant(uid string) bool {
	return uid != "" && (uid == c.SellerUID || uid == c.BuyerUID)
}

// ChatState holds per-participant read and soft-delete markers.
type ChatState struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement"`
	ChatID     string     `gorm:"column:chat_id;size:260;uniqueIndex:uniq_chat_uid"`
	UID        string     `gorm:"column:uid;size:128;uniqueIndex:uniq_chat_uid"`
	LastReadAt *time.Time `gorm:"column:last_read_at"`
	Deleted    bool       `gorm:"column:deleted;not null"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (ChatState) TableName() string {
	return "chat_states"
}
