package repository

import (
	"context"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	Upsert(ctx context.Context, chat *model.Chat) error
	FindByID(ctx context.Context, id string) (*model.Chat, error)
	ListByUser(ctx context.Context, uid string) ([]model.Chat, error)
	AppendMessage(ctx context.Context, msg *model.Message, preview map[string]interface{}) (bool, error)
	HasSystemMessage(ctx context.Context, chatID string, event model.MessageEvent, auctionID string) (bool, error)
	MessageExists(ctx context.Context, chatID, id string) (bool, error)
	ListMessages(ctx context.Context, chatID string, limit int) ([]model.Message, error)
	States(ctx context.Context, chatID string) ([]model.ChatState, error)
	MarkRead(ctx context.Context, chatID, uid string, at time.Time) error
	SoftDelete(ctx context.Context, chatID, uid string) error
	SetDB(db *gorm.DB)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) SetDB(db *gorm.DB) {
	r.db = db
}

// Upsert creates the chat or refreshes its auction snapshot, and clears the
// soft-delete flag for both participants.
func (r *chatRepository) Upsert(ctx context.Context, chat *model.Chat) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	if chat.LastMessageAt.IsZero() {
		chat.LastMessageAt = r.db.NowFunc()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"seller_uid", "buyer_uid", "seller_name", "buyer_name",
				"last_auction_id", "last_auction_title", "last_auction_image_url",
				"last_auction_final_price", "updated_at",
			}),
		}).Create(chat).Error; err != nil {
			return err
		}
		return undelete(tx, chat.ID, chat.SellerUID, chat.BuyerUID)
	})
}

func undelete(tx *gorm.DB, chatID string, uids ...string) error {
	for _, uid := range uids {
		if uid == "" {
			continue
		}
		st := model.ChatState{ChatID: chatID, UID: uid}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}, {Name: "uid"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted": false}),
		}).Create(&st).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *chatRepository) FindByID(ctx context.Context, id string) (*model.Chat, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var chat model.Chat
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListByUser returns the user's chats that they have not deleted.
func (r *chatRepository) ListByUser(ctx context.Context, uid string) ([]model.Chat, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	hidden := r.db.Model(&model.ChatState{}).Select("chat_id").Where("uid = ? AND deleted = ?", uid, true)
	var list []model.Chat
	if err := r.db.WithContext(ctx).
		Where("seller_uid = ? OR buyer_uid = ?", uid, uid).
		Where("id NOT IN (?)", hidden).
		Order("last_message_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// AppendMessage inserts msg unless a message with the same id already exists
// in the chat. Only an inserted message updates the chat preview.
func (r *chatRepository) AppendMessage(ctx context.Context, msg *model.Message, preview map[string]interface{}) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(msg)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		inserted = true
		patch := map[string]interface{}{
			"last_message":            msg.Text,
			"last_message_at":         msg.CreatedAt,
			"last_message_sender_uid": msg.SenderUID,
		}
		for k, v := range preview {
			patch[k] = v
		}
		if err := tx.Model(&model.Chat{}).Where("id = ?", msg.ChatID).Updates(patch).Error; err != nil {
			return err
		}
		var chat model.Chat
		if err := tx.Select("seller_uid", "buyer_uid").Where("id = ?", msg.ChatID).First(&chat).Error; err != nil {
			return err
		}
		return undelete(tx, msg.ChatID, chat.SellerUID, chat.BuyerUID)
	})
	return inserted, err
}

func (r *chatRepository) HasSystemMessage(ctx context.Context, chatID string, event model.MessageEvent, auctionID string) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("chat_id = ? AND is_system = ? AND event = ? AND auction_id = ?", chatID, true, event, auctionID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *chatRepository) MessageExists(ctx context.Context, chatID, id string) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("chat_id = ? AND id = ?", chatID, id).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string, limit int) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *chatRepository) States(ctx context.Context, chatID string) ([]model.ChatState, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.ChatState
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *chatRepository) MarkRead(ctx context.Context, chatID, uid string, at time.Time) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	st := model.ChatState{ChatID: chatID, UID: uid, LastReadAt: &at}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "uid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_read_at": at}),
	}).Create(&st).Error
}

func (r *chatRepository) SoftDelete(ctx context.Context, chatID, uid string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	st := model.ChatState{ChatID: chatID, UID: uid, Deleted: true}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "uid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"deleted": true}),
	}).Create(&st).Error
}
