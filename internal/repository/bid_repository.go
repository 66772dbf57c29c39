package repository

import (
	"context"

	"github.com/shinyyama/auction-backend/internal/model"
	"gorm.io/gorm"
)

type BidRepository interface {
	Create(ctx context.Context, b *model.Bid) error
	ListByAuction(ctx context.Context, auctionID string, limit int) ([]model.Bid, error)
	SetDB(db *gorm.DB)
}

type bidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *bidRepository) Create(ctx context.Context, b *model.Bid) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bidRepository) ListByAuction(ctx context.Context, auctionID string, limit int) ([]model.Bid, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var list []model.Bid
	if err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
