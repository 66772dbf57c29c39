package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultTxAttempts = 5

// AuctionMutation edits a freshly locked auction in place. A returned bid is
// appended to the history in the same transaction. Returning ErrNoChange
// rolls back without writing.
type AuctionMutation func(a *model.Auction) (*model.Bid, error)

type AuctionRepository interface {
	CreateNumbered(ctx context.Context, a *model.Auction) error
	FindByID(ctx context.Context, id string) (*model.Auction, error)
	List(ctx context.Context, status model.AuctionStatus, limit, offset int) ([]model.Auction, int64, error)
	ListBySeller(ctx context.Context, sellerUID string) ([]model.Auction, error)
	ListByBidder(ctx context.Context, uid string) ([]model.Auction, error)
	ListWonBy(ctx context.Context, uid string) ([]model.Auction, error)
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]model.Auction, error)
	ListExpiredOpen(ctx context.Context, now time.Time, limit int) ([]string, error)
	Mutate(ctx context.Context, id string, fn AuctionMutation) (*model.Auction, error)
	Activate(ctx context.Context, id string, now time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
	SetDB(db *gorm.DB)
}

type auctionRepository struct {
	db          *gorm.DB
	maxAttempts int
}

func NewAuctionRepository(db *gorm.DB, maxAttempts int) AuctionRepository {
	if maxAttempts <= 0 {
		maxAttempts = defaultTxAttempts
	}
	return &auctionRepository{db: db, maxAttempts: maxAttempts}
}

func (r *auctionRepository) SetDB(db *gorm.DB) {
	r.db = db
}

// CreateNumbered assigns the next sequential number and inserts a atomically.
func (r *auctionRepository) CreateNumbered(ctx context.Context, a *model.Auction) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.retry(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			n, err := nextNumber(tx, model.CounterAuctionNumber)
			if err != nil {
				return err
			}
			a.Number = n
			return tx.Create(a).Error
		})
	})
}

func (r *auctionRepository) FindByID(ctx context.Context, id string) (*model.Auction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var a model.Auction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auctionRepository) List(ctx context.Context, status model.AuctionStatus, limit, offset int) ([]model.Auction, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	var (
		list  []model.Auction
		total int64
	)
	byStatus := func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
	if err := r.db.WithContext(ctx).Model(&model.Auction{}).Scopes(byStatus).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Scopes(byStatus).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *auctionRepository) ListBySeller(ctx context.Context, sellerUID string) ([]model.Auction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Auction
	if err := r.db.WithContext(ctx).
		Where("seller_uid = ?", sellerUID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *auctionRepository) ListByBidder(ctx context.Context, uid string) ([]model.Auction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Auction
	sub := r.db.Model(&model.Bid{}).Select("auction_id").Where("bidder_uid = ?", uid)
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Order("expires_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *auctionRepository) ListWonBy(ctx context.Context, uid string) ([]model.Auction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Auction
	won := r.db.Where("leader_uid = ?", uid).
		Or(datatypes.JSONQuery("winner_quantities").HasKey(uid))
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.AuctionStatusClosed).
		Where(won).
		Order("closed_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *auctionRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]model.Auction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 {
		limit = 50
	}
	var list []model.Auction
	if err := r.db.WithContext(ctx).
		Where("status = ? AND start_at <= ?", model.AuctionStatusScheduled, now).
		Order("start_at ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *auctionRepository) ListExpiredOpen(ctx context.Context, now time.Time, limit int) ([]string, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 {
		limit = 50
	}
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.Auction{}).
		Where("status <> ? AND expires_at <= ?", model.AuctionStatusClosed, now).
		Order("expires_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Mutate runs fn as a read-modify-write transaction guarded by the row's
// version. Conflicts are retried up to the configured number of attempts.
func (r *auctionRepository) Mutate(ctx context.Context, id string, fn AuctionMutation) (*model.Auction, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var out *model.Auction
	err := r.retry(ctx, func() error {
		a, err := r.mutateOnce(ctx, id, fn)
		out = a
		return err
	})
	return out, err
}

func (r *auctionRepository) mutateOnce(ctx context.Context, id string, fn AuctionMutation) (*model.Auction, error) {
	var a model.Auction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&a).Error; err != nil {
			return err
		}
		version := a.Version
		bid, err := fn(&a)
		if err != nil {
			return err
		}
		a.Version = version + 1
		res := tx.Model(&model.Auction{}).
			Where("id = ? AND version = ?", id, version).
			Updates(stateColumns(&a))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentModification
		}
		if bid != nil {
			bid.AuctionID = id
			if err := tx.Create(bid).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoChange) {
			return &a, err
		}
		return nil, err
	}
	return &a, nil
}

func stateColumns(a *model.Auction) map[string]interface{} {
	return map[string]interface{}{
		"current_price":     a.CurrentPrice,
		"leader_uid":        a.LeaderUID,
		"leader_name":       a.LeaderName,
		"copies_sold":       a.CopiesSold,
		"winner_quantities": a.WinnerQuantities,
		"status":            a.Status,
		"expires_at":        a.ExpiresAt,
		"closed_at":         a.ClosedAt,
		"closed_by":         a.ClosedBy,
		"version":           a.Version,
	}
}

func (r *auctionRepository) retry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		err = op()
		if !errors.Is(err, ErrConcurrentModification) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 10 * time.Millisecond):
		}
	}
	return err
}

// Activate moves a scheduled auction to active once its start time passed.
func (r *auctionRepository) Activate(ctx context.Context, id string, now time.Time) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.Auction{}).
		Where("id = ? AND status = ? AND start_at <= ?", id, model.AuctionStatusScheduled, now).
		Updates(map[string]interface{}{
			"status":  model.AuctionStatusActive,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the auction and its bid history.
func (r *auctionRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auction_id = ?", id).Delete(&model.Bid{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Auction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
