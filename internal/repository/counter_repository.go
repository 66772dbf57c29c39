package repository

import (
	"context"
	"errors"

	"github.com/shinyyama/auction-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CounterRepository interface {
	Current(ctx context.Context, name string) (uint64, error)
	EnsureAtLeast(ctx context.Context, name string, value uint64) error
	SetDB(db *gorm.DB)
}

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *counterRepository) Current(ctx context.Context, name string) (uint64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var c model.Counter
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return c.Value, nil
}

// EnsureAtLeast creates the counter or raises it to value.
func (r *counterRepository) EnsureAtLeast(ctx context.Context, name string, value uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Counter{Name: name, Value: value}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Counter{}).
			Where("name = ? AND value < ?", name, value).
			Update("value", value).Error
	})
}

// nextNumber increments the named counter inside tx.
func nextNumber(tx *gorm.DB, name string) (uint64, error) {
	var c model.Counter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = model.Counter{Name: name}
		if err := tx.Create(&c).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}
	next := c.Value + 1
	res := tx.Model(&model.Counter{}).
		Where("name = ? AND value = ?", name, c.Value).
		Update("value", next)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrConcurrentModification
	}
	return next, nil
}
