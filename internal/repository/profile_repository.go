package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByUID(ctx context.Context, uid string) (*model.UserProfile, error)
	FindByUIDs(ctx context.Context, uids []string) ([]model.UserProfile, error)
	Ensure(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error)
	ToggleLike(ctx context.Context, profileUID, likerUID string) (bool, int64, error)
	IsLikedBy(ctx context.Context, profileUID, likerUID string) (bool, error)
	SetBanned(ctx context.Context, uid string, banned bool, reason, by string, at time.Time) error
	Search(ctx context.Context, prefix string, limit int) ([]model.UserProfile, error)
	SetDB(db *gorm.DB)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *profileRepository) FindByUID(ctx context.Context, uid string) (*model.UserProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.UserProfile
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByUIDs(ctx context.Context, uids []string) ([]model.UserProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if len(uids) == 0 {
		return nil, nil
	}
	var list []model.UserProfile
	if err := r.db.WithContext(ctx).Where("uid IN ?", uids).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Ensure inserts p if no profile exists for its uid and returns the stored row.
// Identity fields of an existing profile are only filled when still empty.
func (r *profileRepository) Ensure(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	p.SearchName = strings.ToLower(strings.TrimSpace(p.DisplayName))
	var out model.UserProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(p).Error; err != nil {
			return err
		}
		if err := tx.Where("uid = ?", p.UID).First(&out).Error; err != nil {
			return err
		}
		patch := map[string]interface{}{}
		if out.DisplayName == "" && p.DisplayName != "" {
			patch["display_name"] = p.DisplayName
			patch["search_name"] = p.SearchName
		}
		if out.Email == "" && p.Email != "" {
			patch["email"] = p.Email
		}
		if out.PhotoURL == "" && p.PhotoURL != "" {
			patch["photo_url"] = p.PhotoURL
		}
		if len(patch) == 0 {
			return nil
		}
		if err := tx.Model(&model.UserProfile{}).Where("uid = ?", p.UID).Updates(patch).Error; err != nil {
			return err
		}
		return tx.Where("uid = ?", p.UID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleLike flips likerUID's membership in the profile's liked-by set and
// adjusts the aggregate count in the same transaction.
func (r *profileRepository) ToggleLike(ctx context.Context, profileUID, likerUID string) (bool, int64, error) {
	if r.db == nil {
		return false, 0, ErrDBNotReady
	}
	var (
		liked bool
		count int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.UserProfile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("uid = ?", profileUID).
			First(&p).Error; err != nil {
			return err
		}
		var existing model.ProfileLike
		err := tx.Where("profile_uid = ? AND liker_uid = ?", profileUID, likerUID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Where("profile_uid = ? AND liker_uid = ?", profileUID, likerUID).
				Delete(&model.ProfileLike{}).Error; err != nil {
				return err
			}
			count = p.LikesCount - 1
			if count < 0 {
				count = 0
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.ProfileLike{ProfileUID: profileUID, LikerUID: likerUID}).Error; err != nil {
				return err
			}
			liked = true
			count = p.LikesCount + 1
		default:
			return err
		}
		return tx.Model(&model.UserProfile{}).
			Where("uid = ?", profileUID).
			Update("likes_count", count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *profileRepository) IsLikedBy(ctx context.Context, profileUID, likerUID string) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.ProfileLike{}).
		Where("profile_uid = ? AND liker_uid = ?", profileUID, likerUID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *profileRepository) SetBanned(ctx context.Context, uid string, banned bool, reason, by string, at time.Time) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	patch := map[string]interface{}{
		"banned":        banned,
		"banned_at":     nil,
		"banned_reason": "",
		"banned_by":     "",
	}
	if banned {
		patch["banned_at"] = at
		patch["banned_reason"] = reason
		patch["banned_by"] = by
	}
	res := r.db.WithContext(ctx).Model(&model.UserProfile{}).Where("uid = ?", uid).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *profileRepository) Search(ctx context.Context, prefix string, limit int) ([]model.UserProfile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	q := strings.ToLower(strings.TrimSpace(prefix))
	q = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(q)
	var list []model.UserProfile
	if err := r.db.WithContext(ctx).
		Where("search_name LIKE ? ESCAPE '!'", q+"%").
		Order("search_name ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
