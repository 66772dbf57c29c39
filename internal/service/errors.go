package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("not_found")
	ErrForbidden      = errors.New("forbidden")
	ErrBanned         = errors.New("banned")
	ErrSelfLike       = errors.New("cannot like own profile")
	ErrBuyNowInFlight = errors.New("buy-now already in progress")
	ErrInvalidMessage = errors.New("message must have text or an image")
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
