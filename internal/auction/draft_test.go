package auction

import (
	"testing"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftValidate(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	valid := func() Draft {
		return Draft{
			Title:       " Pikachu promo ",
			BasePrice:   10,
			TotalCopies: 1,
			ExpiresAt:   now.Add(24 * time.Hour),
		}
	}

	tests := []struct {
		name    string
		mutate  func(d *Draft)
		wantErr bool
	}{
		{"valid", func(d *Draft) {}, false},
		{"blank title", func(d *Draft) { d.Title = "   " }, true},
		{"zero base", func(d *Draft) { d.BasePrice = 0 }, true},
		{"negative increment", func(d *Draft) { d.Increment = -1 }, true},
		{"buy-now equal to base", func(d *Draft) { d.BuyNowPrice = ptr(int64(10)) }, true},
		{"buy-now above base", func(d *Draft) { d.BuyNowPrice = ptr(int64(11)) }, false},
		{"negative copies", func(d *Draft) { d.TotalCopies = -2 }, true},
		{"past expiry", func(d *Draft) { d.ExpiresAt = now.Add(-time.Minute) }, true},
		{"start in past", func(d *Draft) { d.StartAt = ptr(now.Add(-time.Minute)) }, true},
		{"start after end", func(d *Draft) { d.StartAt = ptr(now.Add(48 * time.Hour)) }, true},
		{"scheduled", func(d *Draft) { d.StartAt = ptr(now.Add(time.Hour)) }, false},
		{"base above cap", func(d *Draft) { d.BasePrice = MaxPrice + 1 }, true},
		{"increment above cap", func(d *Draft) { d.Increment = 1e18 }, true},
		{"buy-now above cap", func(d *Draft) { d.BuyNowPrice = ptr(int64(MaxPrice + 1)) }, true},
		{"prices at cap", func(d *Draft) {
			d.BasePrice = MaxPrice - 1
			d.Increment = MaxPrice
			d.BuyNowPrice = ptr(int64(MaxPrice))
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(&d)
			d.Normalize()
			err := d.Validate(now)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAuction)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDraftBuild(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	d := Draft{
		Title:       "Pikachu promo",
		BasePrice:   10,
		ExpiresAt:   now.Add(24 * time.Hour),
		StartAt:     ptr(now.Add(time.Hour)),
		BuyNowPrice: ptr(int64(0)),
		ImageURLs:   []string{"https://img/1"},
		ImagePaths:  []string{"auctions/1"},
	}
	d.Normalize()
	require.NoError(t, d.Validate(now))

	a := d.Build("id-1", 7, seller)
	assert.Equal(t, model.AuctionStatusScheduled, a.Status)
	assert.Equal(t, int64(1), a.Increment)
	assert.Equal(t, 1, a.TotalCopies)
	assert.Nil(t, a.BuyNowPrice)
	assert.Equal(t, uint64(7), a.Number)
	assert.Equal(t, "seller", a.SellerUID)
	assert.Equal(t, "https://img/1", a.FirstImage())
	assert.False(t, a.HasBids())
	assert.Equal(t, int64(10), TermsOf(a).Minimum())
}
