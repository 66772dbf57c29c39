package main

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/shinyyama/auction-backend/internal/auction"
	"github.com/shinyyama/auction-backend/internal/config"
	"github.com/shinyyama/auction-backend/internal/db"
	"github.com/shinyyama/auction-backend/internal/logger"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/shinyyama/auction-backend/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type seedConfig struct {
	ForceSeed   bool   `env:"FORCE_SEED" envDefault:"false"`
	AdminUID    string `env:"SEED_ADMIN_UID"`
	NumberStart uint64 `env:"SEED_NUMBER_START" envDefault:"0"`
}

type seedAuction struct {
	Title       string
	Description string
	Zone        string
	Base        int64
	Increment   int64
	BuyNow      int64
	Copies      int
	Duration    time.Duration
	Seller      int
}

var sellers = []service.Identity{
	{UID: "seed-seller-1", Name: "Lucía Ramos", Email: "lucia@example.com"},
	{UID: "seed-seller-2", Name: "Diego Paredes", Email: "diego@example.com"},
}

var auctions = []seedAuction{
	{Title: "Cámara analógica Pentax K1000", Description: "Funciona perfecto, incluye lente 50mm.", Zone: "Miraflores", Base: 250, Increment: 10, BuyNow: 480, Copies: 1, Duration: 48 * time.Hour},
	{Title: "Vinilo Soda Stereo - Signos", Description: "Edición original, sin rayones.", Zone: "San Isidro", Base: 80, Increment: 5, Copies: 1, Duration: 24 * time.Hour, Seller: 1},
	{Title: "Polo edición limitada", Description: "Tallas S a L.", Zone: "Barranco", Base: 35, Increment: 2, BuyNow: 60, Copies: 5, Duration: 72 * time.Hour, Seller: 1},
	{Title: "Teclado mecánico 65%", Description: "Switches lineales, poco uso.", Zone: "Surco", Base: 150, Increment: 10, BuyNow: 300, Copies: 1, Duration: 3 * time.Hour},
}

func main() {
	if err := run(); err != nil {
		logrus.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	var sc seedConfig
	if err := env.Parse(&sc); err != nil {
		return fmt.Errorf("parse seed env: %w", err)
	}
	logger.Init(cfg.LogLevel)

	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	counters := repository.NewCounterRepository(gdb)
	if err := counters.EnsureAtLeast(ctx, model.CounterAuctionNumber, sc.NumberStart); err != nil {
		return fmt.Errorf("seed counter: %w", err)
	}

	canSeed, err := shouldSeed(ctx, gdb, sc.ForceSeed)
	if err != nil {
		return err
	}
	if !canSeed {
		logrus.Info("auctions already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	profiles := service.NewProfileService(repository.NewProfileRepository(gdb))
	for _, s := range sellers {
		if _, err := profiles.Ensure(ctx, s); err != nil {
			return fmt.Errorf("ensure profile %s: %w", s.UID, err)
		}
	}
	if sc.AdminUID != "" {
		if _, err := profiles.Ensure(ctx, service.Identity{UID: sc.AdminUID}); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
		if err := gdb.WithContext(ctx).Model(&model.UserProfile{}).
			Where("uid = ?", sc.AdminUID).Update("is_admin", true).Error; err != nil {
			return fmt.Errorf("grant admin: %w", err)
		}
	}

	svc := service.NewAuctionService(service.AuctionDeps{
		Auctions: repository.NewAuctionRepository(gdb, cfg.Auction.TxMaxAttempts),
		Bids:     repository.NewBidRepository(gdb),
		Profiles: profiles,
	})
	now := time.Now()
	for i, sa := range auctions {
		seller := sellers[sa.Seller]
		a, err := svc.Create(ctx, auction.Participant{UID: seller.UID, Name: seller.Name}, draftFor(sa, now, i))
		if err != nil {
			return fmt.Errorf("create %q: %w", sa.Title, err)
		}
		logrus.WithFields(logrus.Fields{"auction": a.ID, "number": a.Number}).Info("seeded auction")
	}
	logrus.Infof("seeded %d auctions", len(auctions))
	return nil
}

func draftFor(sa seedAuction, now time.Time, idx int) auction.Draft {
	d := auction.Draft{
		Title:        sa.Title,
		Description:  sa.Description,
		DeliveryZone: sa.Zone,
		BasePrice:    sa.Base,
		Increment:    sa.Increment,
		TotalCopies:  sa.Copies,
		ExpiresAt:    now.Add(sa.Duration),
		ImageURLs:    []string{fmt.Sprintf("https://picsum.photos/seed/auction-%d/600/600", idx+1)},
	}
	if sa.BuyNow > 0 {
		buyNow := sa.BuyNow
		d.BuyNowPrice = &buyNow
	}
	return d
}

func shouldSeed(ctx context.Context, gdb *gorm.DB, force bool) (bool, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.Auction{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count auctions: %w", err)
	}
	return cnt == 0 || force, nil
}
