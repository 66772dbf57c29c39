package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/shinyyama/auction-backend/internal/auction"
	"github.com/shinyyama/auction-backend/internal/config"
	"github.com/shinyyama/auction-backend/internal/db"
	"github.com/shinyyama/auction-backend/internal/events"
	"github.com/shinyyama/auction-backend/internal/guard"
	"github.com/shinyyama/auction-backend/internal/handler"
	"github.com/shinyyama/auction-backend/internal/live"
	"github.com/shinyyama/auction-backend/internal/logger"
	appmw "github.com/shinyyama/auction-backend/internal/middleware"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/shinyyama/auction-backend/internal/server"
	"github.com/shinyyama/auction-backend/internal/service"
	"github.com/shinyyama/auction-backend/internal/settlement"
	"github.com/shinyyama/auction-backend/internal/storage"
	"github.com/shinyyama/auction-backend/internal/worker"
	"github.com/sirupsen/logrus"
)

// set with -ldflags at build time
var (
	gitSHA    = "dev"
	buildTime = ""
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(cfg)
	if err != nil {
		logrus.Fatalf("db connect error: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("auto migrate error: %v", err)
	}

	hub := live.NewHub()
	var locker guard.Locker = guard.NewMemoryLocker()
	var publishers events.Multi

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		locker = guard.NewRedisLocker(rdb)
		publishers = append(publishers, events.NewRedisPublisher(rdb))
		go func() {
			if err := hub.ConsumeRedis(ctx, rdb); err != nil && !errors.Is(err, context.Canceled) {
				logrus.WithError(err).Error("redis relay stopped")
			}
		}()
	} else {
		publishers = append(publishers, hub)
	}

	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("auction-backend"))
		if err != nil {
			logrus.WithError(err).Warn("nats unavailable; events stay local")
		} else {
			defer nc.Drain()
			publishers = append(publishers, events.NewNATSPublisher(nc))
		}
	}

	var uploader handler.Uploader
	var blobs service.BlobDeleter
	if cfg.StorageBucket != "" {
		store, err := storage.NewImageStore(ctx, cfg.StorageBucket, cfg.CredentialsFile)
		if err != nil {
			logrus.WithError(err).Warn("image storage disabled")
		} else {
			defer store.Close()
			uploader = store
			blobs = store
		}
	}

	authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProjectID, cfg.CredentialsFile)
	if err != nil {
		logrus.Fatalf("failed to init firebase auth: %v", err)
	}

	auctionRepo := repository.NewAuctionRepository(conn, cfg.Auction.TxMaxAttempts)
	chatRepo := repository.NewChatRepository(conn)

	profileSvc := service.NewProfileService(repository.NewProfileRepository(conn))
	notificationSvc := service.NewNotificationService(repository.NewNotificationRepository(conn))
	settlementSvc := service.NewSettlementService(chatRepo, notificationSvc, settlement.Formatter{
		Currency:    cfg.Settlement.Currency,
		PaymentDays: cfg.Settlement.PaymentDays,
		DateLayout:  cfg.Settlement.CloseDateLayout,
		Location:    cfg.Settlement.Location(),
	})
	auctionSvc := service.NewAuctionService(service.AuctionDeps{
		Auctions:   auctionRepo,
		Bids:       repository.NewBidRepository(conn),
		Profiles:   profileSvc,
		Settlement: settlementSvc,
		Publisher:  publishers,
		Locker:     locker,
		Blobs:      blobs,
		Rules: auction.Rules{
			AntiSnipeWindow:    cfg.Auction.AntiSnipeWindow,
			AntiSnipeExtension: cfg.Auction.AntiSnipeExtension,
		},
		LockTTL: cfg.Auction.BuyNowLockTTL,
	})
	chatSvc := service.NewChatService(chatRepo, profileSvc, notificationSvc)

	w := worker.New(auctionSvc, cfg.Auction.PublishInterval, cfg.Auction.ExpirySweepInterval)
	w.Start(ctx)
	defer w.Stop()

	srv := server.New(server.Deps{
		Auctions:      auctionSvc,
		Chats:         chatSvc,
		Profiles:      profileSvc,
		Notifications: notificationSvc,
		Auth:          authMw.WithProfiles(profileSvc),
		Uploader:      uploader,
		Hub:           hub,
		OriginSuffix:  cfg.AllowedOriginSuffix,
		SHA:           gitSHA,
		BuildTime:     buildTime,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("shutdown failed")
		}
	}
}
