package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shinyyama/auction-backend/internal/auction"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/reqctx"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/shinyyama/auction-backend/internal/settlement"
	"github.com/sirupsen/logrus"
)

// SettlementService writes the system chat messages that announce an
// auction outcome. Each logical settlement event produces at most one message.
type SettlementService interface {
	EnsureClosedMessage(ctx context.Context, a *model.Auction, buyerUID string) (bool, error)
	SendBuyNowMessage(ctx context.Context, a *model.Auction, buyer auction.Participant, qty int, eventID string) (bool, error)
}

type settlementService struct {
	chats     repository.ChatRepository
	notify    NotificationService
	formatter settlement.Formatter
	now       func() time.Time
}

func NewSettlementService(chats repository.ChatRepository, notify NotificationService, formatter settlement.Formatter) SettlementService {
	return &settlementService{chats: chats, notify: notify, formatter: formatter, now: time.Now}
}

func (s *settlementService) EnsureClosedMessage(ctx context.Context, a *model.Auction, buyerUID string) (bool, error) {
	chatID, err := settlement.ChatID(a.SellerUID, buyerUID)
	if err != nil {
		return false, err
	}
	msgID := settlement.CloseMessageID(a.ID)
	if exists, err := s.chats.MessageExists(ctx, chatID, msgID); err != nil || exists {
		return false, err
	}
	if bought, err := s.chats.HasSystemMessage(ctx, chatID, model.MessageEventBuyNow, a.ID); err != nil || bought {
		return false, err
	}

	buyerName := a.LeaderName
	if buyerUID != a.LeaderUID || buyerName == "" {
		buyerName = "Comprador"
	}
	price := settlement.ClosePrice(a)
	qty := settlement.CloseQuantity(a)
	if err := s.ensureChat(ctx, chatID, a, buyerUID, buyerName, price); err != nil {
		return false, err
	}

	now := s.now()
	msg := &model.Message{
		ChatID:       chatID,
		ID:           msgID,
		Text:         s.formatter.Message(a, price, qty, now),
		System:       true,
		Event:        model.MessageEventClose,
		AuctionID:    a.ID,
		AuctionTitle: a.Title,
		FinalPrice:   price,
		Quantity:     &qty,
		ImageURL:     a.FirstImage(),
		CreatedAt:    now.UTC(),
	}
	inserted, err := s.chats.AppendMessage(ctx, msg, nil)
	if err != nil {
		return false, fmt.Errorf("append close message: %w", err)
	}
	if inserted {
		s.announce(ctx, a, chatID, buyerUID, msg.Text)
		reqctx.Log(ctx).WithField("chat", chatID).Info("close message sent")
	}
	return inserted, nil
}

func (s *settlementService) SendBuyNowMessage(ctx context.Context, a *model.Auction, buyer auction.Participant, qty int, eventID string) (bool, error) {
	chatID, err := settlement.ChatID(a.SellerUID, buyer.UID)
	if err != nil {
		return false, err
	}
	if closed, err := s.chats.HasSystemMessage(ctx, chatID, model.MessageEventClose, a.ID); err != nil || closed {
		return false, err
	}
	key := settlement.StableKey(eventID, a.ID, buyer.UID, qty)
	msgID := settlement.BuyNowMessageID(key)
	if exists, err := s.chats.MessageExists(ctx, chatID, msgID); err != nil || exists {
		return false, err
	}

	name := buyer.Name
	if name == "" {
		name = "Comprador"
	}
	price := settlement.BuyNowPrice(a)
	if err := s.ensureChat(ctx, chatID, a, buyer.UID, name, price); err != nil {
		return false, err
	}

	now := s.now()
	msg := &model.Message{
		ChatID:       chatID,
		ID:           msgID,
		Text:         s.formatter.Message(a, price, qty, now),
		System:       true,
		Event:        model.MessageEventBuyNow,
		AuctionID:    a.ID,
		AuctionTitle: a.Title,
		FinalPrice:   price,
		Quantity:     &qty,
		BuyNowKey:    key,
		ImageURL:     a.FirstImage(),
		CreatedAt:    now.UTC(),
	}
	inserted, err := s.chats.AppendMessage(ctx, msg, nil)
	if err != nil {
		return false, fmt.Errorf("append buy-now message: %w", err)
	}
	if inserted {
		s.announce(ctx, a, chatID, buyer.UID, msg.Text)
		reqctx.Log(ctx).WithFields(logrus.Fields{"chat": chatID, "key": key}).Info("buy-now message sent")
	}
	return inserted, nil
}

func (s *settlementService) ensureChat(ctx context.Context, chatID string, a *model.Auction, buyerUID, buyerName string, price int64) error {
	sellerName := a.SellerName
	if sellerName == "" {
		sellerName = "Vendedor"
	}
	chat := &model.Chat{
		ID:                    chatID,
		SellerUID:             a.SellerUID,
		BuyerUID:              buyerUID,
		SellerName:            sellerName,
		BuyerName:             buyerName,
		LastAuctionID:         a.ID,
		LastAuctionTitle:      a.Title,
		LastAuctionImageURL:   a.FirstImage(),
		LastAuctionFinalPrice: price,
	}
	if err := s.chats.Upsert(ctx, chat); err != nil {
		return fmt.Errorf("ensure chat %s: %w", chatID, err)
	}
	return nil
}

func (s *settlementService) announce(ctx context.Context, a *model.Auction, chatID, buyerUID, text string) {
	if s.notify == nil {
		return
	}
	s.notify.Notify(ctx, buyerUID, model.NotificationAuctionWon, fmt.Sprintf("Ganaste \"%s\"", a.Title), text, strPtr(a.ID), strPtr(chatID))
	s.notify.Notify(ctx, a.SellerUID, model.NotificationAuctionSold, fmt.Sprintf("Vendiste \"%s\"", a.Title), text, strPtr(a.ID), strPtr(chatID))
}
