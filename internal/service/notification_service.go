package service

import (
	"context"

	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type NotificationService interface {
	Notify(ctx context.Context, userUID, typ, title, body string, auctionID, chatID *string)
	List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkAllRead(ctx context.Context, userUID string) error
	MarkByChat(ctx context.Context, userUID, chatID string) error
	MarkByAuction(ctx context.Context, userUID, auctionID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// Notify is best-effort; failures are logged and never reach the caller.
func (s *notificationService) Notify(ctx context.Context, userUID, typ, title, body string, auctionID, chatID *string) {
	if userUID == "" || typ == "" {
		return
	}
	n := &model.Notification{
		UserUID:   userUID,
		Type:      typ,
		Title:     title,
		Body:      body,
		AuctionID: auctionID,
		ChatID:    chatID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"uid": userUID, "type": typ}).Warn("notification not stored")
	}
}

func (s *notificationService) List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if userUID == "" {
		return nil, 0, nil
	}
	list, err := s.repo.ListByUser(ctx, userUID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, userUID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userUID string) error {
	if userUID == "" {
		return nil
	}
	return s.repo.MarkAllRead(ctx, userUID)
}

func (s *notificationService) MarkByChat(ctx context.Context, userUID, chatID string) error {
	if userUID == "" || chatID == "" {
		return nil
	}
	return s.repo.MarkByChat(ctx, userUID, chatID)
}

func (s *notificationService) MarkByAuction(ctx context.Context, userUID, auctionID string) error {
	if userUID == "" || auctionID == "" {
		return nil
	}
	return s.repo.MarkByAuction(ctx, userUID, auctionID)
}

func strPtr(s string) *string {
	return &s
}
