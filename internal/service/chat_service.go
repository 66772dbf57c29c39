package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/shinyyama/auction-backend/internal/reqctx"
)

const maxMessageLength = 2000

type ChatSummary struct {
	Chat   model.Chat
	Unread bool
}

type ChatService interface {
	ListMine(ctx context.Context, uid string) ([]ChatSummary, error)
	Get(ctx context.Context, chatID, uid string) (*model.Chat, error)
	ListMessages(ctx context.Context, chatID, uid string, limit int) ([]model.Message, error)
	PostMessage(ctx context.Context, chatID, uid, text, imageURL string) (*model.Message, error)
	MarkRead(ctx context.Context, chatID, uid string) error
	Delete(ctx context.Context, chatID, uid string) error
}

type chatService struct {
	repo     repository.ChatRepository
	profiles ProfileService
	notify   NotificationService
	now      func() time.Time
}

func NewChatService(repo repository.ChatRepository, profiles ProfileService, notify NotificationService) ChatService {
	return &chatService{repo: repo, profiles: profiles, notify: notify, now: time.Now}
}

func (s *chatService) ListMine(ctx context.Context, uid string) ([]ChatSummary, error) {
	if uid == "" {
		return nil, ErrForbidden
	}
	chats, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	names := s.counterpartNames(ctx, chats)
	out := make([]ChatSummary, 0, len(chats))
	for _, c := range chats {
		if n, ok := names[c.SellerUID]; ok {
			c.SellerName = n
		}
		if n, ok := names[c.BuyerUID]; ok {
			c.BuyerName = n
		}
		sum := ChatSummary{Chat: c}
		if c.LastMessageSenderUID == nil || *c.LastMessageSenderUID != uid {
			states, err := s.repo.States(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			sum.Unread = unread(states, uid, c.LastMessageAt)
		}
		out = append(out, sum)
	}
	return out, nil
}

// counterpartNames loads current profile names for every chat participant.
// Lookup failures leave the names copied at chat creation in place.
func (s *chatService) counterpartNames(ctx context.Context, chats []model.Chat) map[string]string {
	if s.profiles == nil || len(chats) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(chats)*2)
	uids := make([]string, 0, len(chats)*2)
	for _, c := range chats {
		for _, uid := range []string{c.SellerUID, c.BuyerUID} {
			if _, ok := seen[uid]; ok || uid == "" {
				continue
			}
			seen[uid] = struct{}{}
			uids = append(uids, uid)
		}
	}
	names, err := s.profiles.DisplayNames(ctx, uids)
	if err != nil {
		reqctx.Log(ctx).WithError(err).Warn("chat names not refreshed")
		return nil
	}
	return names
}

func unread(states []model.ChatState, uid string, lastMessageAt time.Time) bool {
	if lastMessageAt.IsZero() {
		return false
	}
	for _, st := range states {
		if st.UID == uid && st.LastReadAt != nil {
			return st.LastReadAt.Before(lastMessageAt)
		}
	}
	return true
}

// Get returns ErrForbidden to non-participants.
func (s *chatService) Get(ctx context.Context, chatID, uid string) (*model.Chat, error) {
	c, err := s.repo.FindByID(ctx, chatID)
	if err != nil {
		return nil, notFound(err)
	}
	if !c.HasParticipant(uid) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *chatService) ListMessages(ctx context.Context, chatID, uid string, limit int) ([]model.Message, error) {
	if _, err := s.Get(ctx, chatID, uid); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, chatID, limit)
}

func (s *chatService) PostMessage(ctx context.Context, chatID, uid, text, imageURL string) (*model.Message, error) {
	c, err := s.Get(ctx, chatID, uid)
	if err != nil {
		return nil, err
	}
	if banned, err := s.profiles.IsBanned(ctx, uid); err != nil {
		return nil, err
	} else if banned {
		return nil, ErrBanned
	}
	text = strings.TrimSpace(text)
	imageURL = strings.TrimSpace(imageURL)
	if (text == "" && imageURL == "") || len([]rune(text)) > maxMessageLength {
		return nil, ErrInvalidMessage
	}
	preview := text
	if preview == "" {
		preview = "📷 Imagen"
	}
	sender := uid
	msg := &model.Message{
		ChatID:    chatID,
		ID:        uuid.NewString(),
		SenderUID: &sender,
		Text:      text,
		ImageURL:  imageURL,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.repo.AppendMessage(ctx, msg, map[string]interface{}{"last_message": preview}); err != nil {
		return nil, err
	}
	other := c.SellerUID
	if other == uid {
		other = c.BuyerUID
	}
	if s.notify != nil {
		s.notify.Notify(ctx, other, model.NotificationChatMessage, "Nuevo mensaje", preview, nil, strPtr(chatID))
	}
	return msg, nil
}

func (s *chatService) MarkRead(ctx context.Context, chatID, uid string) error {
	if _, err := s.Get(ctx, chatID, uid); err != nil {
		return err
	}
	if err := s.repo.MarkRead(ctx, chatID, uid, s.now().UTC()); err != nil {
		return err
	}
	if s.notify != nil {
		return s.notify.MarkByChat(ctx, uid, chatID)
	}
	return nil
}

// Delete hides the chat for uid only; the other participant keeps it.
func (s *chatService) Delete(ctx context.Context, chatID, uid string) error {
	if _, err := s.Get(ctx, chatID, uid); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, chatID, uid)
}
