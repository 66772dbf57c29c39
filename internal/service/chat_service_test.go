package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/shinyyama/auction-backend/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settledChat(t *testing.T, h *harness, buyer string) string {
	t.Helper()
	a := h.auction(t, withBuyNow(20))
	_, err := h.svc.BuyNow(context.Background(), a.ID, person(buyer), 1)
	require.NoError(t, err)
	chatID, err := settlement.ChatID("seller", buyer)
	require.NoError(t, err)
	return chatID
}

func TestChatService_Participants(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	chatID := settledChat(t, h, "alice")
	chats := NewChatService(h.chats, h.svc.Profiles, nil)

	_, err := chats.Get(ctx, chatID, "mallory")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = chats.ListMessages(ctx, chatID, "mallory", 10)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = chats.PostMessage(ctx, chatID, "mallory", "hola", "")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = chats.Get(ctx, "nobody_seller", "seller")
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := chats.Get(ctx, chatID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "seller", c.SellerUID)
	assert.Equal(t, "alice", c.BuyerUID)
}

func TestChatService_PostAndRead(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	chatID := settledChat(t, h, "alice")
	svc := NewChatService(h.chats, h.svc.Profiles, NewNotificationService(repository.NewNotificationRepository(h.db))).(*chatService)
	svc.now = func() time.Time { return time.Now().Add(time.Minute) }

	_, err := svc.PostMessage(ctx, chatID, "alice", "   ", "")
	assert.ErrorIs(t, err, ErrInvalidMessage)

	msg, err := svc.PostMessage(ctx, chatID, "alice", " ¿Cuándo entregas? ", "")
	require.NoError(t, err)
	assert.Equal(t, "¿Cuándo entregas?", msg.Text)
	require.NotNil(t, msg.SenderUID)

	_, err = svc.PostMessage(ctx, chatID, "seller", "", "https://img/chat.jpg")
	require.NoError(t, err)

	msgs, err := svc.ListMessages(ctx, chatID, "seller", 50)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.True(t, msgs[0].System)
	assert.Equal(t, "https://img/chat.jpg", msgs[2].ImageURL)

	mine, err := svc.ListMine(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Unread)
	assert.Equal(t, "📷 Imagen", mine[0].Chat.LastMessage)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	require.NoError(t, svc.MarkRead(ctx, chatID, "alice"))
	mine, err = svc.ListMine(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].Unread)
}

func TestChatService_ListMineUsesCurrentNames(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.profile(t, "alice", nil)
	chatID := settledChat(t, h, "alice")
	chats := NewChatService(h.chats, h.svc.Profiles, nil)

	h.profile(t, "seller", func(p map[string]interface{}) { p["display_name"] = "Tienda Rosa" })
	h.profile(t, "alice", func(p map[string]interface{}) { p["display_name"] = "" })

	mine, err := chats.ListMine(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, chatID, mine[0].Chat.ID)
	assert.Equal(t, "Tienda Rosa", mine[0].Chat.SellerName)

	var stored model.Chat
	require.NoError(t, h.db.Where("id = ?", chatID).First(&stored).Error)
	assert.Equal(t, stored.BuyerName, mine[0].Chat.BuyerName, "empty profile name keeps the stored one")
}

func TestChatService_ListMineKeepsNamesWhenLookupFails(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	chatID := settledChat(t, h, "alice")
	var stored model.Chat
	require.NoError(t, h.db.Where("id = ?", chatID).First(&stored).Error)

	ctrl := gomock.NewController(t)
	profiles := NewMockProfileService(ctrl)
	profiles.EXPECT().
		DisplayNames(gomock.Any(), []string{"seller", "alice"}).
		Return(nil, repository.ErrDBNotReady)
	chats := NewChatService(h.chats, profiles, nil)

	mine, err := chats.ListMine(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, stored.SellerName, mine[0].Chat.SellerName)
	assert.Equal(t, stored.BuyerName, mine[0].Chat.BuyerName)
}

func TestChatService_DeleteHidesForCallerOnly(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	chatID := settledChat(t, h, "alice")
	svc := NewChatService(h.chats, h.svc.Profiles, nil)

	require.NoError(t, svc.Delete(ctx, chatID, "alice"))
	mine, err := svc.ListMine(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := svc.ListMine(ctx, "seller")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	_, err = svc.PostMessage(ctx, chatID, "seller", "sigues ahí?", "")
	require.NoError(t, err)
	mine, err = svc.ListMine(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 1, "a new message restores the chat")
}

func TestChatService_BannedCannotPost(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	chatID := settledChat(t, h, "alice")
	h.profile(t, "alice", func(p map[string]interface{}) { p["banned"] = true })
	svc := NewChatService(h.chats, h.svc.Profiles, nil)

	_, err := svc.PostMessage(ctx, chatID, "alice", "hola", "")
	assert.ErrorIs(t, err, ErrBanned)
}
