package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/service"
	"github.com/stretchr/testify/require"
)

type stubChats struct {
	service.ChatService
	chat *model.Chat
}

func (s stubChats) Get(_ context.Context, _, uid string) (*model.Chat, error) {
	if !s.chat.HasParticipant(uid) {
		return nil, service.ErrForbidden
	}
	return s.chat, nil
}

func TestChatHandler_NonParticipantSeesNotFound(t *testing.T) {
	h := NewChatHandler(stubChats{chat: &model.Chat{ID: "alice_seller", SellerUID: "seller", BuyerUID: "alice"}})

	for uid, want := range map[string]int{
		"alice":   http.StatusOK,
		"mallory": http.StatusNotFound,
	} {
		e := echo.New()
		e.GET("/api/chats/:id", h.Get, withUser(uid, uid))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chats/alice_seller", nil))
		require.Equal(t, want, rec.Code, uid)
	}
}
