package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/service"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatResponse struct {
	ID                    string  `json:"id"`
	SellerUID             string  `json:"sellerUid"`
	BuyerUID              string  `json:"buyerUid"`
	SellerName            string  `json:"sellerName"`
	BuyerName             string  `json:"buyerName"`
	LastAuctionID         string  `json:"lastAuctionId,omitempty"`
	LastAuctionTitle      string  `json:"lastAuctionTitle,omitempty"`
	LastAuctionImageURL   string  `json:"lastAuctionImageUrl,omitempty"`
	LastAuctionFinalPrice int64   `json:"lastAuctionFinalPrice"`
	LastMessage           string  `json:"lastMessage"`
	LastMessageAt         string  `json:"lastMessageAt"`
	LastMessageSenderUID  *string `json:"lastMessageSenderUid"`
	HasUnread             bool    `json:"hasUnread,omitempty"`
}

type MessageResponse struct {
	ID           string  `json:"id"`
	SenderUID    *string `json:"senderUid"`
	Text         string  `json:"text"`
	System       bool    `json:"system"`
	Event        string  `json:"event,omitempty"`
	AuctionID    string  `json:"auctionId,omitempty"`
	AuctionTitle string  `json:"auctionTitle,omitempty"`
	FinalPrice   int64   `json:"finalPrice,omitempty"`
	Quantity     *int    `json:"quantity,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

type MessageRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

func (h *ChatHandler) List(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	chats, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return writeError(c, err, "chats")
	}
	resp := make([]ChatResponse, 0, len(chats))
	for _, sum := range chats {
		r := toChatResponse(&sum.Chat)
		r.HasUnread = sum.Unread
		resp = append(resp, r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Get(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	chat, err := h.svc.Get(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return chatError(c, err)
	}
	return c.JSON(http.StatusOK, toChatResponse(chat))
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	msgs, err := h.svc.ListMessages(c.Request().Context(), c.Param("id"), uid, limit)
	if err != nil {
		return chatError(c, err)
	}
	resp := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, toMessageResponse(m))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.PostMessage(c.Request().Context(), c.Param("id"), uid, req.Text, req.ImageURL)
	if err != nil {
		return chatError(c, err)
	}
	return c.JSON(http.StatusCreated, toMessageResponse(*msg))
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	if err := h.svc.MarkRead(c.Request().Context(), c.Param("id"), uid); err != nil {
		return chatError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ChatHandler) Delete(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return chatError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// chatError hides chats from non-participants.
func chatError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrForbidden) {
		err = service.ErrNotFound
	}
	return writeError(c, err, "chat")
}

func toChatResponse(ch *model.Chat) ChatResponse {
	return ChatResponse{
		ID:                    ch.ID,
		SellerUID:             ch.SellerUID,
		BuyerUID:              ch.BuyerUID,
		SellerName:            ch.SellerName,
		BuyerName:             ch.BuyerName,
		LastAuctionID:         ch.LastAuctionID,
		LastAuctionTitle:      ch.LastAuctionTitle,
		LastAuctionImageURL:   ch.LastAuctionImageURL,
		LastAuctionFinalPrice: ch.LastAuctionFinalPrice,
		LastMessage:           ch.LastMessage,
		LastMessageAt:         ch.LastMessageAt.Format(time.RFC3339),
		LastMessageSenderUID:  ch.LastMessageSenderUID,
	}
}

func toMessageResponse(m model.Message) MessageResponse {
	return MessageResponse{
		ID:           m.ID,
		SenderUID:    m.SenderUID,
		Text:         m.Text,
		System:       m.System,
		Event:        string(m.Event),
		AuctionID:    m.AuctionID,
		AuctionTitle: m.AuctionTitle,
		FinalPrice:   m.FinalPrice,
		Quantity:     m.Quantity,
		ImageURL:     m.ImageURL,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}
