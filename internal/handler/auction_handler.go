package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/auction"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/service"
)

type AuctionHandler struct {
	svc service.AuctionService
}

func NewAuctionHandler(svc service.AuctionService) *AuctionHandler {
	return &AuctionHandler{svc: svc}
}

type AuctionResponse struct {
	ID           string         `json:"id"`
	Number       uint64         `json:"number"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	DeliveryZone string         `json:"deliveryZone"`
	BasePrice    int64          `json:"basePrice"`
	Increment    int64          `json:"increment"`
	BuyNowPrice  *int64         `json:"buyNowPrice,omitempty"`
	CurrentPrice int64          `json:"currentPrice"`
	MinimumBid   int64          `json:"minimumBid"`
	TotalCopies  int            `json:"totalCopies"`
	CopiesSold   int            `json:"copiesSold"`
	LeaderUID    string         `json:"leaderUid,omitempty"`
	LeaderName   string         `json:"leaderName,omitempty"`
	Status       string         `json:"status"`
	ClosedBy     string         `json:"closedBy,omitempty"`
	Winners      map[string]int `json:"winnerQuantities"`
	SellerUID    string         `json:"sellerUid"`
	SellerName   string         `json:"sellerName"`
	ImageURLs    []string       `json:"imageUrls"`
	StartAt      *string        `json:"startAt,omitempty"`
	ExpiresAt    string         `json:"expiresAt"`
	ClosedAt     *string        `json:"closedAt,omitempty"`
	CreatedAt    string         `json:"createdAt"`
}

type AuctionListResponse struct {
	Auctions []AuctionResponse `json:"auctions"`
	Total    int64             `json:"total"`
}

type BidResponse struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	CreatedAt string `json:"createdAt"`
}

type CreateAuctionRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	DeliveryZone       string     `json:"deliveryZone"`
	BasePrice          int64      `json:"basePrice"`
	Increment          int64      `json:"increment"`
	BuyNowPrice        *int64     `json:"buyNowPrice"`
	TotalCopies        int        `json:"totalCopies"`
	ExpiresAt          time.Time  `json:"expiresAt"`
	StartAt            *time.Time `json:"startAt"`
	SellerContact      string     `json:"sellerContact"`
	WinMessageTemplate string     `json:"winMessageTemplate"`
	ImageURLs          []string   `json:"imageUrls"`
	ImagePaths         []string   `json:"imagePaths"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount"`
}

type BuyNowRequest struct {
	Quantity int `json:"quantity"`
}

func (h *AuctionHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	status := model.AuctionStatus(strings.ToLower(c.QueryParam("status")))
	switch status {
	case "", model.AuctionStatusScheduled, model.AuctionStatusActive, model.AuctionStatusClosed:
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid status"))
	}
	list, total, err := h.svc.List(c.Request().Context(), status, limit, offset)
	if err != nil {
		return writeError(c, err, "auctions")
	}
	return c.JSON(http.StatusOK, AuctionListResponse{Auctions: toAuctionResponses(list), Total: total})
}

func (h *AuctionHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req CreateAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	a, err := h.svc.Create(c.Request().Context(), auction.Participant{UID: uid, Name: currentName(c)}, auction.Draft{
		Title:              req.Title,
		Description:        req.Description,
		DeliveryZone:       req.DeliveryZone,
		BasePrice:          req.BasePrice,
		Increment:          req.Increment,
		BuyNowPrice:        req.BuyNowPrice,
		TotalCopies:        req.TotalCopies,
		ExpiresAt:          req.ExpiresAt,
		StartAt:            req.StartAt,
		SellerContact:      req.SellerContact,
		WinMessageTemplate: req.WinMessageTemplate,
		ImageURLs:          req.ImageURLs,
		ImagePaths:         req.ImagePaths,
	})
	if err != nil {
		return writeError(c, err, "auction")
	}
	return c.JSON(http.StatusCreated, toAuctionResponse(a))
}

// Get returns the auction after giving the viewer the chance to close it.
func (h *AuctionHandler) Get(c echo.Context) error {
	a, err := h.svc.Get(c.Request().Context(), c.Param("id"), currentUID(c))
	if err != nil {
		return writeError(c, err, "auction")
	}
	return c.JSON(http.StatusOK, toAuctionResponse(a))
}

func (h *AuctionHandler) Delete(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return writeError(c, err, "auction")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuctionHandler) PlaceBid(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	res, err := h.svc.PlaceBid(c.Request().Context(), c.Param("id"), auction.Participant{UID: uid, Name: currentName(c)}, req.Amount)
	if err != nil {
		return writeError(c, err, "auction")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"auction":  toAuctionResponse(res.Auction),
		"amount":   res.Amount,
		"extended": res.Extended,
		"closed":   res.Closed,
	})
}

func (h *AuctionHandler) BuyNow(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	req := BuyNowRequest{Quantity: 1}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	res, err := h.svc.BuyNow(c.Request().Context(), c.Param("id"), auction.Participant{UID: uid, Name: currentName(c)}, req.Quantity)
	if err != nil {
		return writeError(c, err, "auction")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"auction":  toAuctionResponse(res.Auction),
		"quantity": res.Quantity,
		"price":    res.Price,
		"eventId":  res.EventID,
		"closed":   res.Closed,
	})
}

func (h *AuctionHandler) ListBids(c echo.Context) error {
	bids, err := h.svc.ListBids(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err, "auction")
	}
	resp := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, BidResponse{
			ID:        b.ID,
			Amount:    b.Amount,
			UID:       b.BidderUID,
			Name:      b.BidderName,
			Type:      string(b.Type),
			Quantity:  b.Quantity,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuctionHandler) ListMine(c echo.Context) error {
	return h.listFor(c, h.svc.ListBySeller)
}

func (h *AuctionHandler) ListParticipations(c echo.Context) error {
	return h.listFor(c, h.svc.ListParticipations)
}

func (h *AuctionHandler) ListWon(c echo.Context) error {
	return h.listFor(c, h.svc.ListWon)
}

func (h *AuctionHandler) listFor(c echo.Context, fetch func(ctx context.Context, uid string) ([]model.Auction, error)) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	list, err := fetch(c.Request().Context(), uid)
	if err != nil {
		return writeError(c, err, "auctions")
	}
	return c.JSON(http.StatusOK, AuctionListResponse{Auctions: toAuctionResponses(list), Total: int64(len(list))})
}

func toAuctionResponses(list []model.Auction) []AuctionResponse {
	out := make([]AuctionResponse, 0, len(list))
	for i := range list {
		out = append(out, toAuctionResponse(&list[i]))
	}
	return out
}

func toAuctionResponse(a *model.Auction) AuctionResponse {
	resp := AuctionResponse{
		ID:           a.ID,
		Number:       a.Number,
		Title:        a.Title,
		Description:  a.Description,
		DeliveryZone: a.DeliveryZone,
		BasePrice:    a.BasePrice,
		Increment:    a.Increment,
		BuyNowPrice:  a.BuyNowPrice,
		CurrentPrice: a.Price(),
		MinimumBid:   auction.TermsOf(a).Minimum(),
		TotalCopies:  a.TotalCopies,
		CopiesSold:   a.CopiesSold,
		LeaderUID:    a.LeaderUID,
		LeaderName:   a.LeaderName,
		Status:       string(a.Status),
		ClosedBy:     string(a.ClosedBy),
		Winners:      a.Winners(),
		SellerUID:    a.SellerUID,
		SellerName:   a.SellerName,
		ImageURLs:    a.Images(),
		ExpiresAt:    a.ExpiresAt.Format(time.RFC3339),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
	if a.StartAt != nil {
		s := a.StartAt.Format(time.RFC3339)
		resp.StartAt = &s
	}
	if a.ClosedAt != nil {
		s := a.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &s
	}
	if resp.ImageURLs == nil {
		resp.ImageURLs = []string{}
	}
	return resp
}
