package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/auction-backend/internal/handler"
	"github.com/shinyyama/auction-backend/internal/live"
	appmw "github.com/shinyyama/auction-backend/internal/middleware"
	"github.com/shinyyama/auction-backend/internal/service"
)

type Deps struct {
	Auctions      service.AuctionService
	Chats         service.ChatService
	Profiles      service.ProfileService
	Notifications service.NotificationService
	Auth          *appmw.AuthMiddleware
	// Uploader is nil when no bucket is configured.
	Uploader     handler.Uploader
	Hub          *live.Hub
	OriginSuffix string
	SHA          string
	BuildTime    string
}

type Server struct {
	e *echo.Echo
}

func New(d Deps) *Server {
	allowOrigin := AllowOrigin(d.OriginSuffix)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(appmw.RequestContext)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			return allowOrigin(origin), nil
		},
	}))

	auctionHandler := handler.NewAuctionHandler(d.Auctions)
	chatHandler := handler.NewChatHandler(d.Chats)
	userHandler := handler.NewUserHandler(d.Profiles)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	uploadHandler := handler.NewUploadHandler(d.Uploader)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    d.SHA,
			"build_time": d.BuildTime,
		})
	})

	auth := d.Auth.RequireAuth
	optional := d.Auth.OptionalAuth

	api := e.Group("/api")
	api.GET("/auctions", auctionHandler.List)
	api.POST("/auctions", auctionHandler.Create, auth)
	api.GET("/auctions/:id", auctionHandler.Get, optional)
	api.DELETE("/auctions/:id", auctionHandler.Delete, auth)
	api.POST("/auctions/:id/bids", auctionHandler.PlaceBid, auth)
	api.GET("/auctions/:id/bids", auctionHandler.ListBids, auth)
	api.POST("/auctions/:id/buy-now", auctionHandler.BuyNow, auth)

	api.GET("/me", userHandler.Me, auth)
	api.GET("/me/auctions", auctionHandler.ListMine, auth)
	api.GET("/me/participations", auctionHandler.ListParticipations, auth)
	api.GET("/me/won", auctionHandler.ListWon, auth)

	api.GET("/chats", chatHandler.List, auth)
	api.GET("/chats/:id", chatHandler.Get, auth)
	api.DELETE("/chats/:id", chatHandler.Delete, auth)
	api.GET("/chats/:id/messages", chatHandler.ListMessages, auth)
	api.POST("/chats/:id/messages", chatHandler.PostMessage, auth)
	api.POST("/chats/:id/read", chatHandler.MarkRead, auth)

	api.GET("/users", userHandler.Search)
	api.GET("/users/:uid", userHandler.GetPublic, optional)
	api.POST("/users/:uid/like", userHandler.ToggleLike, auth)
	api.POST("/users/:uid/ban", userHandler.SetBanned, auth)

	api.GET("/notifications", notificationHandler.List, auth)
	api.POST("/notifications/read", notificationHandler.MarkRead, auth)

	api.POST("/uploads/images", uploadHandler.UploadImage, auth)

	if d.Hub != nil {
		e.GET("/ws/auctions/:id", live.NewHandler(d.Hub, allowOrigin).Serve)
	}

	return &Server{e: e}
}

// AllowOrigin accepts localhost origins and hosts ending in suffix.
func AllowOrigin(suffix string) func(origin string) bool {
	return func(origin string) bool {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false
		}
		return suffix != "" && strings.HasSuffix(u.Hostname(), suffix)
	}
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
