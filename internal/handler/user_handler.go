package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/service"
)

type UserHandler struct {
	profiles service.ProfileService
}

func NewUserHandler(profiles service.ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

type PublicUserResponse struct {
	UID           string  `json:"uid"`
	DisplayName   string  `json:"displayName"`
	PhotoURL      *string `json:"photoURL"`
	IsAdmin       bool    `json:"isAdmin,omitempty"`
	Banned        bool    `json:"banned"`
	BannedAt      *string `json:"bannedAt,omitempty"`
	LikesCount    int64   `json:"likesCount"`
	LikedByViewer bool    `json:"likedByViewer"`
}

type BanRequest struct {
	Banned bool   `json:"banned"`
	Reason string `json:"reason"`
}

func (h *UserHandler) GetPublic(c echo.Context) error {
	uid := c.Param("uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid uid"))
	}
	view, err := h.profiles.Get(c.Request().Context(), uid, currentUID(c))
	if err != nil {
		return writeError(c, err, "user")
	}
	resp := toPublicUser(&view.Profile)
	resp.LikedByViewer = view.LikedByViewer
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Me(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	view, err := h.profiles.Get(c.Request().Context(), uid, uid)
	if err != nil {
		return writeError(c, err, "user")
	}
	return c.JSON(http.StatusOK, toPublicUser(&view.Profile))
}

func (h *UserHandler) ToggleLike(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	res, err := h.profiles.ToggleLike(c.Request().Context(), c.Param("uid"), uid)
	if err != nil {
		return writeError(c, err, "user")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"liked":      res.Liked,
		"likesCount": res.LikesCount,
	})
}

func (h *UserHandler) SetBanned(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	req := BanRequest{Banned: true}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.profiles.SetBanned(c.Request().Context(), uid, c.Param("uid"), req.Banned, req.Reason); err != nil {
		return writeError(c, err, "user")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"uid": c.Param("uid"), "banned": req.Banned})
}

func (h *UserHandler) Search(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	list, err := h.profiles.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return writeError(c, err, "users")
	}
	resp := make([]PublicUserResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toPublicUser(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func toPublicUser(p *model.UserProfile) PublicUserResponse {
	photo := p.AvatarURL
	if photo == "" {
		photo = p.PhotoURL
	}
	resp := PublicUserResponse{
		UID:         p.UID,
		DisplayName: p.DisplayName,
		PhotoURL:    strPtrOrNil(photo),
		IsAdmin:     p.IsAdmin,
		Banned:      p.Banned,
		LikesCount:  p.LikesCount,
	}
	if p.BannedAt != nil {
		s := p.BannedAt.Format(time.RFC3339)
		resp.BannedAt = &s
	}
	return resp
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
