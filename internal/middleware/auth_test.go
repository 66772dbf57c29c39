package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/reqctx"
	"github.com/shinyyama/auction-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]*auth.Token

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := f[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("bad token")
}

type countingProfiles struct {
	calls atomic.Int32
	last  service.Identity
}

func (p *countingProfiles) Ensure(_ context.Context, id service.Identity) (*model.UserProfile, error) {
	p.calls.Add(1)
	p.last = id
	return &model.UserProfile{UID: id.UID}, nil
}

func newTestAuth() (*AuthMiddleware, *countingProfiles) {
	profiles := &countingProfiles{}
	m := NewAuthMiddlewareWithVerifier(fakeVerifier{
		"good": {UID: "alice", Claims: map[string]interface{}{"name": "Alice", "email": "alice@example.com", "picture": "https://p/a"}},
	}).WithProfiles(profiles)
	return m, profiles
}

func whoami(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	name, _ := c.Get("name").(string)
	return c.String(http.StatusOK, uid+"|"+name)
}

func call(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	m, profiles := newTestAuth()
	e := echo.New()
	e.GET("/", whoami, m.RequireAuth)

	assert.Equal(t, http.StatusUnauthorized, call(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(e, "forged").Code)

	rec := call(e, "good")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice|Alice", rec.Body.String())

	call(e, "good")
	assert.Equal(t, int32(1), profiles.calls.Load(), "profile is bootstrapped once per uid")
	assert.Equal(t, "alice@example.com", profiles.last.Email)
	assert.Equal(t, "https://p/a", profiles.last.PhotoURL)
}

func TestOptionalAuth(t *testing.T) {
	m, _ := newTestAuth()
	e := echo.New()
	e.GET("/", whoami, m.OptionalAuth)

	assert.Equal(t, "|", call(e, "").Body.String())
	assert.Equal(t, "|", call(e, "forged").Body.String())
	assert.Equal(t, "alice|Alice", call(e, "good").Body.String())
}

func TestRequestContext(t *testing.T) {
	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(RequestContext)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, reqctx.RID(c.Request().Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "rid-123", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), rec.Body.String())
}
