package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/reqctx"
	"github.com/shinyyama/auction-backend/internal/service"
	"google.golang.org/api/option"
)

type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ProfileEnsurer creates the caller's profile on first sight.
type ProfileEnsurer interface {
	Ensure(ctx context.Context, id service.Identity) (*model.UserProfile, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	profiles ProfileEnsurer
	seen     sync.Map
}

func NewAuthMiddleware(ctx context.Context, projectID, credentialsFile string) (*AuthMiddleware, error) {
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is not set")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return NewAuthMiddlewareWithVerifier(client), nil
}

func NewAuthMiddlewareWithVerifier(v TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: v}
}

// WithProfiles enables profile bootstrap for verified callers.
func (m *AuthMiddleware) WithProfiles(p ProfileEnsurer) *AuthMiddleware {
	m.profiles = p
	return m
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr, ok := bearer(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		token, err := m.verifier.VerifyIDToken(c.Request().Context(), tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		m.identify(c, token)
		return next(c)
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// lets anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if tokenStr, ok := bearer(c); ok {
			if token, err := m.verifier.VerifyIDToken(c.Request().Context(), tokenStr); err == nil {
				m.identify(c, token)
			}
		}
		return next(c)
	}
}

func bearer(c echo.Context) (string, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return tokenStr, tokenStr != ""
}

func (m *AuthMiddleware) identify(c echo.Context, token *auth.Token) {
	id := service.Identity{
		UID:      token.UID,
		Name:     claim(token, "name"),
		Email:    claim(token, "email"),
		PhotoURL: claim(token, "picture"),
	}
	c.Set("uid", id.UID)
	c.Set("name", id.Name)
	c.Set("email", id.Email)
	c.Set("picture", id.PhotoURL)

	if m.profiles == nil {
		return
	}
	if _, done := m.seen.Load(id.UID); done {
		return
	}
	ctx := c.Request().Context()
	if _, err := m.profiles.Ensure(ctx, id); err != nil {
		reqctx.Log(ctx).WithError(err).WithField("uid", id.UID).Warn("profile bootstrap failed")
		return
	}
	m.seen.Store(id.UID, struct{}{})
}

func claim(token *auth.Token, key string) string {
	v, _ := token.Claims[key].(string)
	return v
}

// RequestContext puts the request id assigned by echo's RequestID
// middleware on the request context for service logs.
func RequestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if rid == "" {
			rid = c.Request().Header.Get(echo.HeaderXRequestID)
		}
		if rid != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(reqctx.WithRID(req.Context(), rid)))
		}
		return next(c)
	}
}
