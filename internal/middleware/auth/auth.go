package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/pkg/tokens"
)

const (
	ContextUserID    = "userID"
	ContextSuperuser = "superuser"
)

type TokenService struct {
	JWTSecret []byte
}

func (t *TokenService) claimsFromRequest(c echo.Context) (*tokens.AccessClaims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	claims, err := tokens.AccessClaimsFromToken(raw, t.JWTSecret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// RequireAuth admits any valid access token and stores the caller's identity
// on the context.
func (t *TokenService) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.claimsFromRequest(c)
		if err != nil {
			return err
		}
		id, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		c.Set(ContextUserID, id)
		c.Set(ContextSuperuser, claims.Superuser)
		return next(c)
	}
}

// RequireUser admits regular accounts only; superusers use the admin panel.
func (t *TokenService) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return t.RequireAuth(func(c echo.Context) error {
		if c.Get(ContextSuperuser).(bool) {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	})
}

func (t *TokenService) RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return t.RequireAuth(func(c echo.Context) error {
		if !c.Get(ContextSuperuser).(bool) {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	})
}

// RequireGuest blocks already-authenticated callers from the login and
// registration endpoints.
func (t *TokenService) RequireGuest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if found && raw != "" {
			if _, err := tokens.AccessClaimsFromToken(raw, t.JWTSecret); err == nil {
				return echo.NewHTTPError(http.StatusForbidden, "already authenticated")
			}
		}
		return next(c)
	}
}

// UserID reads the authenticated caller id set by RequireAuth.
func UserID(c echo.Context) uint {
	id, _ := c.Get(ContextUserID).(uint)
	return id
}

func IsSuperuser(c echo.Context) bool {
	su, _ := c.Get(ContextSuperuser).(bool)
	return su
}
