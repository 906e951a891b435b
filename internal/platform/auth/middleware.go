// Package auth maps bearer tokens onto lifecycle actors and gates routes by
// role. The engine never reads the request context itself; handlers extract
// the Actor here and pass it in explicitly.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/lifecycle"
)

type contextKey string

const actorKey contextKey = "actor"

// Claims is the token payload the server understands. role_id and hospital_id
// mirror the staff directory; a missing hospital_id means an unscoped actor.
type Claims struct {
	jwt.RegisteredClaims
	RoleID     int    `json:"role_id"`
	HospitalID *int64 `json:"hospital_id,omitempty"`
}

type JWTConfig struct {
	Issuer     string
	Audience   string
	SigningKey []byte
}

// JWTMiddleware validates HS256 bearer tokens and stores the resulting Actor
// on the request context.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims := &Claims{}
			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"HS256"}),
			}
			if cfg.Issuer != "" {
				opts = append(opts, jwt.WithIssuer(cfg.Issuer))
			}
			if cfg.Audience != "" {
				opts = append(opts, jwt.WithAudience(cfg.Audience))
			}

			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return cfg.SigningKey, nil
			}, opts...)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			actor := lifecycle.Actor{
				ID:              claims.Subject,
				Role:            lifecycle.Role(claims.RoleID),
				ScopeHospitalID: claims.HospitalID,
			}
			c.SetRequest(c.Request().WithContext(WithActor(c.Request().Context(), actor)))
			return next(c)
		}
	}
}

// DevAuthMiddleware grants every unauthenticated request a global admin
// actor. Development mode only; config refuses it in production.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := ActorFromContext(c.Request().Context()); !ok {
				actor := lifecycle.Actor{ID: "dev-admin", Role: lifecycle.RoleGlobalAdmin}
				c.SetRequest(c.Request().WithContext(WithActor(c.Request().Context(), actor)))
			}
			return next(c)
		}
	}
}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor lifecycle.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the authenticated actor from the context.
func ActorFromContext(ctx context.Context) (lifecycle.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(lifecycle.Actor)
	return actor, ok
}
