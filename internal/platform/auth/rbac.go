package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/lifecycle"
)

// RequireRole gates a route group to the listed roles. Lifecycle transition
// routes are NOT gated here: the engine's capability table is the single
// authority for those, so middleware and engine cannot drift apart.
func RequireRole(roles ...lifecycle.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			for _, r := range roles {
				if actor.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "not permitted")
		}
	}
}

// RequireStaff admits any recognized staff role (read access).
func RequireStaff() echo.MiddlewareFunc {
	return RequireRole(
		lifecycle.RoleGlobalAdmin,
		lifecycle.RoleHospitalAdmin,
		lifecycle.RoleDoctor,
		lifecycle.RoleNurse,
		lifecycle.RoleReceptionist,
	)
}
