package audit

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/lifecycle"
	"github.com/hms/hms/internal/platform/api"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	// The trail crosses hospital boundaries, so only global admins read it.
	g.GET("/audit-records", h.List, auth.RequireRole(lifecycle.RoleGlobalAdmin))
}

func (h *Handler) List(c echo.Context) error {
	f := Filter{
		EntityKind: c.QueryParam("entity_kind"),
		ActorID:    c.QueryParam("actor_id"),
		Transition: c.QueryParam("transition"),
	}
	if raw := c.QueryParam("entity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid entity_id")
		}
		f.EntityID = &id
	}

	p := pagination.FromContext(c)
	entries, total, err := h.svc.Query(c.Request().Context(), f, p.Limit, p.Offset)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, pagination.NewResponse(entries, total, p.Limit, p.Offset))
}
