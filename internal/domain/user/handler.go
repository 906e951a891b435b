package user

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
	svc    *Service
	engine *lifecycle.Engine
}

func NewHandler(svc *Service, engine *lifecycle.Engine) *Handler {
	return &Handler{svc: svc, engine: engine}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	// The staff directory is admin territory.
	admin := g.Group("", auth.RequireRole(lifecycle.RoleGlobalAdmin, lifecycle.RoleHospitalAdmin))
	admin.GET("/users", h.List)
	admin.GET("/users/:id", h.Get)
	admin.POST("/users", h.Create)

	// Lifecycle routes carry no role middleware; the engine decides.
	g.PUT("/users/deactivate-user/:id", h.Deactivate)
	g.PUT("/users/reactivate-user/:id", h.Reactivate)
	g.DELETE("/users/delete-user-permanently/:id", h.HardDelete)
}

func (h *Handler) Create(c echo.Context) error {
	var u AppUser
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	// Scoped admins create accounts in their own hospital only.
	if actor.ScopeHospitalID != nil {
		u.HospitalID = *actor.ScopeHospitalID
	}
	if err := h.svc.Create(c.Request().Context(), &u); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusCreated, u)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	u, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, u)
}

func (h *Handler) List(c echo.Context) error {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	p := pagination.FromContext(c)
	users, total, err := h.svc.List(c.Request().Context(), actor, p.Limit, p.Offset)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, pagination.NewResponse(users, total, p.Limit, p.Offset))
}

func (h *Handler) Deactivate(c echo.Context) error {
	return h.transition(c, lifecycle.TransitionDeactivate)
}

func (h *Handler) Reactivate(c echo.Context) error {
	return h.transition(c, lifecycle.TransitionReactivate)
}

func (h *Handler) HardDelete(c echo.Context) error {
	return h.transition(c, lifecycle.TransitionHardDelete)
}

func (h *Handler) transition(c echo.Context, tr lifecycle.Transition) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body api.TransitionBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	res, err := h.engine.Execute(c.Request().Context(), actor, lifecycle.Request{
		Kind:             lifecycle.KindUser,
		EntityID:         id,
		Transition:       tr,
		ConfirmationText: body.ConfirmationText,
		Reason:           body.Reason,
		ExpectedVersion:  body.ExpectedVersion,
	})
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, res)
}
