package branch

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
	read := g.Group("", auth.RequireStaff())
	read.GET("/branches", h.List)
	read.GET("/branches/:id", h.Get)

	write := g.Group("", auth.RequireRole(lifecycle.RoleGlobalAdmin))
	write.POST("/branches", h.Create)

	// Lifecycle routes carry no role middleware: the engine's capability
	// table is the single authority and returns 403 itself.
	g.PUT("/branches/deactivate/:id", h.Deactivate)
	g.PUT("/branches/reactivate/:id", h.Reactivate)
	g.DELETE("/branches/delete/:id", h.HardDelete)
}

func (h *Handler) Create(c echo.Context) error {
	var b Branch
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &b); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, b)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	branches, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, pagination.NewResponse(branches, total, p.Limit, p.Offset))
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
		Kind:             lifecycle.KindBranch,
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
