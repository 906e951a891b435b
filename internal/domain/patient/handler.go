package patient

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
	read.GET("/patients", h.List)
	read.GET("/patients/:id", h.Get)

	// Registration is front-desk work; admins can do it too.
	write := g.Group("", auth.RequireRole(
		lifecycle.RoleGlobalAdmin,
		lifecycle.RoleHospitalAdmin,
		lifecycle.RoleReceptionist,
	))
	write.POST("/patients", h.Register)

	// Lifecycle routes carry no role middleware; the engine decides.
	// "delete-patient" is the soft removal, it deactivates.
	g.DELETE("/patients/delete-patient/:id", h.Deactivate)
	g.PUT("/patients/reactivate-patient/:id", h.Reactivate)
	g.DELETE("/patients/hard-delete-patient/:id", h.HardDelete)
}

func (h *Handler) Register(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	// Scoped actors register into their own hospital regardless of payload.
	if actor.ScopeHospitalID != nil {
		p.HospitalID = *actor.ScopeHospitalID
	}
	if err := h.svc.Register(c.Request().Context(), &p); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusCreated, p)
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
	p, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	p := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), actor, p.Limit, p.Offset)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, http.StatusOK, pagination.NewResponse(patients, total, p.Limit, p.Offset))
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
		Kind:             lifecycle.KindPatient,
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
