package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/lifecycle"
)

var testKey = []byte("test-signing-key")

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, lifecycle.Actor, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var actor lifecycle.Actor
	var found bool
	handler := mw(func(c echo.Context) error {
		actor, found = ActorFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, actor, found
}

func TestJWTMiddlewareSetsActor(t *testing.T) {
	hospital := int64(3)
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		RoleID:     2,
		HospitalID: &hospital,
	})

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	rec, actor, found := run(t, mw, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !found {
		t.Fatal("actor not set on context")
	}
	if actor.ID != "user-42" || actor.Role != lifecycle.RoleHospitalAdmin {
		t.Errorf("actor mismatch: %+v", actor)
	}
	if actor.ScopeHospitalID == nil || *actor.ScopeHospitalID != 3 {
		t.Errorf("scope not carried: %+v", actor.ScopeHospitalID)
	}
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	rec, _, _ := run(t, mw, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestJWTMiddlewareRejectsBadSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RoleID: 1})
	signed, _ := token.SignedString([]byte("some-other-key"))

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	rec, _, _ := run(t, mw, "Bearer "+signed)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestDevAuthMiddlewareGrantsGlobalAdmin(t *testing.T) {
	rec, actor, found := run(t, DevAuthMiddleware(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !found || actor.Role != lifecycle.RoleGlobalAdmin {
		t.Errorf("expected dev global admin actor, got %+v", actor)
	}
	if actor.ScopeHospitalID != nil {
		t.Error("dev actor should be unscoped")
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := RequireRole(lifecycle.RoleGlobalAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(req.WithContext(WithActor(req.Context(), lifecycle.Actor{ID: "n1", Role: lifecycle.RoleNurse})))
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("nurse should be denied, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetRequest(req.WithContext(WithActor(req.Context(), lifecycle.Actor{ID: "a1", Role: lifecycle.RoleGlobalAdmin})))
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("global admin should pass, got %d", rec.Code)
	}
}
