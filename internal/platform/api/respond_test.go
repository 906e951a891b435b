package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/lifecycle"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &lifecycle.NotFoundError{}, http.StatusNotFound},
		{"authorization", &lifecycle.AuthorizationError{Reason: lifecycle.ReasonInsufficientRole}, http.StatusForbidden},
		{"validation", &lifecycle.ValidationError{Reason: lifecycle.ReasonConfirmationMismatch}, http.StatusBadRequest},
		{"conflict", &lifecycle.ConflictError{Reason: lifecycle.ReasonStaleVersion}, http.StatusConflict},
		{"persistence", &lifecycle.PersistenceError{Op: "save", Err: errors.New("connection reset")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestErrorEnvelopeIsGenericForAuthorization(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Error(c, &lifecycle.AuthorizationError{Reason: lifecycle.ReasonInsufficientScope}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "scope") || strings.Contains(body, "role") {
		t.Errorf("denial message must not reveal the blocking cause: %s", body)
	}
	if !strings.Contains(body, `"status":"error"`) {
		t.Errorf("expected error envelope, got %s", body)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Success(c, http.StatusOK, map[string]string{"state": "inactive"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"status":"success"`) {
		t.Errorf("expected success envelope, got %s", rec.Body.String())
	}
}
