package branch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/lifecycle"
	"github.com/hms/hms/internal/platform/auth"
)

type memRecorder struct{ recs []*lifecycle.AuditRecord }

func (n *memRecorder) Record(_ context.Context, rec *lifecycle.AuditRecord) error {
	n.recs = append(n.recs, rec)
	return nil
}

func setupHandler(t *testing.T) (*echo.Echo, *fakeRepo, *memRecorder) {
	t.Helper()
	repo := newFakeRepo()
	rec := &memRecorder{}
	engine := lifecycle.NewEngine(
		map[lifecycle.EntityKind]lifecycle.EntityStore{lifecycle.KindBranch: repo},
		rec, zerolog.Nop(),
	)
	h := NewHandler(NewService(repo), engine)

	e := echo.New()
	g := e.Group("/api/v1", auth.DevAuthMiddleware())
	h.RegisterRoutes(g)
	return e, repo, rec
}

func seedBranch(repo *fakeRepo, name string, hospitalID int64, status string) uuid.UUID {
	id := uuid.New()
	repo.branches[id] = &Branch{
		ID: id, HospitalID: hospitalID, Name: name,
		Status: status, Version: 1,
	}
	return id
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDeactivateBranchRoute(t *testing.T) {
	e, repo, auditor := setupHandler(t)
	id := seedBranch(repo, "Westside Clinic", 7, string(lifecycle.StateActive))

	rec := doJSON(e, http.MethodPut, "/api/v1/branches/deactivate/"+id.String(),
		`{"reason":"seasonal closure","confirmation_text":"westside clinic"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Status string           `json:"status"`
		Data   lifecycle.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if env.Data.State != lifecycle.StateInactive || env.Data.Version != 2 {
		t.Errorf("unexpected result: %+v", env.Data)
	}
	if len(auditor.recs) != 1 {
		t.Errorf("expected one audit record, got %d", len(auditor.recs))
	}
}

func TestDeactivateBranchConfirmationMismatch(t *testing.T) {
	e, repo, auditor := setupHandler(t)
	id := seedBranch(repo, "Westside Clinic", 7, string(lifecycle.StateActive))

	rec := doJSON(e, http.MethodPut, "/api/v1/branches/deactivate/"+id.String(),
		`{"reason":"typo","confirmation_text":"westside"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if repo.branches[id].Status != string(lifecycle.StateActive) {
		t.Error("branch state should be untouched after mismatch")
	}
	if len(auditor.recs) != 0 {
		t.Error("failed attempt must not be audited")
	}
}

func TestHardDeleteBranchRoute(t *testing.T) {
	e, repo, _ := setupHandler(t)
	id := seedBranch(repo, "Eastside Annex", 7, string(lifecycle.StateInactive))

	rec := doJSON(e, http.MethodDelete, "/api/v1/branches/delete/"+id.String(),
		`{"reason":"decommissioned","confirmation_text":"DELETE"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := repo.branches[id]; ok {
		t.Error("branch should be gone after hard delete")
	}

	rec = doJSON(e, http.MethodPut, "/api/v1/branches/reactivate/"+id.String(),
		`{"confirmation_text":"eastside annex"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("destroyed branch should 404, got %d", rec.Code)
	}
}

func TestTransitionRouteInvalidID(t *testing.T) {
	e, _, _ := setupHandler(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/branches/deactivate/not-a-uuid", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", rec.Code)
	}
}
