package branch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

type fakeRepo struct {
	mu       sync.Mutex
	branches map[uuid.UUID]*Branch
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{branches: make(map[uuid.UUID]*Branch)}
}

func (f *fakeRepo) Create(_ context.Context, b *Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = uuid.New()
	b.Version = 1
	f.branches[b.ID] = b
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.branches[id]
	if !ok {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindBranch, ID: id}
	}
	return b, nil
}

func (f *fakeRepo) List(_ context.Context, limit, offset int) ([]*Branch, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Branch
	for _, b := range f.branches {
		out = append(out, b)
	}
	return out, len(f.branches), nil
}

func (f *fakeRepo) Load(_ context.Context, id uuid.UUID) (*lifecycle.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.branches[id]
	if !ok {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindBranch, ID: id}
	}
	return b.Lifecycle(), nil
}

func (f *fakeRepo) Save(_ context.Context, e *lifecycle.Entity, expectedVersion int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.branches[e.ID]
	if !ok {
		return &lifecycle.NotFoundError{Kind: lifecycle.KindBranch, ID: e.ID}
	}
	if b.Version != expectedVersion {
		return &lifecycle.ConflictError{Reason: lifecycle.ReasonStaleVersion}
	}
	b.Status = string(e.State)
	b.Version++
	e.Version = b.Version
	return nil
}

func (f *fakeRepo) Destroy(_ context.Context, id uuid.UUID, expectedVersion int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.branches[id]
	if !ok {
		return &lifecycle.NotFoundError{Kind: lifecycle.KindBranch, ID: id}
	}
	if b.Version != expectedVersion {
		return &lifecycle.ConflictError{Reason: lifecycle.ReasonStaleVersion}
	}
	delete(f.branches, id)
	return nil
}

func TestCreateDefaultsToActive(t *testing.T) {
	svc := NewService(newFakeRepo())

	b := &Branch{Name: "Westside Clinic", HospitalID: 7}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != string(lifecycle.StateActive) {
		t.Errorf("expected status active, got %s", b.Status)
	}
	if b.Version != 1 {
		t.Errorf("expected version 1, got %d", b.Version)
	}
}

func TestCreateRequiresNameAndHospital(t *testing.T) {
	svc := NewService(newFakeRepo())

	if err := svc.Create(context.Background(), &Branch{HospitalID: 7}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.Create(context.Background(), &Branch{Name: "Eastside"}); err == nil {
		t.Error("expected error for missing hospital_id")
	}
}

func TestGetMissingBranch(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found")
	}
	var nf *lifecycle.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}
