package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, u *AppUser) error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return &lifecycle.ValidationError{Field: "a valid email is required"}
	}
	if u.FullName == "" {
		return &lifecycle.ValidationError{Field: "full_name is required"}
	}
	if u.HospitalID == 0 {
		return &lifecycle.ValidationError{Field: "hospital_id is required"}
	}
	if !lifecycle.Role(u.RoleID).Valid() {
		return &lifecycle.ValidationError{Field: "role_id must be between 1 and 5"}
	}
	u.Status = string(lifecycle.StateActive)
	return s.repo.Create(ctx, u)
}

// Get hides out-of-scope accounts behind the same not-found a nonexistent id
// would produce.
func (s *Service) Get(ctx context.Context, actor lifecycle.Actor, id uuid.UUID) (*AppUser, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ScopeHospitalID != nil && *actor.ScopeHospitalID != u.HospitalID {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindUser, ID: id}
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, actor lifecycle.Actor, limit, offset int) ([]*AppUser, int, error) {
	return s.repo.List(ctx, actor.ScopeHospitalID, limit, offset)
}
