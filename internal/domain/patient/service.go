package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return &lifecycle.ValidationError{Field: "first_name and last_name are required"}
	}
	if p.HospitalID == 0 {
		return &lifecycle.ValidationError{Field: "hospital_id is required"}
	}
	p.Status = string(lifecycle.StateActive)
	return s.repo.Create(ctx, p)
}

// Get enforces scope on reads: a scoped actor only sees patients of its own
// hospital, and gets the same not-found as for a nonexistent id.
func (s *Service) Get(ctx context.Context, actor lifecycle.Actor, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ScopeHospitalID != nil && *actor.ScopeHospitalID != p.HospitalID {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindPatient, ID: id}
	}
	return p, nil
}

// List narrows to the actor's hospital when the actor is scoped.
func (s *Service) List(ctx context.Context, actor lifecycle.Actor, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, actor.ScopeHospitalID, limit, offset)
}
