package branch

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

func (s *Service) Create(ctx context.Context, b *Branch) error {
	if b.Name == "" {
		return &lifecycle.ValidationError{Field: "name is required"}
	}
	if b.HospitalID == 0 {
		return &lifecycle.ValidationError{Field: "hospital_id is required"}
	}
	b.Status = string(lifecycle.StateActive)
	return s.repo.Create(ctx, b)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Branch, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Branch, int, error) {
	return s.repo.List(ctx, limit, offset)
}
