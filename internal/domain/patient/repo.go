package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

// Repository is the persistence interface for patients; the embedded
// EntityStore is driven by the lifecycle engine.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context, hospitalID *int64, limit, offset int) ([]*Patient, int, error)
	lifecycle.EntityStore
}
