package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

// Repository is the persistence interface for staff accounts; the embedded
// EntityStore is driven by the lifecycle engine.
type Repository interface {
	Create(ctx context.Context, u *AppUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*AppUser, error)
	GetByEmail(ctx context.Context, email string) (*AppUser, error)
	List(ctx context.Context, hospitalID *int64, limit, offset int) ([]*AppUser, int, error)
	lifecycle.EntityStore
}
