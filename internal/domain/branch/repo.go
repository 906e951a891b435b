package branch

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

// Repository defines the persistence interface for branches. The embedded
// EntityStore is what the lifecycle engine drives: Load/Save/Destroy with
// compare-and-swap on the version column.
type Repository interface {
	Create(ctx context.Context, b *Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	List(ctx context.Context, limit, offset int) ([]*Branch, int, error)
	lifecycle.EntityStore
}
