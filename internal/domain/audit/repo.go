package audit

import (
	"context"

	"github.com/hms/hms/internal/lifecycle"
)

// Repository persists and queries audit entries. It doubles as the engine's
// Recorder; there is no update or delete on purpose.
type Repository interface {
	lifecycle.Recorder
	Query(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error)
}
