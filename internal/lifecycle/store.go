package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntityStore is the persistence boundary for one entity kind. Implementations
// live in the domain packages and are backed by the database; Save and Destroy
// must be atomic compare-and-swap operations on the version counter.
type EntityStore interface {
	// Load returns the entity by id, or *NotFoundError.
	Load(ctx context.Context, id uuid.UUID) (*Entity, error)
	// Save persists the entity's state and increments e.Version, but only if
	// the stored version still equals expectedVersion. A lost race returns
	// *ConflictError with ReasonStaleVersion.
	Save(ctx context.Context, e *Entity, expectedVersion int) error
	// Destroy permanently removes the entity and its dependents, but only if
	// the stored version still equals expectedVersion.
	Destroy(ctx context.Context, id uuid.UUID, expectedVersion int) error
}

// AuditRecord is the immutable account of an applied transition. Records are
// append-only; nothing ever mutates or deletes one.
type AuditRecord struct {
	Timestamp  time.Time
	ActorID    string
	ActorRole  Role
	EntityKind EntityKind
	EntityID   uuid.UUID
	EntityName string
	Transition Transition
	PriorState State
	NewState   State
	Reason     string
}

// Recorder appends audit records. The engine calls it only after the state
// change has committed.
type Recorder interface {
	Record(ctx context.Context, rec *AuditRecord) error
}
