package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry maps to the append-only audit_record table. Rows are written once by
// the lifecycle engine after a transition commits and are never updated or
// deleted; a hard-deleted entity's history stays readable by id.
type Entry struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
	ActorID    string    `db:"actor_id" json:"actor_id"`
	ActorRole  int       `db:"actor_role" json:"actor_role"`
	EntityKind string    `db:"entity_kind" json:"entity_kind"`
	EntityID   uuid.UUID `db:"entity_id" json:"entity_id"`
	EntityName string    `db:"entity_name" json:"entity_name"`
	Transition string    `db:"transition" json:"transition"`
	PriorState string    `db:"prior_state" json:"prior_state"`
	NewState   string    `db:"new_state" json:"new_state"`
	Reason     string    `db:"reason" json:"reason,omitempty"`
}

// Filter narrows an audit query. Zero values mean "any".
type Filter struct {
	EntityKind string
	EntityID   *uuid.UUID
	ActorID    string
	Transition string
}
