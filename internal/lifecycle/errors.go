package lifecycle

import (
	"fmt"

	"github.com/google/uuid"
)

// Failure reason codes. They travel inside the typed errors so callers can
// branch on them; user-facing messages stay generic (see Error methods).
const (
	ReasonInsufficientRole     = "insufficient_role"
	ReasonInsufficientScope    = "insufficient_scope"
	ReasonConfirmationMismatch = "confirmation_mismatch"
	ReasonIllegalTransition    = "illegal_transition"
	ReasonStaleVersion         = "stale_version"
	ReasonMalformedRequest     = "malformed_request"
)

// NotFoundError reports that the requested entity does not exist. A hard
// deleted entity produces the same error as one that never existed.
type NotFoundError struct {
	Kind EntityKind
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// AuthorizationError reports a role or scope failure. The message deliberately
// does not distinguish the two to avoid leaking state to unauthorized actors;
// the Reason field carries the precise cause for audit logging.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "not permitted"
}

// ValidationError reports a recoverable request problem, most commonly a
// confirmation text mismatch. Resubmission with corrected input may succeed.
type ValidationError struct {
	Reason string
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonConfirmationMismatch {
		return "confirmation does not match"
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid request: %s", e.Field)
	}
	return "invalid request"
}

// ConflictError reports that the transition cannot be applied to the entity's
// current state, or that the entity changed since the caller read it. Callers
// seeing stale_version should reload and retry; the engine never retries.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	if e.Reason == ReasonStaleVersion {
		return "entity was modified concurrently, reload and retry"
	}
	return "transition not allowed in current state"
}

// PersistenceError wraps a repository failure. No partial mutation is
// observable when this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
