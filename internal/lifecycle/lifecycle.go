// Package lifecycle implements the entity lifecycle and authorization engine:
// role capability checks, typed confirmation, the per-kind state machine, and
// transition orchestration with optimistic concurrency and audit recording.
package lifecycle

import (
	"github.com/google/uuid"
)

// EntityKind identifies which lifecycle table governs an entity.
type EntityKind string

const (
	KindPatient EntityKind = "patient"
	KindUser    EntityKind = "user"
	KindBranch  EntityKind = "branch"
)

// Valid reports whether the kind is one the engine knows about.
func (k EntityKind) Valid() bool {
	switch k {
	case KindPatient, KindUser, KindBranch:
		return true
	}
	return false
}

// State is a lifecycle state. Not every state is legal for every kind; the
// state machine tables in machine.go are authoritative.
type State string

const (
	StateActive    State = "active"
	StateInactive  State = "inactive"
	StateSuspended State = "suspended"
	StateLocked    State = "locked"
	// StateArchived is reachable for user accounts only through the permanent
	// deletion path; no transition edge leads into it.
	StateArchived State = "archived"
	// StateDeceased is terminal for patients.
	StateDeceased State = "deceased"
	// StateDestroyed is not a stored state. It appears in results and audit
	// records after a HardDelete, once the row no longer exists.
	StateDestroyed State = "destroyed"
)

// Transition is a named, legal state change an actor can request.
type Transition string

const (
	TransitionDeactivate Transition = "deactivate"
	TransitionReactivate Transition = "reactivate"
	TransitionHardDelete Transition = "hard_delete"
)

// Role is the numeric staff role carried in auth tokens.
type Role int

const (
	RoleGlobalAdmin   Role = 1
	RoleHospitalAdmin Role = 2
	RoleDoctor        Role = 3
	RoleNurse         Role = 4
	RoleReceptionist  Role = 5
)

func (r Role) String() string {
	switch r {
	case RoleGlobalAdmin:
		return "global_admin"
	case RoleHospitalAdmin:
		return "hospital_admin"
	case RoleDoctor:
		return "doctor"
	case RoleNurse:
		return "nurse"
	case RoleReceptionist:
		return "receptionist"
	}
	return "unknown"
}

// Valid reports whether r is one of the five recognized roles.
func (r Role) Valid() bool {
	return r >= RoleGlobalAdmin && r <= RoleReceptionist
}

// Actor is the authenticated requester. It is passed explicitly into every
// engine call; the engine holds no ambient session state.
type Actor struct {
	ID   string
	Role Role
	// ScopeHospitalID bounds which entities the actor may act on.
	// nil means unscoped (global).
	ScopeHospitalID *int64
}

// Entity is the engine's view of a managed record, independent of which
// domain table it lives in.
type Entity struct {
	ID          uuid.UUID
	Kind        EntityKind
	DisplayName string
	State       State
	OwnerScope  int64
	Version     int
}

// Request is a transport-neutral transition request.
type Request struct {
	Kind             EntityKind
	EntityID         uuid.UUID
	Transition       Transition
	ConfirmationText string
	Reason           string
	// ExpectedVersion is the version the caller read before submitting.
	// Zero means the caller did not pin a version and the engine uses the
	// version it loads itself.
	ExpectedVersion int
}

// Result reports the entity's state after a successful transition.
type Result struct {
	State   State `json:"state"`
	Version int   `json:"version"`
	// Unchanged is true when the entity was already in the target state and
	// the request collapsed to an idempotent no-op.
	Unchanged bool `json:"unchanged,omitempty"`
}
