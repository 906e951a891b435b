package lifecycle

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Engine orchestrates a transition request: authorization, confirmation,
// state machine lookup, compare-and-swap persistence, audit. It holds no
// mutable state of its own; concurrent requests are serialized per entity by
// the version counter, not by locks.
type Engine struct {
	stores   map[EntityKind]EntityStore
	recorder Recorder
	logger   zerolog.Logger
}

func NewEngine(stores map[EntityKind]EntityStore, recorder Recorder, logger zerolog.Logger) *Engine {
	return &Engine{stores: stores, recorder: recorder, logger: logger}
}

// Execute runs a single transition request for the given actor. On any
// failure before persistence the entity is untouched and no audit record is
// written. The engine never retries; stale_version conflicts are the
// caller's to resolve by reloading.
func (e *Engine) Execute(ctx context.Context, actor Actor, req Request) (*Result, error) {
	store, ok := e.stores[req.Kind]
	if !ok {
		return nil, &ValidationError{Reason: ReasonMalformedRequest, Field: "entity kind"}
	}

	ent, err := store.Load(ctx, req.EntityID)
	if err != nil {
		return nil, err
	}

	// Scope before capability: a scoped actor never learns whether its role
	// would have sufficed for an entity outside its hospital.
	if actor.ScopeHospitalID != nil && *actor.ScopeHospitalID != ent.OwnerScope {
		e.logSecurityEvent(actor, req, ReasonInsufficientScope)
		return nil, &AuthorizationError{Reason: ReasonInsufficientScope}
	}

	if !RoleAllows(actor.Role, req.Kind, req.Transition) {
		e.logSecurityEvent(actor, req, ReasonInsufficientRole)
		return nil, &AuthorizationError{Reason: ReasonInsufficientRole}
	}

	expected := ExpectedConfirmation(req.Transition, ent.DisplayName)
	if !ConfirmationMatches(expected, req.ConfirmationText) {
		// Failed attempt: logged, never audited, never mutates.
		e.logger.Warn().
			Str("type", "lifecycle_confirmation_failed").
			Str("actor_id", actor.ID).
			Str("entity_kind", string(req.Kind)).
			Str("entity_id", req.EntityID.String()).
			Str("transition", string(req.Transition)).
			Msg("confirmation text mismatch")
		return nil, &ValidationError{Reason: ReasonConfirmationMismatch}
	}

	if req.ExpectedVersion != 0 && req.ExpectedVersion != ent.Version {
		return nil, &ConflictError{Reason: ReasonStaleVersion}
	}

	edge, defined := LookupEdge(req.Kind, ent.State, req.Transition)
	if !defined {
		if IsTargetState(req.Kind, req.Transition, ent.State) {
			// Already in the target state: idempotent success, no state
			// change, no duplicate audit record.
			return &Result{State: ent.State, Version: ent.Version, Unchanged: true}, nil
		}
		return nil, &ConflictError{Reason: ReasonIllegalTransition}
	}

	prior := ent.State
	if edge.Destroys {
		if err := store.Destroy(ctx, ent.ID, ent.Version); err != nil {
			return nil, err
		}
		e.record(ctx, actor, req, ent, prior, StateDestroyed)
		return &Result{State: StateDestroyed}, nil
	}

	ent.State = edge.To
	if err := store.Save(ctx, ent, ent.Version); err != nil {
		return nil, err
	}
	e.record(ctx, actor, req, ent, prior, ent.State)
	return &Result{State: ent.State, Version: ent.Version}, nil
}

// record appends the audit record for a committed transition. The state
// change has already been persisted, so a recorder failure is logged loudly
// rather than reported as a failed transition.
func (e *Engine) record(ctx context.Context, actor Actor, req Request, ent *Entity, prior, next State) {
	rec := &AuditRecord{
		Timestamp:  time.Now().UTC(),
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		EntityKind: req.Kind,
		EntityID:   req.EntityID,
		EntityName: ent.DisplayName,
		Transition: req.Transition,
		PriorState: prior,
		NewState:   next,
		Reason:     req.Reason,
	}
	if err := e.recorder.Record(ctx, rec); err != nil {
		e.logger.Error().Err(err).
			Str("entity_kind", string(req.Kind)).
			Str("entity_id", req.EntityID.String()).
			Str("transition", string(req.Transition)).
			Msg("audit record write failed after commit")
	}
}

// logSecurityEvent emits the security-relevant log line for denied requests,
// distinct from the normal audit trail.
func (e *Engine) logSecurityEvent(actor Actor, req Request, reason string) {
	e.logger.Warn().
		Str("type", "security_audit").
		Str("actor_id", actor.ID).
		Str("actor_role", actor.Role.String()).
		Str("entity_kind", string(req.Kind)).
		Str("entity_id", req.EntityID.String()).
		Str("transition", string(req.Transition)).
		Str("reason", reason).
		Msg("lifecycle transition denied")
}
