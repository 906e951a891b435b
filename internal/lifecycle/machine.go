package lifecycle

// Edge is a single allowed transition in a kind's lifecycle state machine.
type Edge struct {
	Kind       EntityKind
	From       State
	Transition Transition
	To         State
	// Destroys marks the edge as destructive: the entity ceases to exist and
	// no further transition is legal against its id.
	Destroys bool
}

// edges is the authoritative list of legal (kind, from, transition) -> to
// moves. Anything absent from this table is rejected, never silently
// no-op'd.
var edges = []Edge{
	// Patient. Deceased is terminal: no edges out.
	{Kind: KindPatient, From: StateActive, Transition: TransitionDeactivate, To: StateInactive},
	{Kind: KindPatient, From: StateInactive, Transition: TransitionReactivate, To: StateActive},
	{Kind: KindPatient, From: StateActive, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},
	{Kind: KindPatient, From: StateInactive, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},

	// Branch.
	{Kind: KindBranch, From: StateActive, Transition: TransitionDeactivate, To: StateInactive},
	{Kind: KindBranch, From: StateInactive, Transition: TransitionReactivate, To: StateActive},
	{Kind: KindBranch, From: StateActive, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},
	{Kind: KindBranch, From: StateInactive, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},

	// User account. Archived is reachable only via the permanent deletion
	// path, so HardDelete is legal from every non-destroyed state.
	{Kind: KindUser, From: StateActive, Transition: TransitionDeactivate, To: StateSuspended},
	{Kind: KindUser, From: StateSuspended, Transition: TransitionReactivate, To: StateActive},
	{Kind: KindUser, From: StateLocked, Transition: TransitionReactivate, To: StateActive},
	{Kind: KindUser, From: StateActive, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},
	{Kind: KindUser, From: StateSuspended, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},
	{Kind: KindUser, From: StateLocked, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},
	{Kind: KindUser, From: StateArchived, Transition: TransitionHardDelete, To: StateDestroyed, Destroys: true},
}

type edgeKey struct {
	kind EntityKind
	from State
	tr   Transition
}

var edgeIndex = buildEdgeIndex()

func buildEdgeIndex() map[edgeKey]Edge {
	idx := make(map[edgeKey]Edge, len(edges))
	for _, e := range edges {
		idx[edgeKey{e.Kind, e.From, e.Transition}] = e
	}
	return idx
}

// LookupEdge returns the edge for (kind, from, transition), if defined.
// O(1) on the prebuilt index.
func LookupEdge(kind EntityKind, from State, tr Transition) (Edge, bool) {
	e, ok := edgeIndex[edgeKey{kind, from, tr}]
	return e, ok
}

// IsTargetState reports whether state is the destination of any edge for
// (kind, transition). Used to distinguish "already achieved" (idempotent
// success) from "undefined for this state" (hard conflict).
func IsTargetState(kind EntityKind, tr Transition, state State) bool {
	for _, e := range edges {
		if e.Kind == kind && e.Transition == tr && e.To == state {
			return true
		}
	}
	return false
}
