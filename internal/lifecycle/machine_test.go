package lifecycle

import "testing"

func TestLookupEdgeDefined(t *testing.T) {
	cases := []struct {
		kind     EntityKind
		from     State
		tr       Transition
		to       State
		destroys bool
	}{
		{KindPatient, StateActive, TransitionDeactivate, StateInactive, false},
		{KindPatient, StateInactive, TransitionReactivate, StateActive, false},
		{KindPatient, StateActive, TransitionHardDelete, StateDestroyed, true},
		{KindPatient, StateInactive, TransitionHardDelete, StateDestroyed, true},
		{KindBranch, StateActive, TransitionDeactivate, StateInactive, false},
		{KindBranch, StateInactive, TransitionReactivate, StateActive, false},
		{KindBranch, StateActive, TransitionHardDelete, StateDestroyed, true},
		{KindUser, StateActive, TransitionDeactivate, StateSuspended, false},
		{KindUser, StateSuspended, TransitionReactivate, StateActive, false},
		{KindUser, StateLocked, TransitionReactivate, StateActive, false},
		{KindUser, StateActive, TransitionHardDelete, StateDestroyed, true},
		{KindUser, StateSuspended, TransitionHardDelete, StateDestroyed, true},
		{KindUser, StateLocked, TransitionHardDelete, StateDestroyed, true},
		{KindUser, StateArchived, TransitionHardDelete, StateDestroyed, true},
	}
	for _, tc := range cases {
		edge, ok := LookupEdge(tc.kind, tc.from, tc.tr)
		if !ok {
			t.Errorf("expected edge (%s, %s, %s) to be defined", tc.kind, tc.from, tc.tr)
			continue
		}
		if edge.To != tc.to {
			t.Errorf("edge (%s, %s, %s): to = %s, want %s", tc.kind, tc.from, tc.tr, edge.To, tc.to)
		}
		if edge.Destroys != tc.destroys {
			t.Errorf("edge (%s, %s, %s): destroys = %v, want %v", tc.kind, tc.from, tc.tr, edge.Destroys, tc.destroys)
		}
	}
}

func TestLookupEdgeUndefined(t *testing.T) {
	cases := []struct {
		kind EntityKind
		from State
		tr   Transition
	}{
		// Deceased patients are terminal.
		{KindPatient, StateDeceased, TransitionDeactivate},
		{KindPatient, StateDeceased, TransitionReactivate},
		{KindPatient, StateDeceased, TransitionHardDelete},
		// Reactivating something already active is not an edge.
		{KindPatient, StateActive, TransitionReactivate},
		{KindBranch, StateActive, TransitionReactivate},
		{KindUser, StateActive, TransitionReactivate},
		// Deactivating something already inactive is not an edge.
		{KindPatient, StateInactive, TransitionDeactivate},
		{KindBranch, StateInactive, TransitionDeactivate},
		{KindUser, StateSuspended, TransitionDeactivate},
		// States foreign to the kind.
		{KindPatient, StateSuspended, TransitionReactivate},
		{KindBranch, StateLocked, TransitionReactivate},
	}
	for _, tc := range cases {
		if _, ok := LookupEdge(tc.kind, tc.from, tc.tr); ok {
			t.Errorf("edge (%s, %s, %s) should be undefined", tc.kind, tc.from, tc.tr)
		}
	}
}

func TestIsTargetState(t *testing.T) {
	// Already-achieved detection backs the idempotent success path.
	if !IsTargetState(KindBranch, TransitionDeactivate, StateInactive) {
		t.Error("inactive is the target of branch deactivate")
	}
	if !IsTargetState(KindUser, TransitionDeactivate, StateSuspended) {
		t.Error("suspended is the target of user deactivate")
	}
	if !IsTargetState(KindUser, TransitionReactivate, StateActive) {
		t.Error("active is the target of user reactivate")
	}
	if IsTargetState(KindPatient, TransitionDeactivate, StateDeceased) {
		t.Error("deceased is never the target of deactivate")
	}
	if IsTargetState(KindBranch, TransitionReactivate, StateInactive) {
		t.Error("inactive is not the target of reactivate")
	}
}
