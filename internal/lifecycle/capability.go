package lifecycle

// capabilityTable is the single authoritative mapping from role to the
// lifecycle transitions it may request per entity kind. Server enforcement
// and any UI affordances both derive from this table, so the two cannot
// drift apart.
var capabilityTable = map[Role]map[EntityKind][]Transition{
	RoleGlobalAdmin: {
		KindPatient: {TransitionDeactivate, TransitionReactivate, TransitionHardDelete},
		KindBranch:  {TransitionDeactivate, TransitionReactivate, TransitionHardDelete},
		KindUser:    {TransitionHardDelete},
	},
	RoleHospitalAdmin: {
		// User account suspension and reinstatement within the admin's own
		// hospital; the scope check in the engine bounds it there.
		KindUser: {TransitionDeactivate, TransitionReactivate},
	},
	// Clinical roles and reception have read/edit access only, no lifecycle
	// transitions.
	RoleDoctor:       {},
	RoleNurse:        {},
	RoleReceptionist: {},
}

// CapabilitiesFor returns the transitions the role may request on the given
// entity kind. Pure and deterministic; the returned slice must not be
// modified.
func CapabilitiesFor(role Role, kind EntityKind) []Transition {
	kinds, ok := capabilityTable[role]
	if !ok {
		return nil
	}
	return kinds[kind]
}

// RoleAllows reports whether the role may request the transition on the kind.
func RoleAllows(role Role, kind EntityKind, tr Transition) bool {
	for _, t := range CapabilitiesFor(role, kind) {
		if t == tr {
			return true
		}
	}
	return false
}
