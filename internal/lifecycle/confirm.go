package lifecycle

import "strings"

// HardDeleteToken is the literal an operator must retype before a permanent
// deletion is applied.
const HardDeleteToken = "DELETE"

// ExpectedConfirmation returns the literal the operator must retype for the
// transition: the entity's display name for soft transitions, the
// HardDeleteToken for permanent deletion.
func ExpectedConfirmation(tr Transition, displayName string) string {
	if tr == TransitionHardDelete {
		return HardDeleteToken
	}
	return displayName
}

// ConfirmationMatches compares the operator-supplied text against the
// expected literal. Both sides are trimmed and compared case-insensitively.
// Full equality only: no partial or length-only matching.
func ConfirmationMatches(expected, supplied string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(supplied))
}
