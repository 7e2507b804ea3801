package order

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Exported ──> Submitted ──┬──> Approved
//	                                     └──> Rejected
//
// Approved and Rejected are terminal. The legal moves live in a single
// transition table (see transitions) that is consulted before any mutation.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly created order.
	Pending

	// Exported means the order was exported to a paper document for signing.
	Exported

	// Submitted means the signed document was uploaded back; the order awaits an admin decision.
	Submitted

	// Approved is terminal; stock was deducted for every item.
	Approved

	// Rejected is terminal; no stock side effects.
	Rejected
)

// transitions is the transition table: from-state to the set of allowed next states.
// States without an entry are terminal.
//
//nolint:gochecknoglobals // read-only table
var transitions = map[Status]map[Status]struct{}{
	Pending:   {Exported: {}},
	Exported:  {Submitted: {}},
	Submitted: {Approved: {}, Rejected: {}},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Exported:  "exported",
		Submitted: "submitted",
		Approved:  "approved",
		Rejected:  "rejected",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Exported, Submitted, Approved, Rejected}
}

// ParseStatus converts the lower-case wire name ("pending", "approved", ...) to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate reports whether s is one of the five defined statuses.
func (s Status) Validate() error {
	if s < Pending || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case wire name, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Approved || s == Rejected
}

// IsDecided reports whether an admin has approved or rejected the order.
// An approver is recorded exactly for decided orders.
func (s Status) IsDecided() bool {
	return s.IsTerminal()
}

// CanTransitionTo reports whether (s -> to) is in the transition table.
func (s Status) CanTransitionTo(to Status) bool {
	_, ok := transitions[s][to]
	return ok
}

// TransitionTo returns the requested status if the move is legal, otherwise an
// *InvalidStateTransitionError naming both states. It never picks a "nearest"
// legal state.
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return s, NewInvalidStateTransitionError(s, to)
	}
	return to, nil
}
