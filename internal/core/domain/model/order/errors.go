package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStateTransition is the sentinel behind InvalidStateTransitionError.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrOrderIsNotConstructed is returned when an Order was not created via NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// InvalidStateTransitionError reports a move that is not in the transition table.
type InvalidStateTransitionError struct {
	Current   Status
	Requested Status
}

func NewInvalidStateTransitionError(current, requested Status) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Current: current, Requested: requested}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move order from %s to %s", ErrInvalidStateTransition, e.Current, e.Requested)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}
