package commands

import (
	"errors"

	"procurement/internal/pkg/guard"
)

var (
	ErrSetOrderingWindowCommandIsNotConstructed = errors.New(
		"SetOrderingWindowCommand must be created via NewSetOrderingWindowCommand constructor",
	)
	ErrToggleOrderingWindowCommandIsNotConstructed = errors.New(
		"ToggleOrderingWindowCommand must be created via NewToggleOrderingWindowCommand constructor",
	)
)

// SetOrderingWindowCommand opens or closes the ordering window. The scheduler
// issues it on its cron ticks; admins may issue it directly.
type SetOrderingWindowCommand struct {
	open bool

	guard guard.ConstructorGuard
}

// NewSetOrderingWindowCommand cannot fail: both states are valid.
func NewSetOrderingWindowCommand(open bool) SetOrderingWindowCommand {
	return SetOrderingWindowCommand{open: open, guard: guard.NewConstructorGuard()}
}

func (c SetOrderingWindowCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderingWindowCommandIsNotConstructed)
}

func (c SetOrderingWindowCommand) Open() bool {
	return c.open
}

// ToggleOrderingWindowCommand flips the ordering window.
type ToggleOrderingWindowCommand struct {
	guard guard.ConstructorGuard
}

// NewToggleOrderingWindowCommand carries no arguments.
func NewToggleOrderingWindowCommand() ToggleOrderingWindowCommand {
	return ToggleOrderingWindowCommand{guard: guard.NewConstructorGuard()}
}

func (c ToggleOrderingWindowCommand) Validate() error {
	return c.guard.Validate(ErrToggleOrderingWindowCommandIsNotConstructed)
}
