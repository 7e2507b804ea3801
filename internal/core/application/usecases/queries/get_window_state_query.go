package queries

import (
	"context"
	"errors"

	"procurement/internal/core/ports"
	"procurement/internal/pkg/guard"
)

// ErrGetWindowStateQueryIsNotConstructed is returned for a zero-value query.
var ErrGetWindowStateQueryIsNotConstructed = errors.New(
	"GetWindowStateQuery must be created via NewGetWindowStateQuery constructor",
)

// GetWindowStateQuery reads the ordering-window flag.
type GetWindowStateQuery struct {
	guard guard.ConstructorGuard
}

func NewGetWindowStateQuery() GetWindowStateQuery {
	return GetWindowStateQuery{guard: guard.NewConstructorGuard()}
}

func (q GetWindowStateQuery) Validate() error {
	return q.guard.Validate(ErrGetWindowStateQueryIsNotConstructed)
}

// GetWindowStateQueryHandler only needs read access to the flag.
type GetWindowStateQueryHandler struct {
	window ports.WindowReader
}

// NewGetWindowStateQueryHandler creates the handler.
func NewGetWindowStateQueryHandler(window ports.WindowReader) GetWindowStateQueryHandler {
	return GetWindowStateQueryHandler{window: window}
}

// Handle reports whether departments may currently create orders.
func (h GetWindowStateQueryHandler) Handle(ctx context.Context, query GetWindowStateQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}
	return h.window.IsOpen(ctx)
}
