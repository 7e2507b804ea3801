package ports

import (
	"context"
)

// WindowReader exposes the ordering-window flag to readers such as
// order-creation validation and dashboards.
type WindowReader interface {
	IsOpen(ctx context.Context) (bool, error)
}

// WindowStore is the writable ordering-window flag. Only the window scheduler
// and the admin toggle receive a WindowStore; everything else gets a WindowReader.
type WindowStore interface {
	WindowReader

	// SetOpen stores the flag.
	SetOpen(ctx context.Context, open bool) error

	// Toggle flips the flag and returns the new value.
	Toggle(ctx context.Context) (bool, error)
}
