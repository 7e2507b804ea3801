package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/ports"
)

// SetOrderingWindowCommandHandler writes the window flag and broadcasts the new
// state once per call, also when the flag did not change.
type SetOrderingWindowCommandHandler struct {
	store    ports.WindowStore
	notifier WindowNotifier
	logger   *slog.Logger
}

// NewSetOrderingWindowCommandHandler creates the handler used by the window scheduler.
func NewSetOrderingWindowCommandHandler(
	store ports.WindowStore,
	notifier WindowNotifier,
	logger *slog.Logger,
) SetOrderingWindowCommandHandler {
	return SetOrderingWindowCommandHandler{
		store:    store,
		notifier: notifier,
		logger:   logger.With("component", "ordering-window"),
	}
}

// Handle fails only when the store cannot be written; nothing is broadcast then.
func (h SetOrderingWindowCommandHandler) Handle(ctx context.Context, cmd SetOrderingWindowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.store.SetOpen(ctx, cmd.Open()); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Ordering window changed", "open", cmd.Open())
	h.notifier.PublishWindowState(ctx, cmd.Open())
	return nil
}

// ToggleOrderingWindowCommandHandler flips the window flag and broadcasts the result.
type ToggleOrderingWindowCommandHandler struct {
	store    ports.WindowStore
	notifier WindowNotifier
	logger   *slog.Logger
}

// NewToggleOrderingWindowCommandHandler creates the handler behind the admin toggle.
func NewToggleOrderingWindowCommandHandler(
	store ports.WindowStore,
	notifier WindowNotifier,
	logger *slog.Logger,
) ToggleOrderingWindowCommandHandler {
	return ToggleOrderingWindowCommandHandler{
		store:    store,
		notifier: notifier,
		logger:   logger.With("component", "ordering-window"),
	}
}

// Handle returns the new state of the window.
func (h ToggleOrderingWindowCommandHandler) Handle(ctx context.Context, cmd ToggleOrderingWindowCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	open, err := h.store.Toggle(ctx)
	if err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "Ordering window toggled", "open", open)
	h.notifier.PublishWindowState(ctx, open)
	return open, nil
}
