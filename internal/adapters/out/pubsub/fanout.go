package pubsub

import (
	"context"
	"errors"

	"procurement/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// Fanout publishes every payload to all of its publishers concurrently and
// joins their errors.
type Fanout struct {
	publishers []ports.Publisher
}

// NewFanout publishes to publishers in no particular order.
func NewFanout(publishers ...ports.Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

// Publish waits for every publisher. A failing publisher does not stop the
// others; the returned error joins all failures.
func (f *Fanout) Publish(ctx context.Context, topic string, payload any) error {
	errs := make([]error, len(f.publishers))

	var g errgroup.Group
	for i, p := range f.publishers {
		g.Go(func() error {
			errs[i] = p.Publish(ctx, topic, payload)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
