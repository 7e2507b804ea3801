// Package broadcast fans lifecycle and ordering-window events out to dashboard
// subscribers. There are two addressing modes: the global admin channel and a
// per-department channel. Delivery is best effort; failures are logged and
// swallowed so a committed transition is never undone by a notification.
package broadcast

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	// TopicOrders is the global admin-facing channel.
	TopicOrders = "orders"

	// TopicWindow carries ordering-window state changes.
	TopicWindow = "ordering-window"

	departmentTopicPrefix = "orders.department."
)

// Event types.
const (
	EventOrderStatus  = "order.status"
	EventOrderPending = "order.pending"
	EventWindowState  = "window.state"
)

// DepartmentTopic is the channel of a single department.
func DepartmentTopic(departmentID kernel.UUID) string {
	return departmentTopicPrefix + departmentID.String()
}

// Event is the payload published on every channel.
type Event struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"orderId,omitempty"`
	DepartmentID string    `json:"departmentId,omitempty"`
	Status       string    `json:"status,omitempty"`
	Open         *bool     `json:"open,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Broadcaster publishes order and window events through a ports.Publisher.
type Broadcaster struct {
	publisher ports.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewBroadcaster creates a broadcaster. m may be nil.
func NewBroadcaster(publisher ports.Publisher, logger *slog.Logger, m *metrics.Metrics) *Broadcaster {
	return &Broadcaster{
		publisher: publisher,
		logger:    logger.With("component", "broadcaster"),
		metrics:   m,
		now:       time.Now,
	}
}

// PublishOrderStatus sends the order's status to the global channel and, when
// the department is known, to the department channel.
func (b *Broadcaster) PublishOrderStatus(ctx context.Context, o *order.Order) {
	event := b.orderEvent(EventOrderStatus, o)

	var g errgroup.Group
	g.Go(func() error {
		return b.publish(ctx, "global", TopicOrders, event)
	})
	if o.DepartmentID().Validate() == nil {
		g.Go(func() error {
			return b.publish(ctx, "department", DepartmentTopic(o.DepartmentID()), event)
		})
	}
	_ = g.Wait()
}

// PublishPendingOrder tells admin dashboards that a new order awaits review.
func (b *Broadcaster) PublishPendingOrder(ctx context.Context, o *order.Order) {
	_ = b.publish(ctx, "global", TopicOrders, b.orderEvent(EventOrderPending, o))
}

// PublishWindowState sends the ordering-window flag to the global window channel.
func (b *Broadcaster) PublishWindowState(ctx context.Context, open bool) {
	_ = b.publish(ctx, "window", TopicWindow, Event{
		Type:       EventWindowState,
		Open:       &open,
		OccurredAt: b.now().UTC(),
	})
}

func (b *Broadcaster) orderEvent(eventType string, o *order.Order) Event {
	event := Event{
		Type:       eventType,
		OrderID:    o.ID().String(),
		Status:     o.Status().String(),
		OccurredAt: b.now().UTC(),
	}
	if o.DepartmentID().Validate() == nil {
		event.DepartmentID = o.DepartmentID().String()
	}
	return event
}

func (b *Broadcaster) publish(ctx context.Context, channel, topic string, event Event) error {
	err := b.publisher.Publish(ctx, topic, event)
	b.metrics.Broadcast(channel, err)
	if err != nil {
		b.logger.WarnContext(ctx, "Broadcast failed", "topic", topic, "event", event.Type, "error", err)
	}
	return err
}
