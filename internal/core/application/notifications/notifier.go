// Package notifications tells people about order lifecycle events once the
// transition is committed: dashboards through the broadcaster, humans by e-mail.
// Nothing here returns an error to the caller, and nothing here holds the caller
// up: delivery runs in the background on a context detached from the request.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// orderBroadcaster is the part of broadcast.Broadcaster the notifier uses.
type orderBroadcaster interface {
	PublishOrderStatus(ctx context.Context, o *order.Order)
	PublishPendingOrder(ctx context.Context, o *order.Order)
}

// DefaultDeliveryTimeout bounds one background delivery (broadcast, lookup and mail).
const DefaultDeliveryTimeout = 30 * time.Second

// Notifier implements commands.OrderNotifier.
type Notifier struct {
	broadcaster orderBroadcaster
	mailer      ports.Mailer
	directory   ports.RecipientDirectory
	logger      *slog.Logger
	timeout     time.Duration
	inflight    sync.WaitGroup
}

// NewNotifier creates a notifier whose deliveries are bounded by
// DefaultDeliveryTimeout.
func NewNotifier(
	broadcaster orderBroadcaster,
	mailer ports.Mailer,
	directory ports.RecipientDirectory,
	logger *slog.Logger,
) *Notifier {
	return &Notifier{
		broadcaster: broadcaster,
		mailer:      mailer,
		directory:   directory,
		logger:      logger.With("component", "notifier"),
		timeout:     DefaultDeliveryTimeout,
	}
}

// Wait blocks until every delivery started so far has finished. Used on
// shutdown so queued mail is not lost.
func (n *Notifier) Wait() {
	n.inflight.Wait()
}

// OrderCreated returns at once; the new order is pushed to admin dashboards
// and mailed to the admins in the background.
func (n *Notifier) OrderCreated(ctx context.Context, o *order.Order) {
	n.background(ctx, func(ctx context.Context) { n.orderCreated(ctx, o) })
}

// OrderDecided returns at once; the decision is pushed to the global and
// department channels and mailed to the department in the background.
func (n *Notifier) OrderDecided(ctx context.Context, o *order.Order) {
	n.background(ctx, func(ctx context.Context) { n.orderDecided(ctx, o) })
}

// background keeps the caller's values (trace ids, log attributes) but not its
// cancellation: the request may finish long before the mail goes out.
func (n *Notifier) background(ctx context.Context, deliver func(ctx context.Context)) {
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()
		deliver(ctx)
	}()
}

func (n *Notifier) orderCreated(ctx context.Context, o *order.Order) {
	n.broadcaster.PublishPendingOrder(ctx, o)

	recipients, err := n.directory.AdminAddresses(ctx)
	if err != nil {
		n.logger.WarnContext(ctx, "Admin recipients lookup failed", "order_id", o.ID().String(), "error", err)
		return
	}

	n.send(ctx, o, ports.MailMessage{
		To:      recipients,
		Subject: fmt.Sprintf("New supply order %s", o.ID()),
		Body:    orderBody(o, "A new order is waiting for review."),
	})
}

func (n *Notifier) orderDecided(ctx context.Context, o *order.Order) {
	n.broadcaster.PublishOrderStatus(ctx, o)

	recipients, err := n.directory.DepartmentAddresses(ctx, o.DepartmentID().String())
	if err != nil {
		n.logger.WarnContext(ctx, "Department recipients lookup failed",
			"order_id", o.ID().String(),
			"department_id", o.DepartmentID().String(),
			"error", err,
		)
		return
	}

	n.send(ctx, o, ports.MailMessage{
		To:      recipients,
		Subject: fmt.Sprintf("Supply order %s %s", o.ID(), o.Status()),
		Body:    orderBody(o, fmt.Sprintf("Your order was %s.", o.Status())),
	})
}

func (n *Notifier) send(ctx context.Context, o *order.Order, msg ports.MailMessage) {
	if len(msg.To) == 0 {
		n.logger.DebugContext(ctx, "No mail recipients", "order_id", o.ID().String(), "status", o.Status().String())
		return
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.WarnContext(ctx, "Mail delivery failed",
			"order_id", o.ID().String(),
			"recipients", len(msg.To),
			"error", err,
		)
	}
}

func orderBody(o *order.Order, headline string) string {
	var b strings.Builder
	b.WriteString(headline)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Order:      %s\n", o.ID())
	fmt.Fprintf(&b, "Department: %s\n", o.DepartmentID())
	fmt.Fprintf(&b, "Status:     %s\n", o.Status())
	if comment := o.AdminComment(); comment != nil {
		fmt.Fprintf(&b, "Comment:    %s\n", *comment)
	}
	b.WriteString("\nItems:\n")
	for _, item := range o.Items() {
		fmt.Fprintf(&b, "  - %s x %d\n", item.ProductID(), item.Quantity())
	}
	return b.String()
}
