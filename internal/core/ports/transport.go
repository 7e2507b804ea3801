package ports

import (
	"context"
)

// Publisher delivers a payload to every current subscriber of topic.
// Delivery is best effort and at most once: there is no replay for
// subscribers that are not connected.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// MailMessage is an outbound e-mail.
type MailMessage struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends e-mail. The core treats it as fire-and-forget: failures are
// logged by the caller and never undo a committed transition.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// RecipientDirectory resolves who is told about order events.
type RecipientDirectory interface {
	// AdminAddresses returns the administrators' addresses.
	AdminAddresses(ctx context.Context) ([]string, error)

	// DepartmentAddresses returns the addresses of a department; empty when unknown.
	DepartmentAddresses(ctx context.Context, departmentID string) ([]string, error)
}
