package ports

import (
	"context"
	"time"

	"estatehub/contexts/engagement/notification-service/domain/entities"
	contractsv1 "estatehub/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

type Repository interface {
	CreateNotification(ctx context.Context, notification entities.Notification) error
	GetNotification(ctx context.Context, notificationID string) (entities.Notification, error)
	// ListByRecipient returns the recipient's notifications newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]entities.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// AdminDirectory lists the ids of every principal holding the admin role.
type AdminDirectory interface {
	ListAdminIDs(ctx context.Context) ([]string, error)
}

// RecipientDirectory resolves the mailbox of a recipient.
type RecipientDirectory interface {
	LookupEmail(ctx context.Context, userID string) (string, error)
}

type Email struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
