package ports

import (
	"context"
	"time"

	"estatehub/contexts/engagement/contact-service/domain/entities"
)

type Repository interface {
	CreateContact(ctx context.Context, contact entities.Contact) error
	// ListContacts returns every submission newest first.
	ListContacts(ctx context.Context) ([]entities.Contact, error)
}

// AdminNotifier tells every admin about a new submission.
type AdminNotifier interface {
	NotifyContactSubmitted(ctx context.Context, contact entities.Contact) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
