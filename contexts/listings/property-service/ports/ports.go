package ports

import (
	"context"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"
	contractsv1 "estatehub/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

// PropertyFilter narrows ListProperties. Zero values mean "no constraint".
type PropertyFilter struct {
	OwnerID  string
	Statuses []entities.PropertyStatus
	Limit    int
}

type Repository interface {
	CreateProperty(ctx context.Context, property entities.Property) error
	UpdateProperty(ctx context.Context, property entities.Property) error
	GetProperty(ctx context.Context, propertyID string) (entities.Property, error)
	// ListProperties returns matches newest first.
	ListProperties(ctx context.Context, filter PropertyFilter) ([]entities.Property, error)
	DeleteProperty(ctx context.Context, propertyID string) error
	// DeletePropertiesByOwner removes every listing of ownerID and returns what was removed.
	DeletePropertiesByOwner(ctx context.Context, ownerID string) ([]entities.Property, error)
}

// ImageStore persists uploaded images and hands back opaque references.
type ImageStore interface {
	SaveImage(ctx context.Context, image entities.Image) (string, error)
	OpenImage(ctx context.Context, ref string) (entities.Image, error)
	DeleteImage(ctx context.Context, ref string) error
}

// AdminNotifier fans a submitted listing out to every administrator.
type AdminNotifier interface {
	NotifyPropertySubmitted(ctx context.Context, property entities.Property) error
}

// OwnerDirectory resolves the contact card of a listing owner.
type OwnerDirectory interface {
	LookupOwner(ctx context.Context, ownerID string) (entities.OwnerContact, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
