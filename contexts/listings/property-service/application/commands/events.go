package commands

import (
	"context"
	"log/slog"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"
	"estatehub/contexts/listings/property-service/ports"
	contractsv1 "estatehub/contracts/gen/events/v1"
)

const (
	TopicPropertySubmitted     = "property.submitted"
	TopicPropertyStatusChanged = "property.status_changed"
	TopicPropertyDeleted       = "property.deleted"
)

const moduleName = "listings/property-service"

// publish is best-effort: the listing write has already committed.
func publish(
	ctx context.Context,
	publisher ports.EventPublisher,
	idGen ports.IDGenerator,
	logger *slog.Logger,
	topic string,
	property entities.Property,
	occurredAt time.Time,
	data map[string]any,
) {
	if publisher == nil {
		return
	}
	eventID, err := idGen.NewID(ctx)
	if err == nil {
		var envelope ports.EventEnvelope
		envelope, err = contractsv1.NewEnvelope(
			eventID,
			topic,
			"property-service",
			"property_id",
			property.PropertyID,
			occurredAt,
			data,
		)
		if err == nil {
			err = publisher.Publish(ctx, topic, envelope)
		}
	}
	if err != nil {
		logger.Warn("property event publish failed",
			"event", "property_event_publish_failed",
			"module", moduleName,
			"layer", "application",
			"topic", topic,
			"property_id", property.PropertyID,
			"error", err.Error(),
		)
	}
}
