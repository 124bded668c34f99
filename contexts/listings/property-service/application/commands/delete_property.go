package commands

import (
	"context"
	"log/slog"
	"strings"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	application "estatehub/contexts/listings/property-service/application"
	"estatehub/contexts/listings/property-service/domain/entities"
	"estatehub/contexts/listings/property-service/ports"
)

type DeletePropertyCommand struct {
	Principal  policyentities.Principal
	PropertyID string
}

type DeletePropertyUseCase struct {
	Repository ports.Repository
	Images     ports.ImageStore
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc DeletePropertyUseCase) Execute(ctx context.Context, cmd DeletePropertyCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := authorize(logger, cmd.Principal, "", policyentities.ActionPropertyDelete); err != nil {
		return err
	}
	property, err := uc.Repository.GetProperty(ctx, strings.TrimSpace(cmd.PropertyID))
	if err != nil {
		return err
	}
	if err := uc.Repository.DeleteProperty(ctx, property.PropertyID); err != nil {
		return err
	}
	discardImages(ctx, uc.Images, logger, property.Images)

	logger.Info("property deleted",
		"event", "property_deleted",
		"module", moduleName,
		"layer", "application",
		"property_id", property.PropertyID,
		"actor_id", cmd.Principal.ID,
	)
	uc.published(ctx, logger, property, cmd.Principal.ID)
	return nil
}

// DeleteByOwner removes every listing owned by ownerID. It backs the account
// deletion cascade, which has already been authorized by the caller.
func (uc DeletePropertyUseCase) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	logger := application.ResolveLogger(uc.Logger)
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return 0, nil
	}
	removed, err := uc.Repository.DeletePropertiesByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	for _, property := range removed {
		discardImages(ctx, uc.Images, logger, property.Images)
		uc.published(ctx, logger, property, "")
	}
	logger.Info("owner properties deleted",
		"event", "property_owner_cascade",
		"module", moduleName,
		"layer", "application",
		"owner_id", ownerID,
		"count", len(removed),
	)
	return len(removed), nil
}

func (uc DeletePropertyUseCase) published(ctx context.Context, logger *slog.Logger, property entities.Property, actorID string) {
	now := property.UpdatedAt
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	publish(ctx, uc.Publisher, uc.IDGen, logger, TopicPropertyDeleted, property, now, map[string]any{
		"property_id": property.PropertyID,
		"owner_id":    property.OwnerID,
		"actor_id":    actorID,
	})
}
