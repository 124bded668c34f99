package commands

import (
	"context"
	"log/slog"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
	application "estatehub/contexts/listings/property-service/application"
	"estatehub/contexts/listings/property-service/domain/entities"
	"estatehub/contexts/listings/property-service/domain/services"
	"estatehub/contexts/listings/property-service/ports"
)

type SubmitPropertyCommand struct {
	Principal policyentities.Principal
	Fields    services.Fields
	Uploads   []entities.Image
}

type SubmitPropertyUseCase struct {
	Repository ports.Repository
	Images     ports.ImageStore
	Notifier   ports.AdminNotifier
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc SubmitPropertyUseCase) Execute(ctx context.Context, cmd SubmitPropertyCommand) (entities.Property, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := authorize(logger, cmd.Principal, "", policyentities.ActionPropertyCreate); err != nil {
		return entities.Property{}, err
	}

	mayChooseStatus := policy.CanMutate(cmd.Principal, "", policyentities.ActionPropertySetStatus)
	status, err := services.InitialStatus(cmd.Fields.Status, mayChooseStatus)
	if err != nil {
		return entities.Property{}, err
	}
	property, err := services.Apply(entities.Property{}, cmd.Fields)
	if err != nil {
		return entities.Property{}, err
	}

	propertyID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Property{}, err
	}
	images, err := saveImages(ctx, uc.Images, cmd.Uploads)
	if err != nil {
		return entities.Property{}, err
	}

	now := uc.Clock.Now().UTC()
	property.PropertyID = propertyID
	property.OwnerID = cmd.Principal.ID
	property.Status = status
	property.Images = images
	property.CreatedAt = now
	property.UpdatedAt = now
	if err := uc.Repository.CreateProperty(ctx, property); err != nil {
		discardImages(ctx, uc.Images, logger, images)
		return entities.Property{}, err
	}

	logger.Info("property submitted",
		"event", "property_submitted",
		"module", moduleName,
		"layer", "application",
		"property_id", property.PropertyID,
		"owner_id", property.OwnerID,
		"status", string(property.Status),
	)

	if uc.Notifier != nil {
		if err := uc.Notifier.NotifyPropertySubmitted(ctx, property); err != nil {
			logger.Warn("admin fan-out incomplete",
				"event", "property_admin_fanout_failed",
				"module", moduleName,
				"layer", "application",
				"property_id", property.PropertyID,
				"error", err.Error(),
			)
		}
	}
	publish(ctx, uc.Publisher, uc.IDGen, logger, TopicPropertySubmitted, property, now, map[string]any{
		"property_id": property.PropertyID,
		"owner_id":    property.OwnerID,
		"title":       property.Title,
		"status":      string(property.Status),
	})
	return property, nil
}
