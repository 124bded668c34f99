package commands

import (
	"context"
	"log/slog"
	"strings"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	application "estatehub/contexts/listings/property-service/application"
	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	"estatehub/contexts/listings/property-service/domain/services"
	"estatehub/contexts/listings/property-service/ports"
)

type EditPropertyCommand struct {
	Principal  policyentities.Principal
	PropertyID string
	Fields     services.Fields
	// Uploads, when non-empty, replace the whole image sequence.
	Uploads []entities.Image
}

type EditPropertyUseCase struct {
	Repository ports.Repository
	Images     ports.ImageStore
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc EditPropertyUseCase) Execute(ctx context.Context, cmd EditPropertyCommand) (entities.Property, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !cmd.Principal.Authenticated() {
		return entities.Property{}, domainerrors.ErrUnauthenticated
	}
	current, err := uc.Repository.GetProperty(ctx, strings.TrimSpace(cmd.PropertyID))
	if err != nil {
		return entities.Property{}, err
	}
	if err := authorize(logger, cmd.Principal, current.OwnerID, policyentities.ActionPropertyEdit); err != nil {
		return entities.Property{}, err
	}

	next, err := services.Apply(current, cmd.Fields)
	if err != nil {
		return entities.Property{}, err
	}
	if cmd.Fields.HasStatus() {
		if err := authorize(logger, cmd.Principal, current.OwnerID, policyentities.ActionPropertyFullEdit); err != nil {
			return entities.Property{}, err
		}
		status, err := services.FullEditStatus(*cmd.Fields.Status)
		if err != nil {
			return entities.Property{}, err
		}
		next.Status = status
	}

	replaced := len(cmd.Uploads) > 0
	if replaced {
		images, err := saveImages(ctx, uc.Images, cmd.Uploads)
		if err != nil {
			return entities.Property{}, err
		}
		next.Images = images
	}

	now := uc.Clock.Now().UTC()
	next.UpdatedAt = now
	if err := uc.Repository.UpdateProperty(ctx, next); err != nil {
		if replaced {
			discardImages(ctx, uc.Images, logger, next.Images)
		}
		return entities.Property{}, err
	}
	if replaced {
		discardImages(ctx, uc.Images, logger, current.Images)
	}

	logger.Info("property edited",
		"event", "property_edited",
		"module", moduleName,
		"layer", "application",
		"property_id", next.PropertyID,
		"actor_id", cmd.Principal.ID,
		"images_replaced", replaced,
	)
	if next.Status != current.Status {
		publish(ctx, uc.Publisher, uc.IDGen, logger, TopicPropertyStatusChanged, next, now, map[string]any{
			"property_id": next.PropertyID,
			"from":        string(current.Status),
			"to":          string(next.Status),
			"actor_id":    cmd.Principal.ID,
		})
	}
	return next, nil
}
