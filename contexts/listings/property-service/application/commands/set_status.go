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

type SetStatusCommand struct {
	Principal  policyentities.Principal
	PropertyID string
	Status     string
}

// SetStatusUseCase is the admin quick-toggle between Pending and Active.
type SetStatusUseCase struct {
	Repository ports.Repository
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc SetStatusUseCase) Execute(ctx context.Context, cmd SetStatusCommand) (entities.Property, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := authorize(logger, cmd.Principal, "", policyentities.ActionPropertySetStatus); err != nil {
		return entities.Property{}, err
	}
	requested, ok := entities.ParsePropertyStatus(cmd.Status)
	if !ok || !requested.Toggleable() {
		return entities.Property{}, domainerrors.ErrInvalidStatus
	}

	property, err := uc.Repository.GetProperty(ctx, strings.TrimSpace(cmd.PropertyID))
	if err != nil {
		return entities.Property{}, err
	}
	next, err := services.Toggle(property.Status, string(requested))
	if err != nil {
		return entities.Property{}, err
	}

	previous := property.Status
	now := uc.Clock.Now().UTC()
	property.Status = next
	property.UpdatedAt = now
	if err := uc.Repository.UpdateProperty(ctx, property); err != nil {
		return entities.Property{}, err
	}

	logger.Info("property status changed",
		"event", "property_status_changed",
		"module", moduleName,
		"layer", "application",
		"property_id", property.PropertyID,
		"from", string(previous),
		"to", string(next),
		"actor_id", cmd.Principal.ID,
	)
	if previous != next {
		publish(ctx, uc.Publisher, uc.IDGen, logger, TopicPropertyStatusChanged, property, now, map[string]any{
			"property_id": property.PropertyID,
			"from":        string(previous),
			"to":          string(next),
			"actor_id":    cmd.Principal.ID,
		})
	}
	return property, nil
}
