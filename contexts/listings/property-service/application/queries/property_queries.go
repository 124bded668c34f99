package queries

import (
	"context"
	"log/slog"
	"strings"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
	application "estatehub/contexts/listings/property-service/application"
	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	"estatehub/contexts/listings/property-service/domain/services"
	"estatehub/contexts/listings/property-service/ports"
)

const DefaultLatestLimit = 6

type QueryUseCase struct {
	Repository ports.Repository
	Owners     ports.OwnerDirectory
	Images     ports.ImageStore
	Logger     *slog.Logger
}

// ListScoped returns every listing the principal may see: all for admins,
// own listings for everyone else, nothing for anonymous callers.
func (uc QueryUseCase) ListScoped(ctx context.Context, principal policyentities.Principal) ([]entities.Property, error) {
	scope := policy.ListingScope(principal)
	if scope.Kind == policy.ScopeNone {
		return []entities.Property{}, nil
	}
	filter := ports.PropertyFilter{}
	if scope.Kind == policy.ScopeOwner {
		filter.OwnerID = scope.OwnerID
	}
	items, err := uc.Repository.ListProperties(ctx, filter)
	if err != nil {
		return nil, err
	}
	return policy.ScopedProperties(principal, items), nil
}

// ListActive is the public catalogue.
func (uc QueryUseCase) ListActive(ctx context.Context) ([]entities.Property, error) {
	return uc.Repository.ListProperties(ctx, ports.PropertyFilter{
		Statuses: []entities.PropertyStatus{entities.PropertyStatusActive},
	})
}

// ListLatestActive returns up to limit newest active listings; limit <= 0 uses the default.
func (uc QueryUseCase) ListLatestActive(ctx context.Context, limit int) ([]entities.Property, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	return uc.Repository.ListProperties(ctx, ports.PropertyFilter{
		Statuses: []entities.PropertyStatus{entities.PropertyStatusActive},
		Limit:    limit,
	})
}

// Get is public and attaches the owner's contact card when it can be resolved.
func (uc QueryUseCase) Get(ctx context.Context, propertyID string) (entities.PropertyDetail, error) {
	property, err := uc.Repository.GetProperty(ctx, strings.TrimSpace(propertyID))
	if err != nil {
		return entities.PropertyDetail{}, err
	}
	detail := entities.PropertyDetail{Property: property}
	if uc.Owners == nil {
		return detail, nil
	}
	owner, err := uc.Owners.LookupOwner(ctx, property.OwnerID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("owner contact unavailable",
			"event", "property_owner_lookup_failed",
			"module", "listings/property-service",
			"layer", "application",
			"property_id", property.PropertyID,
			"owner_id", property.OwnerID,
			"error", err.Error(),
		)
		return detail, nil
	}
	detail.Owner = &owner
	return detail, nil
}

// Summary counts the principal's visible listings by status.
func (uc QueryUseCase) Summary(ctx context.Context, principal policyentities.Principal) (services.Summary, error) {
	if !principal.Authenticated() {
		return services.Summary{}, domainerrors.ErrUnauthenticated
	}
	items, err := uc.ListScoped(ctx, principal)
	if err != nil {
		return services.Summary{}, err
	}
	return services.Summarize(items), nil
}

func (uc QueryUseCase) Image(ctx context.Context, ref string) (entities.Image, error) {
	if uc.Images == nil {
		return entities.Image{}, domainerrors.ErrImageNotFound
	}
	return uc.Images.OpenImage(ctx, strings.TrimSpace(ref))
}
