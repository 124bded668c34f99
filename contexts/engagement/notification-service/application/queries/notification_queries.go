package queries

import (
	"context"
	"log/slog"

	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"
	"estatehub/contexts/engagement/notification-service/ports"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
)

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// List returns the admin principal's own notifications, newest first.
func (uc QueryUseCase) List(ctx context.Context, principal policyentities.Principal) ([]entities.Notification, error) {
	if !principal.Authenticated() {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !policy.CanMutate(principal, principal.ID, policyentities.ActionNotificationRead) {
		return nil, domainerrors.ErrForbidden
	}
	return uc.Repository.ListByRecipient(ctx, principal.ID)
}
