package queries

import (
	"context"
	"log/slog"

	application "estatehub/contexts/engagement/contact-service/application"
	"estatehub/contexts/engagement/contact-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/contact-service/domain/errors"
	"estatehub/contexts/engagement/contact-service/ports"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
)

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) List(ctx context.Context, principal policyentities.Principal) ([]entities.Contact, error) {
	if !principal.Authenticated() {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !policy.CanMutate(principal, "", policyentities.ActionContactList) {
		application.ResolveLogger(uc.Logger).Info("contact list denied",
			"event", "contact_list_denied",
			"module", "engagement/contact-service",
			"layer", "application",
			"actor_id", principal.ID,
		)
		return nil, domainerrors.ErrForbidden
	}
	return uc.Repository.ListContacts(ctx)
}
