package commands

import (
	"log/slog"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
)

func authorize(
	logger *slog.Logger,
	principal policyentities.Principal,
	ownerID string,
	action policyentities.Action,
) error {
	decision := policy.Decide(principal, ownerID, action)
	if decision.Allowed {
		return nil
	}
	logger.Info("property action denied",
		"event", "property_action_denied",
		"module", moduleName,
		"layer", "application",
		"action", string(decision.Action),
		"reason", decision.Reason,
		"user_id", principal.ID,
	)
	if !principal.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}
	return domainerrors.ErrForbidden
}
