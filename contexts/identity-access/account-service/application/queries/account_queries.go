package queries

import (
	"context"
	"log/slog"
	"strings"

	application "estatehub/contexts/identity-access/account-service/application"
	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	"estatehub/contexts/identity-access/account-service/ports"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
)

type QueryUseCase struct {
	Repository ports.Repository
	Tokens     ports.TokenVerifier
	Logger     *slog.Logger
}

// ResolvePrincipal turns a bearer token into a principal. Missing, malformed,
// expired or orphaned tokens resolve to the anonymous principal. The role is
// read from the stored account so admin edits apply to live tokens.
func (uc QueryUseCase) ResolvePrincipal(ctx context.Context, token string) policyentities.Principal {
	token = strings.TrimSpace(token)
	if token == "" || uc.Tokens == nil {
		return policyentities.Anonymous()
	}
	claims, err := uc.Tokens.Verify(token)
	if err != nil {
		return policyentities.Anonymous()
	}
	user, err := uc.Repository.GetUser(ctx, claims.UserID)
	if err != nil {
		application.ResolveLogger(uc.Logger).Debug("token subject unavailable",
			"event", "account_token_orphaned",
			"module", "identity-access/account-service",
			"layer", "application",
			"user_id", claims.UserID,
			"error", err.Error(),
		)
		return policyentities.Anonymous()
	}
	return user.Principal()
}

func (uc QueryUseCase) Me(ctx context.Context, principal policyentities.Principal) (entities.User, error) {
	if !principal.Authenticated() {
		return entities.User{}, domainerrors.ErrUnauthenticated
	}
	return uc.Repository.GetUser(ctx, principal.ID)
}

func (uc QueryUseCase) List(ctx context.Context, principal policyentities.Principal) ([]entities.User, error) {
	if !principal.Authenticated() {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !policy.CanMutate(principal, "", policyentities.ActionUserList) {
		return nil, domainerrors.ErrForbidden
	}
	return uc.Repository.ListUsers(ctx, policyentities.RoleNone)
}

// ListAdminIDs feeds notification fan-out.
func (uc QueryUseCase) ListAdminIDs(ctx context.Context) ([]string, error) {
	admins, err := uc.Repository.ListUsers(ctx, policyentities.RoleAdmin)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(admins))
	for _, admin := range admins {
		ids = append(ids, admin.UserID)
	}
	return ids, nil
}

func (uc QueryUseCase) Get(ctx context.Context, userID string) (entities.User, error) {
	return uc.Repository.GetUser(ctx, strings.TrimSpace(userID))
}
