package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "estatehub/contexts/identity-access/account-service/application"
	"estatehub/contexts/identity-access/account-service/ports"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
)

type DeleteUserCommand struct {
	Principal policyentities.Principal
	UserID    string
}

type DeleteUserUseCase struct {
	Repository ports.Repository
	Properties ports.PropertyCascade
	Logger     *slog.Logger
}

// Execute deletes the user's listings first and the account second, so a
// failure part way never leaves listings without an owner.
func (uc DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := authorize(cmd.Principal, "", policyentities.ActionUserDelete); err != nil {
		return err
	}
	user, err := uc.Repository.GetUser(ctx, strings.TrimSpace(cmd.UserID))
	if err != nil {
		return err
	}

	removed := 0
	if uc.Properties != nil {
		removed, err = uc.Properties.DeleteByOwner(ctx, user.UserID)
		if err != nil {
			return fmt.Errorf("delete properties of user %s: %w", user.UserID, err)
		}
	}
	if err := uc.Repository.DeleteUser(ctx, user.UserID); err != nil {
		return err
	}

	logger.Info("user deleted",
		"event", "account_deleted",
		"module", moduleName,
		"layer", "application",
		"user_id", user.UserID,
		"actor_id", cmd.Principal.ID,
		"properties_removed", removed,
	)
	return nil
}
