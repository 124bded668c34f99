package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	application "estatehub/contexts/identity-access/account-service/application"
	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	"estatehub/contexts/identity-access/account-service/domain/services"
	"estatehub/contexts/identity-access/account-service/ports"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
	policy "estatehub/contexts/identity-access/access-policy/domain/services"
)

type UpdateProfileCommand struct {
	Principal       policyentities.Principal
	UserID          string
	FullName        *string
	Phone           *string
	CurrentPassword string
	NewPassword     string
}

type AdminUpdateCommand struct {
	Principal   policyentities.Principal
	UserID      string
	FullName    *string
	Email       *string
	Phone       *string
	Role        *string
	NewPassword string
}

type UpdateUserUseCase struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Clock      ports.Clock
	Logger     *slog.Logger
}

// UpdateProfile lets a user (or an admin) change name, phone and password.
// A new password needs the current one.
func (uc UpdateUserUseCase) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (entities.User, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := authorize(cmd.Principal, cmd.UserID, policyentities.ActionUserProfileEdit); err != nil {
		return entities.User{}, err
	}
	user, err := uc.Repository.GetUser(ctx, strings.TrimSpace(cmd.UserID))
	if err != nil {
		return entities.User{}, err
	}
	if err := applyNameAndPhone(&user, cmd.FullName, cmd.Phone); err != nil {
		return entities.User{}, err
	}
	if cmd.NewPassword != "" {
		if cmd.CurrentPassword == "" {
			return entities.User{}, fmt.Errorf("%w: current password is required to set a new one", domainerrors.ErrInvalidInput)
		}
		if err := uc.Hasher.Compare(user.PasswordHash, cmd.CurrentPassword); err != nil {
			if errors.Is(err, domainerrors.ErrInvalidCredentials) {
				return entities.User{}, fmt.Errorf("%w: current password is incorrect", domainerrors.ErrInvalidInput)
			}
			return entities.User{}, err
		}
		if err := uc.setPassword(&user, cmd.NewPassword); err != nil {
			return entities.User{}, err
		}
	}
	if err := uc.save(ctx, &user); err != nil {
		return entities.User{}, err
	}

	logger.Info("profile updated",
		"event", "account_profile_updated",
		"module", moduleName,
		"layer", "application",
		"user_id", user.UserID,
		"actor_id", cmd.Principal.ID,
		"password_changed", cmd.NewPassword != "",
	)
	return user, nil
}

// AdminUpdate is the admin edit of any account, including its role.
func (uc UpdateUserUseCase) AdminUpdate(ctx context.Context, cmd AdminUpdateCommand) (entities.User, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := authorize(cmd.Principal, cmd.UserID, policyentities.ActionUserEdit); err != nil {
		return entities.User{}, err
	}
	user, err := uc.Repository.GetUser(ctx, strings.TrimSpace(cmd.UserID))
	if err != nil {
		return entities.User{}, err
	}
	if err := applyNameAndPhone(&user, cmd.FullName, cmd.Phone); err != nil {
		return entities.User{}, err
	}
	if cmd.Email != nil {
		email, err := services.NormalizeEmail(*cmd.Email)
		if err != nil {
			return entities.User{}, err
		}
		if email != user.Email {
			existing, err := uc.Repository.GetUserByEmail(ctx, email)
			switch {
			case err == nil && existing.UserID != user.UserID:
				return entities.User{}, domainerrors.ErrEmailTaken
			case err != nil && !errors.Is(err, domainerrors.ErrUserNotFound):
				return entities.User{}, err
			}
			user.Email = email
		}
	}
	if cmd.Role != nil {
		role, err := services.ParseAdminAssignedRole(*cmd.Role)
		if err != nil {
			return entities.User{}, err
		}
		user.Role = role
	}
	if cmd.NewPassword != "" {
		if err := uc.setPassword(&user, cmd.NewPassword); err != nil {
			return entities.User{}, err
		}
	}
	if err := uc.save(ctx, &user); err != nil {
		return entities.User{}, err
	}

	logger.Info("user updated by admin",
		"event", "account_admin_updated",
		"module", moduleName,
		"layer", "application",
		"user_id", user.UserID,
		"actor_id", cmd.Principal.ID,
		"role", user.Role.String(),
	)
	return user, nil
}

func (uc UpdateUserUseCase) setPassword(user *entities.User, password string) error {
	if err := services.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := uc.Hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}

func (uc UpdateUserUseCase) save(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = uc.Clock.Now().UTC()
	return uc.Repository.UpdateUser(ctx, *user)
}

func applyNameAndPhone(user *entities.User, fullName *string, phone *string) error {
	if fullName != nil {
		name := strings.TrimSpace(*fullName)
		if err := services.ValidateFullName(name); err != nil {
			return err
		}
		user.FullName = name
	}
	if phone != nil {
		value := strings.TrimSpace(*phone)
		if err := services.ValidatePhone(value); err != nil {
			return err
		}
		user.Phone = value
	}
	return nil
}

func authorize(principal policyentities.Principal, ownerID string, action policyentities.Action) error {
	if !principal.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}
	if !policy.CanMutate(principal, strings.TrimSpace(ownerID), action) {
		return domainerrors.ErrForbidden
	}
	return nil
}
