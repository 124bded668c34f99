package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "estatehub/contexts/identity-access/account-service/application"
	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	"estatehub/contexts/identity-access/account-service/domain/services"
	"estatehub/contexts/identity-access/account-service/ports"
)

const moduleName = "identity-access/account-service"

type SignUpCommand struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
}

type SignUpUseCase struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc SignUpUseCase) Execute(ctx context.Context, cmd SignUpCommand) (entities.User, error) {
	logger := application.ResolveLogger(uc.Logger)
	fullName := strings.TrimSpace(cmd.FullName)
	if err := services.ValidateFullName(fullName); err != nil {
		return entities.User{}, err
	}
	email, err := services.NormalizeEmail(cmd.Email)
	if err != nil {
		return entities.User{}, err
	}
	phone := strings.TrimSpace(cmd.Phone)
	if err := services.ValidatePhone(phone); err != nil {
		return entities.User{}, err
	}
	if err := services.ValidatePassword(cmd.Password); err != nil {
		return entities.User{}, err
	}
	role, err := services.ParseSignupRole(cmd.Role)
	if err != nil {
		return entities.User{}, err
	}

	if _, err := uc.Repository.GetUserByEmail(ctx, email); err == nil {
		return entities.User{}, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return entities.User{}, err
	}

	hash, err := uc.Hasher.Hash(cmd.Password)
	if err != nil {
		return entities.User{}, err
	}
	userID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := uc.Clock.Now().UTC()
	user := entities.User{
		UserID:       userID,
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Repository.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	logger.Info("user signed up",
		"event", "account_signed_up",
		"module", moduleName,
		"layer", "application",
		"user_id", user.UserID,
		"role", user.Role.String(),
	)
	return user, nil
}
