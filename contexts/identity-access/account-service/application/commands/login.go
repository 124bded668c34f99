package commands

import (
	"context"
	"log/slog"

	application "estatehub/contexts/identity-access/account-service/application"
	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	"estatehub/contexts/identity-access/account-service/domain/services"
	"estatehub/contexts/identity-access/account-service/ports"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Tokens     ports.TokenIssuer
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute reports an unknown email as ErrUserNotFound and a wrong password as
// ErrInvalidCredentials.
func (uc LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (entities.Session, error) {
	logger := application.ResolveLogger(uc.Logger)
	email, err := services.NormalizeEmail(cmd.Email)
	if err != nil {
		return entities.Session{}, err
	}
	if cmd.Password == "" {
		return entities.Session{}, domainerrors.ErrInvalidCredentials
	}
	user, err := uc.Repository.GetUserByEmail(ctx, email)
	if err != nil {
		return entities.Session{}, err
	}
	if err := uc.Hasher.Compare(user.PasswordHash, cmd.Password); err != nil {
		logger.Info("login rejected",
			"event", "account_login_rejected",
			"module", moduleName,
			"layer", "application",
			"user_id", user.UserID,
		)
		return entities.Session{}, domainerrors.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.Tokens.Issue(entities.TokenClaims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role.String(),
	}, uc.Clock.Now().UTC())
	if err != nil {
		return entities.Session{}, err
	}

	logger.Info("user logged in",
		"event", "account_logged_in",
		"module", moduleName,
		"layer", "application",
		"user_id", user.UserID,
	)
	return entities.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
