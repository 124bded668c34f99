package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"estatehub/contexts/identity-access/account-service/adapters/security"
	accounthttp "estatehub/contexts/identity-access/account-service/transport/http"
	"estatehub/internal/platform/config"
	"estatehub/internal/platform/messaging"
)

type AdminInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// RunMigrations creates or updates every table and index of the configured
// storage driver.
func RunMigrations(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.LogLevel, os.Stderr).With("service", cfg.ServiceName, "process", "migrate")
	storage, err := OpenStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close() }()
	if err := storage.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("storage migrated",
		"event", "bootstrap_storage_migrated",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"storage", storage.Driver,
	)
	return nil
}

// SeedAdmin opens the configured storage and registers an admin account.
func SeedAdmin(ctx context.Context, input AdminInput) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	logger := NewLogger(cfg.LogLevel, os.Stderr).With("service", cfg.ServiceName, "process", "create-admin")
	storage, err := OpenStorage(cfg, logger)
	if err != nil {
		return "", err
	}
	defer func() { _ = storage.Close() }()
	if err := storage.Migrate(ctx); err != nil {
		return "", err
	}
	tokens, err := security.NewJWT(cfg.JWTSecret, cfg.JWTTTL, cfg.ServiceName)
	if err != nil {
		return "", err
	}
	return CreateAdmin(ctx, storage, tokens, logger, input)
}

// CreateAdmin signs up an admin through the account context so the usual
// email and password rules apply.
func CreateAdmin(ctx context.Context, storage *Storage, tokens *security.JWT, logger *slog.Logger, input AdminInput) (string, error) {
	bus := messaging.NewBus(0, logger)
	defer func() { _ = bus.Close() }()

	modules := BuildModules(Wiring{
		Storage: storage,
		Bus:     bus,
		Tokens:  tokens,
		Logger:  logger,
	})
	resp, err := modules.Accounts.Handler.SignUpHandler(ctx, accounthttp.SignUpRequest{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
		Role:     "admin",
	})
	if err != nil {
		return "", err
	}
	return resp.User.UserID, nil
}
