package accountservice

import (
	"log/slog"
	"time"

	httpadapter "estatehub/contexts/identity-access/account-service/adapters/http"
	"estatehub/contexts/identity-access/account-service/adapters/memory"
	"estatehub/contexts/identity-access/account-service/adapters/security"
	"estatehub/contexts/identity-access/account-service/application/commands"
	"estatehub/contexts/identity-access/account-service/application/queries"
	"estatehub/contexts/identity-access/account-service/domain/entities"
	"estatehub/contexts/identity-access/account-service/ports"

	"golang.org/x/crypto/bcrypt"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Issuer     ports.TokenIssuer
	Verifier   ports.TokenVerifier
	Properties ports.PropertyCascade
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			SignUp: commands.SignUpUseCase{
				Repository: deps.Repository,
				Hasher:     deps.Hasher,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Login: commands.LoginUseCase{
				Repository: deps.Repository,
				Hasher:     deps.Hasher,
				Tokens:     deps.Issuer,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			UpdateUser: commands.UpdateUserUseCase{
				Repository: deps.Repository,
				Hasher:     deps.Hasher,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			DeleteUser: commands.DeleteUserUseCase{
				Repository: deps.Repository,
				Properties: deps.Properties,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Repository: deps.Repository,
				Tokens:     deps.Verifier,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires memory storage with a real JWT signer and a cheap
// bcrypt cost. properties may be nil until the listings module exists.
func NewInMemoryModule(seed []entities.User, secret string, properties ports.PropertyCascade, logger *slog.Logger) (Module, error) {
	store := memory.NewStore(seed)
	tokens, err := security.NewJWT(secret, time.Hour, "estatehub")
	if err != nil {
		return Module{}, err
	}
	module := NewModule(Dependencies{
		Repository: store,
		Hasher:     security.BcryptHasher{Cost: bcrypt.MinCost},
		Issuer:     tokens,
		Verifier:   tokens,
		Properties: properties,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module, nil
}
