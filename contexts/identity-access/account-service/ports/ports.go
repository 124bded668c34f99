package ports

import (
	"context"
	"time"

	"estatehub/contexts/identity-access/account-service/domain/entities"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
)

type Repository interface {
	CreateUser(ctx context.Context, user entities.User) error
	UpdateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	// ListUsers returns every account newest first; a non-zero role narrows the set.
	ListUsers(ctx context.Context, role policyentities.Role) ([]entities.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type TokenIssuer interface {
	Issue(claims entities.TokenClaims, now time.Time) (string, time.Time, error)
}

type TokenVerifier interface {
	Verify(token string) (entities.TokenClaims, error)
}

// PropertyCascade removes every listing owned by a user before the user goes away.
type PropertyCascade interface {
	DeleteByOwner(ctx context.Context, ownerID string) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
