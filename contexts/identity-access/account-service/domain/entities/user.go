package entities

import (
	"time"

	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
)

type User struct {
	UserID       string
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         policyentities.Role
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal projects the account onto the identity the access policy reasons about.
func (u User) Principal() policyentities.Principal {
	return policyentities.NewPrincipal(u.UserID, u.Role)
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// TokenClaims is what a bearer token asserts about its holder.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}
