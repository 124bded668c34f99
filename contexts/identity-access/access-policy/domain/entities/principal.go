package entities

import (
	"errors"
	"strings"
)

// Role is the closed set of capability classes a principal can hold.
type Role int

const (
	RoleNone Role = iota
	RoleBuyer
	RoleSeller
	RoleAdmin
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "buyer":
		return RoleBuyer, nil
	case "seller":
		return RoleSeller, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleNone, ErrUnknownRole
	}
}

func (r Role) String() string {
	switch r {
	case RoleBuyer:
		return "buyer"
	case RoleSeller:
		return "seller"
	case RoleAdmin:
		return "admin"
	default:
		return ""
	}
}

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleAdmin
}

// Principal is the acting identity resolved from a request credential.
// The zero value is the anonymous principal.
type Principal struct {
	ID   string
	Role Role
}

func Anonymous() Principal {
	return Principal{}
}

func NewPrincipal(id string, role Role) Principal {
	id = strings.TrimSpace(id)
	if id == "" || !role.Valid() {
		return Anonymous()
	}
	return Principal{ID: id, Role: role}
}

func (p Principal) Authenticated() bool {
	return p.ID != "" && p.Role.Valid()
}

func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.Role == RoleAdmin
}
