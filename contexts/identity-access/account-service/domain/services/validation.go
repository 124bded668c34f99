package services

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"
)

const MinPasswordLength = 8

var phonePattern = regexp.MustCompile(`^[0-9]{7,15}$`)

func ValidateFullName(value string) error {
	n := len([]rune(strings.TrimSpace(value)))
	if n < 2 || n > 50 {
		return invalid("full name must be between 2 and 50 characters")
	}
	return nil
}

// NormalizeEmail trims and lowercases value after checking its format.
func NormalizeEmail(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", invalid("email must be a valid address")
	}
	return value, nil
}

func ValidatePhone(value string) error {
	if !phonePattern.MatchString(strings.TrimSpace(value)) {
		return invalid("phone must contain 7 to 15 digits")
	}
	return nil
}

func ValidatePassword(value string) error {
	if len(value) < MinPasswordLength {
		return invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// ParseSignupRole accepts every role a user may pick at signup.
func ParseSignupRole(value string) (policyentities.Role, error) {
	role, err := policyentities.ParseRole(value)
	if err != nil {
		return policyentities.RoleNone, invalid("role must be one of seller, buyer, admin")
	}
	return role, nil
}

// ParseAdminAssignedRole restricts admin edits to the seller and admin roles.
func ParseAdminAssignedRole(value string) (policyentities.Role, error) {
	role, err := policyentities.ParseRole(value)
	if err != nil || (role != policyentities.RoleSeller && role != policyentities.RoleAdmin) {
		return policyentities.RoleNone, invalid("role must be one of seller, admin")
	}
	return role, nil
}

func invalid(detail string) error {
	return fmt.Errorf("%w: %s", domainerrors.ErrInvalidInput, detail)
}
