package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = time.Hour

type claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 bearer tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewJWT(secret string, ttl time.Duration, issuer string) (*JWT, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWT{secret: []byte(secret), ttl: ttl, issuer: issuer}, nil
}

func (j *JWT) Issue(subject entities.TokenClaims, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(j.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:  subject.Role,
		Email: subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWT) Verify(raw string) (entities.TokenClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		options = append(options, jwt.WithIssuer(j.issuer))
	}
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}, options...)
	if err != nil {
		return entities.TokenClaims{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidToken, err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || strings.TrimSpace(c.Subject) == "" {
		return entities.TokenClaims{}, domainerrors.ErrInvalidToken
	}
	return entities.TokenClaims{
		UserID: c.Subject,
		Email:  c.Email,
		Role:   c.Role,
	}, nil
}
