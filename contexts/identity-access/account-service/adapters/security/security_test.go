package security

import (
	"testing"
	"time"

	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	issuer, err := NewJWT("test-secret", time.Hour, "estatehub")
	require.NoError(t, err)

	token, expiresAt, err := issuer.Issue(entities.TokenClaims{UserID: "u1", Email: "u1@example.com", Role: "seller"}, time.Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, entities.TokenClaims{UserID: "u1", Email: "u1@example.com", Role: "seller"}, claims)
}

func TestJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer, err := NewJWT("test-secret", time.Minute, "estatehub")
	require.NoError(t, err)

	expired, _, err := issuer.Issue(entities.TokenClaims{UserID: "u1", Role: "admin"}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = issuer.Verify(expired)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	other, err := NewJWT("other-secret", time.Minute, "estatehub")
	require.NoError(t, err)
	foreign, _, err := other.Issue(entities.TokenClaims{UserID: "u1", Role: "admin"}, time.Now())
	require.NoError(t, err)
	_, err = issuer.Verify(foreign)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTRejectsTokenFromAnotherIssuer(t *testing.T) {
	issuer, err := NewJWT("shared-secret", time.Hour, "estatehub")
	require.NoError(t, err)
	billing, err := NewJWT("shared-secret", time.Hour, "billing")
	require.NoError(t, err)

	token, _, err := billing.Issue(entities.TokenClaims{UserID: "u1", Role: "admin"}, time.Now())
	require.NoError(t, err)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	_, err = billing.Verify(token)
	assert.NoError(t, err)
}

func TestNewJWTRequiresSecret(t *testing.T) {
	_, err := NewJWT(" ", time.Hour, "")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse"))
	assert.ErrorIs(t, hasher.Compare(hash, "battery staple"), domainerrors.ErrInvalidCredentials)
}
