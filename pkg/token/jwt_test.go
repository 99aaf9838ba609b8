package token

import (
	"testing"

	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	signer := NewSigner(utils.JWTConfig{Secret: "secret", ExpiryHours: 1})
	userID := uuid.New()

	signed, err := signer.Sign(userID, "jane")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := signer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "jane", claims.Username)

	parsed, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewSigner(utils.JWTConfig{Secret: "secret", ExpiryHours: 1})
	other := NewSigner(utils.JWTConfig{Secret: "different", ExpiryHours: 1})

	signed, err := signer.Sign(uuid.New(), "jane")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := NewSigner(utils.JWTConfig{Secret: "secret", ExpiryHours: 1})

	_, err := signer.Verify("not.a.token")
	assert.Error(t, err)

	_, err = signer.Verify("")
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	signer := NewSigner(utils.JWTConfig{Secret: "secret", ExpiryHours: -1})

	signed, err := signer.Sign(uuid.New(), "jane")
	require.NoError(t, err)

	_, err = signer.Verify(signed)
	assert.Error(t, err)
}
