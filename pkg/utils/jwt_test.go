package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "chek-api")

	token, err := manager.GenerateAccessToken(42, "taras")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "taras", claims.Username)
	require.Equal(t, "chek-api", claims.Issuer)
	require.Equal(t, "42", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issued := NewJWTManager("secret-a", time.Hour, "chek-api")
	verifier := NewJWTManager("secret-b", time.Hour, "chek-api")

	token, err := issued.GenerateAccessToken(1, "alice")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute, "chek-api")

	token, err := manager.GenerateAccessToken(1, "alice")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "chek-api")

	_, err := manager.ValidateAccessToken("not-a-token")
	require.Error(t, err)
}
