package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	// The signing key is irrelevant: the terminal never verifies signatures
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestInspectValidToken(t *testing.T) {
	token := signedToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TenantID: "tenant-a",
		Username: "operador",
	})

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", claims.TenantID)
	assert.Equal(t, "operador", claims.Username)
	assert.True(t, IsUsable(token))
}

func TestInspectExpiredToken(t *testing.T) {
	token := signedToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Username: "operador",
	})

	claims, err := Inspect(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	// claims are still returned so the caller can show who expired
	require.NotNil(t, claims)
	assert.Equal(t, "operador", claims.Username)
	assert.False(t, IsUsable(token))
}

func TestInspectTokenWithoutExpiry(t *testing.T) {
	token := signedToken(t, Claims{Username: "operador"})

	_, err := Inspect(token)
	assert.NoError(t, err)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Inspect("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.False(t, IsUsable(""))
}
