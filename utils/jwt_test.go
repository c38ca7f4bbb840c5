package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(5, "rider", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, "rider", claims.Role)
	assert.False(t, claims.Expired())

	_, err = ParseToken(tok, "wrong-secret")
	assert.Error(t, err)
}

// PeekClaims reads the payload without the secret; that is all the client
// can do with a stored token.
func TestPeekClaims(t *testing.T) {
	tok, err := GenerateToken(9, "restaurant", "secret-the-client-never-has", time.Hour)
	require.NoError(t, err)

	claims, err := PeekClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "restaurant", claims.Role)

	_, err = PeekClaims("not-a-token")
	assert.Error(t, err)
}

func TestExpired(t *testing.T) {
	tok, err := GenerateToken(5, "customer", "secret", -time.Minute)
	require.NoError(t, err)
	claims, err := PeekClaims(tok)
	require.NoError(t, err)
	assert.True(t, claims.Expired())
}
