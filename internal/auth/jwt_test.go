package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService("test-secret-key-for-pos-terminal", 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateAccessToken("emp-1", "Li Ming", "cashier")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, "Li Ming", claims.Name)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, "emp-1", claims.Subject)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService("another-secret-entirely-here", 15*time.Minute, time.Hour)

	token, _, err := svc.GenerateAccessToken("emp-1", "Li Ming", "manager")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-pos-terminal", -time.Minute, time.Hour)

	token, _, err := svc.GenerateAccessToken("emp-1", "Li Ming", "cashier")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("emp-42")
	require.NoError(t, err)

	employeeID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-42", employeeID)
}

func TestRefreshTokenRejectedAsAccessClaims(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("emp-42")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refresh)
	// A refresh token has no employee claims; it still parses, but must not
	// carry a role.
	if err == nil {
		assert.Empty(t, claims.Role)
		assert.Empty(t, claims.EmployeeID)
	}
}
