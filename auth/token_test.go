package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront-api/apierror"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", subject)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.True(t, apierror.IsKind(err, apierror.TokenExpired))
}

func TestVerifyTampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	require.True(t, apierror.IsKind(err, apierror.TokenInvalid))

	_, err = svc.Verify("not.a.token")
	require.True(t, apierror.IsKind(err, apierror.TokenInvalid))
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Verify(token)
	require.True(t, apierror.IsKind(err, apierror.TokenInvalid))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Passw0rd1", 4)
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd1", hash)
	require.True(t, CheckPassword(hash, "Passw0rd1"))
	require.False(t, CheckPassword(hash, "Passw0rd2"))
}
