package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reeltrivia/internal/config"
)

func testAuthService() *AuthService {
	return NewAuthService(&config.Config{
		HostUsername: "host",
		HostPassword: "secret",
		JWTSecret:    "test-signing-key",
	})
}

func TestLoginAndValidate(t *testing.T) {
	svc := testAuthService()

	resp, err := svc.Login("host", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, len(resp.HostID) > len("host_"))

	claims, err := svc.ValidateHostToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.HostID, claims.HostID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := testAuthService()

	_, err := svc.Login("host", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("admin", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateRejectsForeignToken(t *testing.T) {
	svc := testAuthService()
	other := NewAuthService(&config.Config{
		HostUsername: "host",
		HostPassword: "secret",
		JWTSecret:    "a-different-key",
	})

	resp, err := other.Login("host", "secret")
	require.NoError(t, err)

	_, err = svc.ValidateHostToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := testAuthService().ValidateHostToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
