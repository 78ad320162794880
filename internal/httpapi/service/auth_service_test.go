package service

import (
	"testing"
	"time"

	"campuseats/internal/config"
	"campuseats/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestService(t *testing.T) (AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	cfg := &config.Config{
		JWTSecret:       "test-secret-key-test-secret-key!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	svc := NewAuthService(
		repository.NewUserRepository(env.db),
		repository.NewRefreshTokenRepository(env.db),
		cfg,
	)
	return svc, env
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		FullName: "Test User",
		Username: username,
		Email:    username + "@campus.edu",
		Password: "s3cret-pass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthTestService(t)

	user, err := svc.Register(registerInput("alice"))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	// Login works by username and by email.
	access, refresh, got, err := svc.Login("alice", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user.ID, got.ID)

	_, _, _, err = svc.Login("alice@campus.edu", "s3cret-pass")
	require.NoError(t, err)

	_, _, _, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login("nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newAuthTestService(t)

	_, err := svc.Register(registerInput("alice"))
	require.NoError(t, err)

	_, err = svc.Register(registerInput("alice"))
	assert.ErrorIs(t, err, ErrNameInUse)

	dup := registerInput("alice2")
	dup.Email = "alice@campus.edu"
	_, err = svc.Register(dup)
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestValidateToken(t *testing.T) {
	svc, _ := newAuthTestService(t)

	user, err := svc.Register(registerInput("alice"))
	require.NoError(t, err)

	access, _, _, err := svc.Login("alice", "s3cret-pass")
	require.NoError(t, err)

	userID, username, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "alice", username)

	_, _, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAndLogout(t *testing.T) {
	svc, _ := newAuthTestService(t)

	user, err := svc.Register(registerInput("alice"))
	require.NoError(t, err)

	_, refresh, _, err := svc.Login("alice", "s3cret-pass")
	require.NoError(t, err)

	access, err := svc.RefreshAccessToken(refresh)
	require.NoError(t, err)
	userID, _, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// Logout revokes stored refresh tokens.
	require.NoError(t, svc.Logout(user.ID))
	_, err = svc.RefreshAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
