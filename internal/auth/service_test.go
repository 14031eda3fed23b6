package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/BudgetManager/internal/user"
)

func newTestAuthService(t *testing.T) (Service, user.Service) {
	t.Helper()
	userService := user.NewUserService(&user.MockUserRepository{})
	return NewAuthService(&MockTokenRepository{}, userService), userService
}

func TestLogin_Success(t *testing.T) {
	authService, userService := newTestAuthService(t)

	_, err := userService.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	token, err := authService.Login("testuser", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, userService := newTestAuthService(t)

	_, err := userService.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	token, err := authService.Login("testuser", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLogin_NonexistentUser(t *testing.T) {
	authService, _ := newTestAuthService(t)

	token, err := authService.Login("ghost", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestResolve_RoundTrip(t *testing.T) {
	authService, userService := newTestAuthService(t)

	registered, err := userService.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	token, err := authService.Login("testuser", "supersecret")
	require.NoError(t, err)

	resolved, err := authService.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)
	assert.Equal(t, "testuser", resolved.Username)
}

func TestResolve_UnknownToken(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.Resolve("deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolve_EmptyToken(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_EachLoginIssuesFreshToken(t *testing.T) {
	authService, userService := newTestAuthService(t)

	_, err := userService.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	first, err := authService.Login("testuser", "supersecret")
	require.NoError(t, err)
	second, err := authService.Login("testuser", "supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both stay valid, there is no rotation on login.
	_, err = authService.Resolve(first)
	assert.NoError(t, err)
	_, err = authService.Resolve(second)
	assert.NoError(t, err)
}
