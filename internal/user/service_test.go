package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	user, err := service.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "testuser", user.Username)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.True(t, service.CheckPassword(user, "supersecret"))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	_, err := service.Register("testuser", "", "supersecret", "different-secret")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, repo.Users, "no user should be persisted on mismatch")
}

func TestRegister_PasswordTooShort(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	_, err := service.Register("testuser", "", "short", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	exists, err := repo.userExistsByID(mockUserID(1))
	require.NoError(t, err)
	assert.False(t, exists, "no user should be persisted when the password is too short")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	_, err := service.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	_, err = service.Register("testuser", "", "anothersecret", "anothersecret")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	assert.Len(t, repo.Users, 1)
}

func TestRegister_InvalidEmail(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	_, err := service.Register("testuser", "not-an-email", "supersecret", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegister_EmptyUsername(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	_, err := service.Register("", "", "supersecret", "supersecret")
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestUpdateProfile_ChangePassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	user, err := service.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)
	oldHash := user.PasswordHash

	newPassword := "evenmoresecret"
	updated, err := service.UpdateProfile(user.ID, ProfileUpdate{Password: &newPassword})
	require.NoError(t, err)

	assert.NotEqual(t, oldHash, updated.PasswordHash, "password change must re-hash")
	assert.True(t, service.CheckPassword(updated, newPassword))
	assert.False(t, service.CheckPassword(updated, "supersecret"))
}

func TestUpdateProfile_ChangeUsername(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	user, err := service.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	newUsername := "renameduser"
	updated, err := service.UpdateProfile(user.ID, ProfileUpdate{Username: &newUsername})
	require.NoError(t, err)
	assert.Equal(t, "renameduser", updated.Username)
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	_, err := service.Register("firstuser", "", "supersecret", "supersecret")
	require.NoError(t, err)
	second, err := service.Register("seconduser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	taken := "firstuser"
	_, err = service.UpdateProfile(second.ID, ProfileUpdate{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestUpdateProfile_ShortPasswordRejected(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	user, err := service.Register("testuser", "", "supersecret", "supersecret")
	require.NoError(t, err)

	short := "short"
	_, err = service.UpdateProfile(user.ID, ProfileUpdate{Password: &short})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.True(t, service.CheckPassword(user, "supersecret"), "old password must still work")
}
