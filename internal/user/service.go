package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
	bcryptCost        = 12
)

var (
	ErrPasswordMismatch      = errors.New("the two password fields didn't match")
	ErrPasswordTooShort      = fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	ErrUsernameRequired      = errors.New("username is required")
	ErrUsernameTooLong       = fmt.Errorf("username is too long, max length: %d", maxUsernameLength)
	ErrUsernameAlreadyExists = errors.New("user with this username already exists")
	ErrInvalidEmail          = errors.New("email address is not valid")
	ErrInternalError         = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// ProfileUpdate carries the fields of a partial profile update. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
}

type Service interface {
	Register(username, email, password, passwordConfirm string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	DoesUserExist(userID string) (bool, error)
	UpdateProfile(userID string, update ProfileUpdate) (*User, error)
	CheckPassword(user *User, password string) bool
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)

	return string(hashedPasswordBytes), err
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates a new user. The plaintext password and its confirmation
// are validated and discarded, only the bcrypt hash is stored.
func (s *service) Register(username, email, password, passwordConfirm string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	if password != passwordConfirm {
		return nil, ErrPasswordMismatch
	}

	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if email != "" {
		if err := validateEmailAddress(email); err != nil {
			return nil, err
		}
	}

	existingUser, err := s.repo.getUserByUsername(username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrUsernameAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.repo.createUser(user); err != nil {
		return nil, ErrInternalError
	}

	return user, nil
}

// UpdateProfile applies a partial update to the authenticated user's own
// record. A changed password is re-hashed, nothing is ever written for any
// identity other than the one resolved from the token.
func (s *service) UpdateProfile(userID string, update ProfileUpdate) (*User, error) {
	user, err := s.repo.getUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalError
	}

	if update.Username != nil && *update.Username != user.Username {
		if err := validateUsername(*update.Username); err != nil {
			return nil, err
		}
		existingUser, err := s.repo.getUserByUsername(*update.Username)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, ErrInternalError
		}
		if existingUser != nil {
			return nil, ErrUsernameAlreadyExists
		}
		user.Username = *update.Username
	}

	if update.Email != nil && *update.Email != "" {
		if err := validateEmailAddress(*update.Email); err != nil {
			return nil, err
		}
		user.Email = *update.Email
	}

	if update.Password != nil {
		if len(*update.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		newPasswordHash, err := hashPassword(*update.Password)
		if err != nil {
			return nil, ErrInternalError
		}
		user.PasswordHash = newPasswordHash
	}

	if err := s.repo.updateUser(user); err != nil {
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) CheckPassword(user *User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByUsername(username string) (*User, error) {
	return s.repo.getUserByUsername(username)
}

func (s *service) DoesUserExist(userID string) (bool, error) {
	return s.repo.userExistsByID(userID)
}
