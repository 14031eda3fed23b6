package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/sebuszqo/BudgetManager/internal/user"
)

const tokenByteLength = 20

var (
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid or malformed token")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(username, password string) (string, error)
	Resolve(token string) (*user.User, error)
	TokenAuthMiddleware() func(http.Handler) http.Handler
}

type service struct {
	repo        TokenRepository
	userService user.Service
}

func NewAuthService(repo TokenRepository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func generateToken() (string, error) {
	tokenBytes := make([]byte, tokenByteLength)
	_, err := rand.Read(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("could not generate token: %v", err)
	}
	return hex.EncodeToString(tokenBytes), nil
}

// Login validates the credentials and issues a fresh opaque bearer token
// bound to the identity. Nonexistent users and wrong passwords are
// indistinguishable to the caller.
func (s *service) Login(username, password string) (string, error) {
	existingUser, err := s.userService.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", ErrInternalError
	}

	if !s.userService.CheckPassword(existingUser, password) {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", ErrInternalError
	}

	if err := s.repo.saveToken(token, existingUser.ID); err != nil {
		return "", ErrInternalError
	}

	return token, nil
}

// Resolve maps an opaque token back to the user it was issued for.
func (s *service) Resolve(token string) (*user.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	userID, err := s.repo.getUserIDByToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, ErrInternalError
	}

	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, ErrInternalError
	}

	return existingUser, nil
}
