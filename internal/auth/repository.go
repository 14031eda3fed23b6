package auth

import (
	"database/sql"
	"errors"
	"fmt"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	saveToken(token, userID string) error
	getUserIDByToken(token string) (string, error)
}

type tokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

func (r *tokenRepository) saveToken(token, userID string) error {
	query := `
		INSERT INTO auth_tokens (token, user_id, created_at)
		VALUES ($1, $2, NOW())
	`
	_, err := r.db.Exec(query, token, userID)
	if err != nil {
		return fmt.Errorf("could not save token: %v", err)
	}
	return nil
}

func (r *tokenRepository) getUserIDByToken(token string) (string, error) {
	query := `
		SELECT user_id
		FROM auth_tokens
		WHERE token = $1
	`

	var userID string
	err := r.db.QueryRow(query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("could not resolve token: %v", err)
	}

	return userID, nil
}
