package auth

// MockTokenRepository is an in-memory TokenRepository used by unit tests.
type MockTokenRepository struct {
	Tokens     map[string]string // token -> userID
	ShouldFail bool
}

func (m *MockTokenRepository) saveToken(token, userID string) error {
	if m.ShouldFail {
		return ErrInternalError
	}
	if m.Tokens == nil {
		m.Tokens = make(map[string]string)
	}
	m.Tokens[token] = userID
	return nil
}

func (m *MockTokenRepository) getUserIDByToken(token string) (string, error) {
	if m.ShouldFail {
		return "", ErrInternalError
	}
	userID, ok := m.Tokens[token]
	if !ok {
		return "", ErrTokenNotFound
	}
	return userID, nil
}
