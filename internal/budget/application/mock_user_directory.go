package application

// MockUserDirectory is an in-memory UserDirectory used by unit tests.
type MockUserDirectory struct {
	UserIDs []string
}

func (m *MockUserDirectory) DoesUserExist(userID string) (bool, error) {
	for _, id := range m.UserIDs {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}
