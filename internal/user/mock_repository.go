package user

import "fmt"

// MockUserRepository is an in-memory Repository used by unit tests.
type MockUserRepository struct {
	Users      []*User
	ShouldFail bool

	nextID int
}

func (m *MockUserRepository) createUser(user *User) error {
	if m.ShouldFail {
		return ErrInternalError
	}
	m.nextID++
	user.ID = mockUserID(m.nextID)
	m.Users = append(m.Users, user)
	return nil
}

func (m *MockUserRepository) getUserByUsername(username string) (*User, error) {
	if m.ShouldFail {
		return nil, ErrInternalError
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepository) getUserByID(id string) (*User, error) {
	if m.ShouldFail {
		return nil, ErrInternalError
	}
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepository) userExistsByID(id string) (bool, error) {
	if m.ShouldFail {
		return false, ErrInternalError
	}
	for _, u := range m.Users {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) updateUser(user *User) error {
	if m.ShouldFail {
		return ErrInternalError
	}
	for i, u := range m.Users {
		if u.ID == user.ID {
			m.Users[i] = user
			return nil
		}
	}
	return ErrUserNotFound
}

func mockUserID(n int) string {
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
}
