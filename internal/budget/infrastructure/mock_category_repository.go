package infrastructure

import (
	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

// MockCategoryRepository is an in-memory CategoryRepository used by unit tests.
type MockCategoryRepository struct {
	Categories []domain.Category

	nextID int
}

func (m *MockCategoryRepository) Save(category *domain.Category) error {
	m.nextID++
	category.ID = m.nextID
	m.Categories = append(m.Categories, *category)
	return nil
}

func (m *MockCategoryRepository) FindAll(limit, offset int) ([]domain.Category, int, error) {
	total := len(m.Categories)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return m.Categories[offset:end], total, nil
}

func (m *MockCategoryRepository) ExistsByID(id int) (bool, error) {
	for _, category := range m.Categories {
		if category.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) ExistsByName(name string) (bool, error) {
	for _, category := range m.Categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}
