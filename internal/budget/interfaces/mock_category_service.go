package interfaces

import (
	"errors"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type MockCategoryService struct {
	Categories []domain.Category
	ShouldFail bool
}

func (m *MockCategoryService) ListCategories(limit, offset int) ([]domain.Category, int, error) {
	if m.ShouldFail {
		return nil, 0, errors.New("service error")
	}
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

func (m *MockCategoryService) CreateCategory(name string) (*domain.Category, error) {
	if m.ShouldFail {
		return nil, errors.New("service error")
	}
	for _, category := range m.Categories {
		if category.Name == name {
			return nil, budgetErrors.NewConflictError("category with this name already exists")
		}
	}
	category := domain.Category{ID: len(m.Categories) + 1, Name: name}
	m.Categories = append(m.Categories, category)
	return &category, nil
}
