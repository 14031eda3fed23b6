package application

import (
	"strings"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListCategories(limit, offset int) ([]domain.Category, int, error) {
	return s.repo.FindAll(limit, offset)
}

// CreateCategory appends a new category to the shared registry. Names are
// unique across all users.
func (s *CategoryService) CreateCategory(name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, budgetErrors.NewFieldValidationError("name", "this field is required")
	}

	exists, err := s.repo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, budgetErrors.NewConflictError("category with this name already exists")
	}

	category := &domain.Category{Name: name}
	if err := s.repo.Save(category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) DoesCategoryExist(categoryID int) (bool, error) {
	return s.repo.ExistsByID(categoryID)
}
