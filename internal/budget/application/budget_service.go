package application

import (
	"errors"
	"strings"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

// UserDirectory answers existence checks for user ids referenced in
// shared_with sets.
type UserDirectory interface {
	DoesUserExist(userID string) (bool, error)
}

type BudgetService struct {
	repo            domain.BudgetRepository
	categoryService *CategoryService
	users           UserDirectory
}

func NewBudgetService(repo domain.BudgetRepository, categoryService *CategoryService, users UserDirectory) *BudgetService {
	return &BudgetService{
		repo:            repo,
		categoryService: categoryService,
		users:           users,
	}
}

// CreateBudget records a new budget owned by authorID. The author is always
// the identity resolved by the permission gate, any author value found in the
// request body never reaches this call.
func (s *BudgetService) CreateBudget(authorID, name string, income, expenses float64, categoryID int, sharedWith []string) (*domain.Budget, error) {
	if strings.TrimSpace(name) == "" {
		return nil, budgetErrors.NewFieldValidationError("name", "this field is required")
	}

	nameTaken, err := s.repo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if nameTaken {
		return nil, budgetErrors.NewValidationError("budget with this name already exists")
	}

	categoryExists, err := s.categoryService.DoesCategoryExist(categoryID)
	if err != nil {
		return nil, err
	}
	if !categoryExists {
		return nil, budgetErrors.NewFieldValidationError("category", "referenced category does not exist")
	}

	shared := dedupe(sharedWith)
	for _, userID := range shared {
		exists, err := s.users.DoesUserExist(userID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, budgetErrors.NewFieldValidationError("shared_with", "referenced user does not exist")
		}
	}

	budget := &domain.Budget{
		Name:       name,
		AuthorID:   authorID,
		Income:     income,
		Expenses:   expenses,
		CategoryID: categoryID,
		SharedWith: shared,
	}

	if err := s.repo.Save(budget); err != nil {
		return nil, err
	}

	return budget, nil
}

// ListVisible returns the budgets the user may read: authored by them or
// shared with them. With assignedOnly the merely-shared ones are excluded.
func (s *BudgetService) ListVisible(userID string, assignedOnly bool, limit, offset int) ([]domain.Budget, int, error) {
	return s.repo.FindVisibleForUser(userID, assignedOnly, limit, offset)
}

// GetBudget fetches one budget by id. Budgets invisible to the requester are
// reported as not found so their existence does not leak.
func (s *BudgetService) GetBudget(requesterID string, budgetID int) (*domain.Budget, error) {
	budget, err := s.repo.FindByID(budgetID)
	if err != nil {
		return nil, err
	}
	if !budget.VisibleTo(requesterID) {
		return nil, budgetErrors.ErrBudgetNotFound
	}
	return budget, nil
}

// AddShare grants read visibility on a budget to another user. Only the
// author may do this.
func (s *BudgetService) AddShare(requesterID string, budgetID int, targetUserID string) error {
	budget, err := s.authorOnly(requesterID, budgetID)
	if err != nil {
		return err
	}

	exists, err := s.users.DoesUserExist(targetUserID)
	if err != nil {
		return err
	}
	if !exists {
		return budgetErrors.NewFieldValidationError("user_id", "referenced user does not exist")
	}

	return s.repo.AddShare(budget.ID, targetUserID)
}

// RemoveShare revokes a previously granted share. Removing a user who was
// never shared with is a no-op.
func (s *BudgetService) RemoveShare(requesterID string, budgetID int, targetUserID string) error {
	budget, err := s.authorOnly(requesterID, budgetID)
	if err != nil {
		return err
	}

	return s.repo.RemoveShare(budget.ID, targetUserID)
}

func (s *BudgetService) authorOnly(requesterID string, budgetID int) (*domain.Budget, error) {
	budget, err := s.repo.FindByID(budgetID)
	if err != nil {
		if errors.Is(err, budgetErrors.ErrBudgetNotFound) {
			return nil, budgetErrors.ErrBudgetNotFound
		}
		return nil, err
	}
	if !budget.VisibleTo(requesterID) {
		return nil, budgetErrors.ErrBudgetNotFound
	}
	if !budget.AuthoredBy(requesterID) {
		return nil, budgetErrors.ErrNotBudgetAuthor
	}
	return budget, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
