package interfaces

import (
	"errors"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type MockBudgetService struct {
	Budgets    []domain.Budget
	ShouldFail bool

	// LastAuthorID records the author the handler passed to CreateBudget.
	LastAuthorID string
}

func (m *MockBudgetService) CreateBudget(authorID, name string, income, expenses float64, categoryID int, sharedWith []string) (*domain.Budget, error) {
	if m.ShouldFail {
		return nil, errors.New("service error")
	}
	m.LastAuthorID = authorID
	if sharedWith == nil {
		sharedWith = make([]string, 0)
	}
	budget := domain.Budget{
		ID:         len(m.Budgets) + 1,
		Name:       name,
		AuthorID:   authorID,
		Income:     income,
		Expenses:   expenses,
		CategoryID: categoryID,
		SharedWith: sharedWith,
	}
	m.Budgets = append(m.Budgets, budget)
	return &budget, nil
}

func (m *MockBudgetService) ListVisible(userID string, assignedOnly bool, limit, offset int) ([]domain.Budget, int, error) {
	if m.ShouldFail {
		return nil, 0, errors.New("service error")
	}
	var visible []domain.Budget
	for _, budget := range m.Budgets {
		if assignedOnly {
			if budget.AuthoredBy(userID) {
				visible = append(visible, budget)
			}
			continue
		}
		if budget.VisibleTo(userID) {
			visible = append(visible, budget)
		}
	}
	total := len(visible)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return visible[offset:end], total, nil
}

func (m *MockBudgetService) GetBudget(requesterID string, budgetID int) (*domain.Budget, error) {
	if m.ShouldFail {
		return nil, errors.New("service error")
	}
	for i := range m.Budgets {
		if m.Budgets[i].ID == budgetID {
			if !m.Budgets[i].VisibleTo(requesterID) {
				return nil, budgetErrors.ErrBudgetNotFound
			}
			return &m.Budgets[i], nil
		}
	}
	return nil, budgetErrors.ErrBudgetNotFound
}

func (m *MockBudgetService) AddShare(requesterID string, budgetID int, targetUserID string) error {
	if m.ShouldFail {
		return errors.New("service error")
	}
	for i := range m.Budgets {
		if m.Budgets[i].ID != budgetID {
			continue
		}
		if !m.Budgets[i].AuthoredBy(requesterID) {
			return budgetErrors.ErrNotBudgetAuthor
		}
		m.Budgets[i].SharedWith = append(m.Budgets[i].SharedWith, targetUserID)
		return nil
	}
	return budgetErrors.ErrBudgetNotFound
}

func (m *MockBudgetService) RemoveShare(requesterID string, budgetID int, targetUserID string) error {
	if m.ShouldFail {
		return errors.New("service error")
	}
	for i := range m.Budgets {
		if m.Budgets[i].ID != budgetID {
			continue
		}
		if !m.Budgets[i].AuthoredBy(requesterID) {
			return budgetErrors.ErrNotBudgetAuthor
		}
		shares := m.Budgets[i].SharedWith[:0]
		for _, existing := range m.Budgets[i].SharedWith {
			if existing != targetUserID {
				shares = append(shares, existing)
			}
		}
		m.Budgets[i].SharedWith = shares
		return nil
	}
	return budgetErrors.ErrBudgetNotFound
}
