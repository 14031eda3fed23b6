package infrastructure

import (
	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

// MockBudgetRepository is an in-memory BudgetRepository used by unit tests.
type MockBudgetRepository struct {
	Budgets []domain.Budget

	nextID int
}

func (m *MockBudgetRepository) Save(budget *domain.Budget) error {
	m.nextID++
	budget.ID = m.nextID
	if budget.SharedWith == nil {
		budget.SharedWith = make([]string, 0)
	}
	m.Budgets = append(m.Budgets, *budget)
	return nil
}

func (m *MockBudgetRepository) FindByID(id int) (*domain.Budget, error) {
	for i := range m.Budgets {
		if m.Budgets[i].ID == id {
			budget := m.Budgets[i]
			return &budget, nil
		}
	}
	return nil, budgetErrors.ErrBudgetNotFound
}

func (m *MockBudgetRepository) FindVisibleForUser(userID string, assignedOnly bool, limit, offset int) ([]domain.Budget, int, error) {
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

func (m *MockBudgetRepository) ExistsByName(name string) (bool, error) {
	for _, budget := range m.Budgets {
		if budget.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockBudgetRepository) AddShare(budgetID int, userID string) error {
	for i := range m.Budgets {
		if m.Budgets[i].ID != budgetID {
			continue
		}
		for _, existing := range m.Budgets[i].SharedWith {
			if existing == userID {
				return nil
			}
		}
		m.Budgets[i].SharedWith = append(m.Budgets[i].SharedWith, userID)
		return nil
	}
	return budgetErrors.ErrBudgetNotFound
}

func (m *MockBudgetRepository) RemoveShare(budgetID int, userID string) error {
	for i := range m.Budgets {
		if m.Budgets[i].ID != budgetID {
			continue
		}
		shares := m.Budgets[i].SharedWith[:0]
		for _, existing := range m.Budgets[i].SharedWith {
			if existing != userID {
				shares = append(shares, existing)
			}
		}
		m.Budgets[i].SharedWith = shares
		return nil
	}
	return budgetErrors.ErrBudgetNotFound
}
