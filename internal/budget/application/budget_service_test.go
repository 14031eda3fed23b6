package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
	"github.com/sebuszqo/BudgetManager/internal/budget/infrastructure"
)

const (
	userOne = "00000000-0000-0000-0000-000000000001"
	userTwo = "00000000-0000-0000-0000-000000000002"
)

func newTestBudgetService(users ...string) (*BudgetService, *infrastructure.MockBudgetRepository, *CategoryService) {
	budgetRepo := &infrastructure.MockBudgetRepository{}
	categoryService := NewCategoryService(&infrastructure.MockCategoryRepository{})
	directory := &MockUserDirectory{UserIDs: users}
	return NewBudgetService(budgetRepo, categoryService, directory), budgetRepo, categoryService
}

func TestCreateBudget_Success(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	budget, err := service.CreateBudget(userOne, "household", 5000, 3200.50, category.ID, nil)
	require.NoError(t, err)

	assert.NotZero(t, budget.ID)
	assert.Equal(t, userOne, budget.AuthorID)
	assert.Equal(t, 5000.0, budget.Income)
	assert.Equal(t, 3200.50, budget.Expenses)
	assert.Equal(t, category.ID, budget.CategoryID)
	assert.Empty(t, budget.SharedWith)
}

func TestCreateBudget_UnknownCategory(t *testing.T) {
	service, repo, _ := newTestBudgetService(userOne)

	_, err := service.CreateBudget(userOne, "household", 5000, 3200, 42, nil)
	assert.True(t, budgetErrors.IsValidationError(err), "expected validation error, got %v", err)
	assert.Empty(t, repo.Budgets, "no budget should be persisted")
}

func TestCreateBudget_DuplicateName(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	_, err = service.CreateBudget(userOne, "household", 5000, 3200, category.ID, nil)
	require.NoError(t, err)

	_, err = service.CreateBudget(userOne, "household", 100, 50, category.ID, nil)
	assert.True(t, budgetErrors.IsValidationError(err), "expected validation error, got %v", err)
}

func TestCreateBudget_EmptyName(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	_, err = service.CreateBudget(userOne, "  ", 5000, 3200, category.ID, nil)
	assert.True(t, budgetErrors.IsValidationError(err), "expected validation error, got %v", err)
}

func TestCreateBudget_UnknownSharedUser(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	_, err = service.CreateBudget(userOne, "household", 5000, 3200, category.ID, []string{"no-such-user"})
	assert.True(t, budgetErrors.IsValidationError(err), "expected validation error, got %v", err)
}

func TestCreateBudget_DeduplicatesSharedWith(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne, userTwo)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	budget, err := service.CreateBudget(userOne, "household", 5000, 3200, category.ID, []string{userTwo, userTwo})
	require.NoError(t, err)
	assert.Equal(t, []string{userTwo}, budget.SharedWith)
}

func TestListVisible_AuthoredOrShared(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne, userTwo)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	b1, err := service.CreateBudget(userOne, "authored-by-one", 100, 10, category.ID, nil)
	require.NoError(t, err)
	b2, err := service.CreateBudget(userTwo, "shared-with-one", 200, 20, category.ID, []string{userOne})
	require.NoError(t, err)
	_, err = service.CreateBudget(userTwo, "private-to-two", 300, 30, category.ID, nil)
	require.NoError(t, err)

	visible, total, err := service.ListVisible(userOne, false, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	var names []string
	for _, b := range visible {
		names = append(names, b.Name)
	}
	assert.ElementsMatch(t, []string{b1.Name, b2.Name}, names)
}

func TestListVisible_AssignedOnly(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne, userTwo)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	_, err = service.CreateBudget(userOne, "authored-by-one", 100, 10, category.ID, nil)
	require.NoError(t, err)
	_, err = service.CreateBudget(userTwo, "shared-with-one", 200, 20, category.ID, []string{userOne})
	require.NoError(t, err)

	assigned, total, err := service.ListVisible(userOne, true, 20, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "authored-by-one", assigned[0].Name)
	assert.Equal(t, userOne, assigned[0].AuthorID)
}

func TestListVisible_SelfShareAppearsOnce(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	_, err = service.CreateBudget(userOne, "self-shared", 100, 10, category.ID, []string{userOne})
	require.NoError(t, err)

	visible, total, err := service.ListVisible(userOne, false, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, visible, 1)
}

func TestGetBudget_InvisibleReportsNotFound(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne, userTwo)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	budget, err := service.CreateBudget(userTwo, "private-to-two", 300, 30, category.ID, nil)
	require.NoError(t, err)

	_, err = service.GetBudget(userOne, budget.ID)
	assert.ErrorIs(t, err, budgetErrors.ErrBudgetNotFound)
}

func TestGetBudget_RoundTrip(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	created, err := service.CreateBudget(userOne, "household", 5000, 3200.50, category.ID, nil)
	require.NoError(t, err)

	got, err := service.GetBudget(userOne, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Income, got.Income)
	assert.Equal(t, created.Expenses, got.Expenses)
	assert.Equal(t, created.CategoryID, got.CategoryID)
}

func TestAddShare_AuthorOnly(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne, userTwo)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	budget, err := service.CreateBudget(userOne, "household", 5000, 3200, category.ID, []string{userTwo})
	require.NoError(t, err)

	// userTwo can see the budget but may not change its shares
	err = service.AddShare(userTwo, budget.ID, userTwo)
	assert.ErrorIs(t, err, budgetErrors.ErrNotBudgetAuthor)
}

func TestAddShare_GrantsVisibility(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne, userTwo)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	budget, err := service.CreateBudget(userOne, "household", 5000, 3200, category.ID, nil)
	require.NoError(t, err)

	_, err = service.GetBudget(userTwo, budget.ID)
	require.ErrorIs(t, err, budgetErrors.ErrBudgetNotFound)

	require.NoError(t, service.AddShare(userOne, budget.ID, userTwo))

	shared, err := service.GetBudget(userTwo, budget.ID)
	require.NoError(t, err)
	assert.Contains(t, shared.SharedWith, userTwo)
}

func TestRemoveShare_RevokesVisibility(t *testing.T) {
	service, _, categoryService := newTestBudgetService(userOne, userTwo)
	category, err := categoryService.CreateCategory("groceries")
	require.NoError(t, err)

	budget, err := service.CreateBudget(userOne, "household", 5000, 3200, category.ID, []string{userTwo})
	require.NoError(t, err)

	require.NoError(t, service.RemoveShare(userOne, budget.ID, userTwo))

	_, err = service.GetBudget(userTwo, budget.ID)
	assert.ErrorIs(t, err, budgetErrors.ErrBudgetNotFound)
}

func TestAddShare_UnknownBudget(t *testing.T) {
	service, _, _ := newTestBudgetService(userOne)

	err := service.AddShare(userOne, 42, userOne)
	assert.ErrorIs(t, err, budgetErrors.ErrBudgetNotFound)
}
