package domain

import "time"

type Budget struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	AuthorID   string    `json:"author"`
	Income     float64   `json:"income"`
	Expenses   float64   `json:"expenses"`
	CategoryID int       `json:"category"`
	SharedWith []string  `json:"shared_with"`
	CreatedAt  time.Time `json:"-"`
}

// VisibleTo reports whether the budget may be read by the given user:
// the author always sees it, shared users see it too. A budget shared with
// its own author is still just visible, not doubly so.
func (b *Budget) VisibleTo(userID string) bool {
	if b.AuthorID == userID {
		return true
	}
	for _, id := range b.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// AuthoredBy reports whether the given user owns the budget.
func (b *Budget) AuthoredBy(userID string) bool {
	return b.AuthorID == userID
}

type BudgetRepository interface {
	Save(budget *Budget) error
	FindByID(id int) (*Budget, error)
	// FindVisibleForUser returns the page of budgets visible to the user
	// (authored or shared with them) together with the total count of the
	// unpaged result set. assignedOnly narrows to authored budgets.
	FindVisibleForUser(userID string, assignedOnly bool, limit, offset int) ([]Budget, int, error)
	ExistsByName(name string) (bool, error)
	AddShare(budgetID int, userID string) error
	RemoveShare(budgetID int, userID string) error
}
