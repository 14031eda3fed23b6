package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Save inserts the budget and its shared_with set in one transaction.
func (r *BudgetRepository) Save(budget *domain.Budget) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO budgets (name, author_id, income, expenses, category_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING id, created_at`,
		budget.Name, budget.AuthorID, budget.Income, budget.Expenses, budget.CategoryID,
	).Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create budget: %v", err)
	}

	for _, userID := range budget.SharedWith {
		_, err := tx.Exec(
			`INSERT INTO budget_shares (budget_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			budget.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("could not share budget: %v", err)
		}
	}

	return tx.Commit()
}

func (r *BudgetRepository) FindByID(id int) (*domain.Budget, error) {
	var budget domain.Budget
	err := r.db.QueryRow(
		`SELECT id, name, author_id, income, expenses, category_id, created_at
		 FROM budgets
		 WHERE id = $1`,
		id,
	).Scan(&budget.ID, &budget.Name, &budget.AuthorID, &budget.Income, &budget.Expenses, &budget.CategoryID, &budget.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budgetErrors.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("could not find budget: %v", err)
	}

	budget.SharedWith, err = r.loadShares(budget.ID)
	if err != nil {
		return nil, err
	}

	return &budget, nil
}

// FindVisibleForUser filters the ledger down to budgets the user authored or
// was shared on. The EXISTS subquery keeps a budget shared with its own
// author from showing up twice.
func (r *BudgetRepository) FindVisibleForUser(userID string, assignedOnly bool, limit, offset int) ([]domain.Budget, int, error) {
	visible := `b.author_id = $1 OR EXISTS (
			SELECT 1 FROM budget_shares s WHERE s.budget_id = b.id AND s.user_id = $1)`
	if assignedOnly {
		visible = `b.author_id = $1`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM budgets b WHERE ` + visible
	if err := r.db.QueryRow(countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("could not count budgets: %v", err)
	}

	query := `SELECT b.id, b.name, b.author_id, b.income, b.expenses, b.category_id, b.created_at
		FROM budgets b
		WHERE ` + visible + `
		ORDER BY b.id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list budgets: %v", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(&budget.ID, &budget.Name, &budget.AuthorID, &budget.Income, &budget.Expenses, &budget.CategoryID, &budget.CreatedAt); err != nil {
			return nil, 0, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range budgets {
		budgets[i].SharedWith, err = r.loadShares(budgets[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}

	return budgets, total, nil
}

func (r *BudgetRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM budgets WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BudgetRepository) AddShare(budgetID int, userID string) error {
	_, err := r.db.Exec(
		`INSERT INTO budget_shares (budget_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		budgetID, userID,
	)
	if err != nil {
		return fmt.Errorf("could not share budget: %v", err)
	}
	return nil
}

func (r *BudgetRepository) RemoveShare(budgetID int, userID string) error {
	_, err := r.db.Exec(
		`DELETE FROM budget_shares WHERE budget_id = $1 AND user_id = $2`,
		budgetID, userID,
	)
	if err != nil {
		return fmt.Errorf("could not unshare budget: %v", err)
	}
	return nil
}

func (r *BudgetRepository) loadShares(budgetID int) ([]string, error) {
	rows, err := r.db.Query("SELECT user_id FROM budget_shares WHERE budget_id = $1 ORDER BY user_id", budgetID)
	if err != nil {
		return nil, fmt.Errorf("could not load shares: %v", err)
	}
	defer rows.Close()

	shares := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		shares = append(shares, userID)
	}
	return shares, rows.Err()
}
