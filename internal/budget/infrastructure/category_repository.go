package infrastructure

import (
	"database/sql"
	"fmt"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(category *domain.Category) error {
	err := r.db.QueryRow(
		`INSERT INTO categories (name, created_at) VALUES ($1, NOW()) RETURNING id, created_at`,
		category.Name,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create category: %v", err)
	}
	return nil
}

func (r *CategoryRepository) FindAll(limit, offset int) ([]domain.Category, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("could not count categories: %v", err)
	}

	rows, err := r.db.Query(
		"SELECT id, name, created_at FROM categories ORDER BY id LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list categories: %v", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, 0, err
		}
		categories = append(categories, category)
	}

	return categories, total, rows.Err()
}

func (r *CategoryRepository) ExistsByID(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *CategoryRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
