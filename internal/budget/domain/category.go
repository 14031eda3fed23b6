package domain

import "time"

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryRepository interface {
	Save(category *Category) error
	FindAll(limit, offset int) ([]Category, int, error)
	ExistsByID(id int) (bool, error)
	ExistsByName(name string) (bool, error)
}
