package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoriesStore struct {
	db *pgxpool.Pool
}

func (s *CategoriesStore) List(ctx context.Context, limit, offset int) ([]Category, int, error) {
	query := `
		SELECT id, name, description, created_at, COUNT(*) OVER() AS total
		FROM categories
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categories := []Category{}
	total := 0
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (s *CategoriesStore) Create(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (name, description) VALUES ($1, $2)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query, category.Name, category.Description).
		Scan(&category.ID, &category.CreatedAt)
}

func (s *CategoriesStore) GetByID(ctx context.Context, id int64) (*Category, error) {
	query := `SELECT id, name, description, created_at FROM categories WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c := &Category{}
	err := s.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}
	return c, nil
}

func (s *CategoriesStore) Update(ctx context.Context, category *Category) error {
	query := `UPDATE categories SET name = $1, description = $2 WHERE id = $3`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, query, category.Name, category.Description, category.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CategoriesStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
