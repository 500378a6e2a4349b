package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TagsStore struct {
	db *pgxpool.Pool
}

func (s *TagsStore) List(ctx context.Context, limit, offset int) ([]Tag, int, error) {
	query := `
		SELECT id, name, COUNT(*) OVER() AS total
		FROM tags
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

	tags := []Tag{}
	total := 0
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &total); err != nil {
			return nil, 0, err
		}
		tags = append(tags, t)
	}
	return tags, total, rows.Err()
}

func (s *TagsStore) Create(ctx context.Context, tag *Tag) error {
	query := `INSERT INTO tags (name) VALUES ($1) RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query, tag.Name).Scan(&tag.ID)
}

func (s *TagsStore) GetByID(ctx context.Context, id int64) (*Tag, error) {
	query := `SELECT id, name FROM tags WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	t := &Tag{}
	err := s.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}
	return t, nil
}

func (s *TagsStore) Update(ctx context.Context, tag *Tag) error {
	query := `UPDATE tags SET name = $1 WHERE id = $2`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, query, tag.Name, tag.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TagsStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tags WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
