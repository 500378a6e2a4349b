package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProductMissing = errors.New("product does not exist")

type ProductImage struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	ImageURL  string  `json:"image_url"`
	AltText   *string `json:"alt_text"`
}

type ProductImagesStore struct {
	db *pgxpool.Pool
}

func (s *ProductImagesStore) List(ctx context.Context, limit, offset int) ([]ProductImage, int, error) {
	query := `
		SELECT id, product_id, image_url, alt_text, COUNT(*) OVER() AS total
		FROM product_images
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

	images := []ProductImage{}
	total := 0
	for rows.Next() {
		var img ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.AltText, &total); err != nil {
			return nil, 0, err
		}
		images = append(images, img)
	}
	return images, total, rows.Err()
}

func (s *ProductImagesStore) Create(ctx context.Context, img *ProductImage) error {
	query := `
		INSERT INTO product_images (product_id, image_url, alt_text)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query, img.ProductID, img.ImageURL, img.AltText).Scan(&img.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrProductMissing
		}
		return err
	}
	return nil
}

func (s *ProductImagesStore) GetByID(ctx context.Context, id int64) (*ProductImage, error) {
	query := `SELECT id, product_id, image_url, alt_text FROM product_images WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	img := &ProductImage{}
	err := s.db.QueryRow(ctx, query, id).Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.AltText)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}
	return img, nil
}

func (s *ProductImagesStore) Update(ctx context.Context, img *ProductImage) error {
	query := `UPDATE product_images SET product_id = $1, image_url = $2, alt_text = $3 WHERE id = $4`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, query, img.ProductID, img.ImageURL, img.AltText, img.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrProductMissing
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductImagesStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM product_images WHERE id = $1`

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
