package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCategoryMissing = errors.New("category does not exist")

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ReleasedOn  Date      `json:"released_on"`
	InStock     bool      `json:"in_stock"`
	CategoryID  int64     `json:"category_id"`
	TagIDs      []int64   `json:"tag_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RankedProduct is a product row annotated with its full-text search rank.
type RankedProduct struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ReleasedOn  Date    `json:"released_on"`
	InStock     bool    `json:"in_stock"`
	CategoryID  int64   `json:"category_id"`
	Rank        float64 `json:"rank"`
}

type TopProduct struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type DashboardTotals struct {
	TotalProducts   int64   `json:"total_products"`
	TotalPrice      float64 `json:"total_price"`
	TotalCategories int64   `json:"total_categories"`
	TotalStock      int64   `json:"total_stock"`
}

type ProductStats struct {
	TotalProducts int64    `json:"total_products"`
	AvgPrice      *float64 `json:"avg_price"`
	TotalPrice    *float64 `json:"total_price"`
}

// searchRankThreshold drops barely-relevant matches from search results.
const searchRankThreshold = 0.1

type ProductsStore struct {
	db *pgxpool.Pool
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.released_on, p.in_stock, p.category_id,
	COALESCE(array_agg(pt.tag_id) FILTER (WHERE pt.tag_id IS NOT NULL), '{}') AS tag_ids,
	p.created_at, p.updated_at`

func (s *ProductsStore) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]Product, int, error) {
	clauses, args := filter.where(3)

	query := `
		SELECT` + productColumns + `, COUNT(*) OVER() AS total
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN product_tags pt ON pt.product_id = p.id
	`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += `
		GROUP BY p.id
		ORDER BY p.id
		LIMIT $1 OFFSET $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, append([]any{limit, offset}, args...)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []Product{}
	total := 0
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ReleasedOn, &p.InStock,
			&p.CategoryID, &p.TagIDs, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (s *ProductsStore) Create(ctx context.Context, product *Product) error {
	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		return s.create(ctx, tx, product)
	})
}

func (s *ProductsStore) create(ctx context.Context, tx pgx.Tx, product *Product) error {
	query := `
		INSERT INTO products (name, description, price, released_on, in_stock, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := tx.QueryRow(ctx, query,
		product.Name, product.Description, product.Price,
		product.ReleasedOn, product.InStock, product.CategoryID,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrCategoryMissing
		}
		return err
	}

	return s.replaceTags(ctx, tx, product.ID, product.TagIDs)
}

func (s *ProductsStore) replaceTags(ctx context.Context, tx pgx.Tx, productID int64, tagIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_tags WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_tags (product_id, tag_id) VALUES ($1, $2)`,
			productID, tagID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductsStore) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		LEFT JOIN product_tags pt ON pt.product_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &Product{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ReleasedOn, &p.InStock,
		&p.CategoryID, &p.TagIDs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}
	return p, nil
}

func (s *ProductsStore) Update(ctx context.Context, product *Product) error {
	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE products
			SET name = $1, description = $2, price = $3, released_on = $4,
			    in_stock = $5, category_id = $6, updated_at = NOW()
			WHERE id = $7
		`

		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		res, err := tx.Exec(ctx, query,
			product.Name, product.Description, product.Price, product.ReleasedOn,
			product.InStock, product.CategoryID, product.ID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return ErrCategoryMissing
			}
			return err
		}
		if res.RowsAffected() == 0 {
			return ErrNotFound
		}

		return s.replaceTags(ctx, tx, product.ID, product.TagIDs)
	})
}

func (s *ProductsStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

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

// CreateBatch inserts all products in a single transaction. Any failure
// rolls back the whole batch.
func (s *ProductsStore) CreateBatch(ctx context.Context, products []*Product) error {
	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		for _, p := range products {
			if err := s.create(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// Search runs ranked full-text search over product name, description and
// category name. Rows below the rank threshold are excluded; results are
// ordered by descending rank.
func (s *ProductsStore) Search(ctx context.Context, q string, limit, offset int) ([]RankedProduct, int, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.released_on, p.in_stock, p.category_id,
		       ts_rank(
		           to_tsvector('english', p.name || ' ' || p.description || ' ' || COALESCE(c.name, '')),
		           plainto_tsquery('english', $1)
		       ) AS rank,
		       COUNT(*) OVER() AS total
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ts_rank(
		          to_tsvector('english', p.name || ' ' || p.description || ' ' || COALESCE(c.name, '')),
		          plainto_tsquery('english', $1)
		      ) >= $2
		ORDER BY rank DESC
		LIMIT $3 OFFSET $4
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, q, searchRankThreshold, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results := []RankedProduct{}
	total := 0
	for rows.Next() {
		var p RankedProduct
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ReleasedOn,
			&p.InStock, &p.CategoryID, &p.Rank, &total,
		); err != nil {
			return nil, 0, err
		}
		results = append(results, p)
	}
	return results, total, rows.Err()
}

// TopByPrice returns the n most expensive products.
func (s *ProductsStore) TopByPrice(ctx context.Context, n int) ([]TopProduct, error) {
	query := `
		SELECT id, name, price
		FROM products
		ORDER BY price DESC
		LIMIT $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []TopProduct{}
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		top = append(top, p)
	}
	return top, rows.Err()
}

// DashboardTotals recomputes the admin dashboard aggregates on every call.
func (s *ProductsStore) DashboardTotals(ctx context.Context) (*DashboardTotals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COALESCE(SUM(price), 0) FROM products),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM products WHERE in_stock)
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	totals := &DashboardTotals{}
	err := s.db.QueryRow(ctx, query).Scan(
		&totals.TotalProducts,
		&totals.TotalPrice,
		&totals.TotalCategories,
		&totals.TotalStock,
	)
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// Stats returns count/average/sum of price over the full product table.
// Avg and sum are null when the table is empty.
func (s *ProductsStore) Stats(ctx context.Context) (*ProductStats, error) {
	query := `SELECT COUNT(id), AVG(price), SUM(price) FROM products`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	stats := &ProductStats{}
	err := s.db.QueryRow(ctx, query).Scan(&stats.TotalProducts, &stats.AvgPrice, &stats.TotalPrice)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
