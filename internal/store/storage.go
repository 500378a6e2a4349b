package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		GetByID(context.Context, int64) (*User, error)
		GetByUsername(context.Context, string) (*User, error)
		Create(context.Context, *User) error
	}
	Tokens interface {
		Create(context.Context, int64) (string, error)
		GetUser(context.Context, string) (*User, error)
	}
	Categories interface {
		List(context.Context, int, int) ([]Category, int, error)
		Create(context.Context, *Category) error
		GetByID(context.Context, int64) (*Category, error)
		Update(context.Context, *Category) error
		Delete(context.Context, int64) error
	}
	Tags interface {
		List(context.Context, int, int) ([]Tag, int, error)
		Create(context.Context, *Tag) error
		GetByID(context.Context, int64) (*Tag, error)
		Update(context.Context, *Tag) error
		Delete(context.Context, int64) error
	}
	Products interface {
		List(context.Context, ProductFilter, int, int) ([]Product, int, error)
		Create(context.Context, *Product) error
		GetByID(context.Context, int64) (*Product, error)
		Update(context.Context, *Product) error
		Delete(context.Context, int64) error
		CreateBatch(context.Context, []*Product) error
		Search(context.Context, string, int, int) ([]RankedProduct, int, error)
		TopByPrice(context.Context, int) ([]TopProduct, error)
		DashboardTotals(context.Context) (*DashboardTotals, error)
		Stats(context.Context) (*ProductStats, error)
	}
	ProductImages interface {
		List(context.Context, int, int) ([]ProductImage, int, error)
		Create(context.Context, *ProductImage) error
		GetByID(context.Context, int64) (*ProductImage, error)
		Update(context.Context, *ProductImage) error
		Delete(context.Context, int64) error
	}
	Profiles interface {
		GetOrCreate(context.Context, int64) (*Profile, error)
		Update(context.Context, *Profile) error
		List(context.Context, int, int) ([]Profile, int, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:         &UsersStore{db},
		Tokens:        &TokensStore{db},
		Categories:    &CategoriesStore{db},
		Tags:          &TagsStore{db},
		Products:      &ProductsStore{db},
		ProductImages: &ProductImagesStore{db},
		Profiles:      &ProfilesStore{db},
	}
}

func withTx(db *pgxpool.Pool, ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
