package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"catalog/internal/params"
	"catalog/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateProductPayload struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	ReleasedOn  string   `json:"released_on" validate:"required"`
	InStock     *bool    `json:"in_stock"`
	CategoryID  int64    `json:"category_id" validate:"required,gt=0"`
	TagIDs      []int64  `json:"tag_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateProductPayload struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ReleasedOn  *string  `json:"released_on"`
	InStock     *bool    `json:"in_stock"`
	CategoryID  *int64   `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs      []int64  `json:"tag_ids" validate:"omitempty,dive,gt=0"`
}

// toProduct validates and converts the payload into a store row.
func (p CreateProductPayload) toProduct() (*store.Product, error) {
	if err := Validate.Struct(p); err != nil {
		return nil, err
	}

	releasedOn, err := store.ParseDate(p.ReleasedOn)
	if err != nil {
		return nil, err
	}

	inStock := false
	if p.InStock != nil {
		inStock = *p.InStock
	}

	return &store.Product{
		Name:        p.Name,
		Description: p.Description,
		Price:       *p.Price,
		ReleasedOn:  releasedOn,
		InStock:     inStock,
		CategoryID:  p.CategoryID,
		TagIDs:      p.TagIDs,
	}, nil
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Paginated product list with optional filters.
//	@Tags			products
//	@Produce		json
//	@Param			price_min	query	number	false	"Inclusive lower price bound"
//	@Param			price_max	query	number	false	"Inclusive upper price bound"
//	@Param			released_on	query	string	false	"Exact release date (YYYY-MM-DD)"
//	@Param			in_stock	query	string	false	"true/1/false/0; other values ignored"
//	@Param			search		query	string	false	"Substring over product or category name"
//	@Param			page		query	int		false	"Page number"		default(1)
//	@Param			limit		query	int		false	"Items per page"	default(15)
//	@Security		ApiKeyAuth
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := store.ProductFilter{}.Parse(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	pagination := params.ParsePagination(r.URL.Query())

	products, total, err := app.store.Products.List(ctx, filter, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("list products: %w", err))
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"results":    products,
		"pagination": pagination,
	})
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := payload.toProduct()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := app.store.Products.Create(ctx, product); err != nil {
		switch {
		case errors.Is(err, store.ErrCategoryMissing):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, fmt.Errorf("create product: %w", err))
		}
		return
	}

	app.jsonResponse(w, http.StatusCreated, product)
}

func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid product ID"))
		return
	}

	product, err := app.store.Products.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, product)
}

func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid product ID"))
		return
	}

	var payload UpdateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.store.Products.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if payload.Name != nil {
		product.Name = *payload.Name
	}
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	if payload.Price != nil {
		product.Price = *payload.Price
	}
	if payload.ReleasedOn != nil {
		releasedOn, err := store.ParseDate(*payload.ReleasedOn)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		product.ReleasedOn = releasedOn
	}
	if payload.InStock != nil {
		product.InStock = *payload.InStock
	}
	if payload.CategoryID != nil {
		product.CategoryID = *payload.CategoryID
	}
	if payload.TagIDs != nil {
		product.TagIDs = payload.TagIDs
	}

	if err := app.store.Products.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrCategoryMissing):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, product)
}

func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid product ID"))
		return
	}

	if err := app.store.Products.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
