package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog/internal/params"
)

// searchProductsHandler godoc
//
//	@Summary		Full-text product search
//	@Description	Ranked full-text search over product name, description, and category name.
//	@Tags			products
//	@Produce		json
//	@Param			q		query	string	true	"Search query"
//	@Param			page	query	int		false	"Page number"		default(1)
//	@Param			limit	query	int		false	"Items per page"	default(15)
//	@Router			/search [get]
func (app *application) searchProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		app.badRequestResponse(w, r, errors.New("please provide a search query ?q="))
		return
	}

	pagination := params.ParsePagination(r.URL.Query())

	results, total, err := app.store.Products.Search(ctx, q, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("search products: %w", err))
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"results":    results,
		"pagination": pagination,
	})
}

// topProductsHandler returns the N most expensive products, default 2.
func (app *application) topProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	n := 2
	if raw := r.URL.Query().Get("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid top value"))
			return
		}
		n = parsed
	}

	products, err := app.store.Products.TopByPrice(ctx, n)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("top products: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"top_products": products,
	})
}
