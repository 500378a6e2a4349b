package main

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// dashboardHandler godoc
//
//	@Summary		Catalog dashboard totals
//	@Description	Aggregate counts and sums across the whole catalog. Staff only.
//	@Tags			dashboard
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Router			/dashboard [get]
func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	totals, err := app.store.Products.DashboardTotals(ctx)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("dashboard totals: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusOK, totals)
}

// productStatsHandler answers count, average price, and total price over
// products. Available to any authenticated user.
func (app *application) productStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := app.store.Products.Stats(ctx)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("product stats: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusOK, stats)
}
