package main

import (
	"context"
	"net/http"
	"time"

	"catalog/internal/store"
)

type BulkCreateProductsPayload struct {
	Products []CreateProductPayload `json:"products" validate:"required,min=1"`
}

// bulkCreateProductsHandler inserts a batch of products in one transaction.
// Any failure rolls the whole batch back and nothing is persisted.
func (app *application) bulkCreateProductsHandler(w http.ResponseWriter, r *http.Request) {
	var payload BulkCreateProductsPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	products := make([]*store.Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		product, err := p.toProduct()
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		products = append(products, product)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.store.Products.CreateBatch(ctx, products); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, map[string]any{
		"created_products": products,
	})
}
