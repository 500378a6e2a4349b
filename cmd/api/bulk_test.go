package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"catalog/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkCreateProducts(t *testing.T) {
	body := `{"products":[
		{"name":"A","price":1,"released_on":"2024-01-01","category_id":1},
		{"name":"B","price":2,"released_on":"2024-01-02","category_id":1}
	]}`

	t.Run("whole batch lands on success", func(t *testing.T) {
		app := newTestApplication(t)

		var batch []*store.Product
		app.store.Products = &mockProductsStore{
			createBatchFn: func(_ context.Context, products []*store.Product) error {
				batch = products
				for i, p := range products {
					p.ID = int64(i + 1)
				}
				return nil
			},
		}

		req := authedRequest(http.MethodPost, "/v1/bulkproducts", body, "staff-token")
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, batch, 2)
		assert.Equal(t, "A", batch[0].Name)
		assert.Equal(t, "B", batch[1].Name)

		var envelope struct {
			Data struct {
				CreatedProducts []store.Product `json:"created_products"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Len(t, envelope.Data.CreatedProducts, 2)
	})

	t.Run("store failure answers 400 with the raw error", func(t *testing.T) {
		app := newTestApplication(t)

		app.store.Products = &mockProductsStore{
			createBatchFn: func(_ context.Context, _ []*store.Product) error {
				return errors.New("category 1 does not exist")
			},
		}

		req := authedRequest(http.MethodPost, "/v1/bulkproducts", body, "staff-token")
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusBadRequest, rr.Code)

		var envelope errorEnvelope
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		assert.Equal(t, "category 1 does not exist", envelope.Message)
	})

	t.Run("one invalid product rejects the whole request", func(t *testing.T) {
		app := newTestApplication(t)

		batchCalled := false
		app.store.Products = &mockProductsStore{
			createBatchFn: func(_ context.Context, _ []*store.Product) error {
				batchCalled = true
				return nil
			},
		}

		bad := `{"products":[
			{"name":"A","price":1,"released_on":"2024-01-01","category_id":1},
			{"name":"B","price":2,"released_on":"not-a-date","category_id":1}
		]}`
		req := authedRequest(http.MethodPost, "/v1/bulkproducts", bad, "staff-token")
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, batchCalled)
	})

	t.Run("empty batch fails validation", func(t *testing.T) {
		app := newTestApplication(t)

		req := authedRequest(http.MethodPost, "/v1/bulkproducts", `{"products":[]}`, "staff-token")
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-staff answers 403", func(t *testing.T) {
		app := newTestApplication(t)

		req := authedRequest(http.MethodPost, "/v1/bulkproducts", body, "user-token")
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}
