package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProducts(t *testing.T) {
	t.Run("missing q answers 400", func(t *testing.T) {
		app := newTestApplication(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusBadRequest, rr.Code)

		var envelope errorEnvelope
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		assert.Equal(t, "please provide a search query ?q=", envelope.Message)
	})

	t.Run("blank q answers 400", func(t *testing.T) {
		app := newTestApplication(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/search?q=++", nil)
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("query reaches the store with pagination", func(t *testing.T) {
		app := newTestApplication(t)

		var gotQuery string
		var gotLimit, gotOffset int
		app.store.Products = &mockProductsStore{
			searchFn: func(_ context.Context, q string, limit, offset int) ([]store.RankedProduct, int, error) {
				gotQuery, gotLimit, gotOffset = q, limit, offset
				return []store.RankedProduct{
					{ID: 1, Name: "Gaming laptop", Rank: 0.9},
				}, 1, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/search?q=laptop&page=2&limit=10", nil)
		rr := executeRequest(req, app.mount())

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "laptop", gotQuery)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, 10, gotOffset)
	})
}

func TestTopProducts(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantN      int
	}{
		{name: "default is two", query: "", wantStatus: http.StatusOK, wantN: 2},
		{name: "explicit top", query: "?top=5", wantStatus: http.StatusOK, wantN: 5},
		{name: "zero is passed through", query: "?top=0", wantStatus: http.StatusOK, wantN: 0},
		{name: "unparseable top answers 400", query: "?top=abc", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(t)

			var gotN int
			called := false
			app.store.Products = &mockProductsStore{
				topByPriceFn: func(_ context.Context, n int) ([]store.TopProduct, error) {
					gotN = n
					called = true
					return []store.TopProduct{}, nil
				},
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/topproducts"+tc.query, nil)
			rr := executeRequest(req, app.mount())

			require.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantStatus == http.StatusOK {
				require.True(t, called)
				assert.Equal(t, tc.wantN, gotN)
			} else {
				assert.False(t, called)

				var envelope errorEnvelope
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				assert.Equal(t, "invalid top value", envelope.Message)
			}
		})
	}
}
