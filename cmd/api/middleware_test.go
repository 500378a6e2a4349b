package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccess(t *testing.T) {
	staff := &store.User{ID: 1, IsStaff: true}
	regular := &store.User{ID: 2}

	tests := []struct {
		name   string
		user   *store.User
		method string
		want   bool
	}{
		{name: "nil user cannot read", user: nil, method: http.MethodGet, want: false},
		{name: "nil user cannot write", user: nil, method: http.MethodPost, want: false},
		{name: "regular user can read", user: regular, method: http.MethodGet, want: true},
		{name: "regular user can head", user: regular, method: http.MethodHead, want: true},
		{name: "regular user cannot post", user: regular, method: http.MethodPost, want: false},
		{name: "regular user cannot put", user: regular, method: http.MethodPut, want: false},
		{name: "regular user cannot delete", user: regular, method: http.MethodDelete, want: false},
		{name: "staff can read", user: staff, method: http.MethodGet, want: true},
		{name: "staff can post", user: staff, method: http.MethodPost, want: true},
		{name: "staff can delete", user: staff, method: http.MethodDelete, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, canAccess(tc.user, tc.method))
		})
	}
}

func TestAuthTokenMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bogus", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer user-token", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(t)

			req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := executeRequest(req, app.mount())

			require.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	app := newTestApplication(t)

	for _, target := range []string{"/v1/health", "/v1/topproducts", "/v1/search?q=x"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := executeRequest(req, app.mount())
		assert.Equal(t, http.StatusOK, rr.Code, target)
	}
}
