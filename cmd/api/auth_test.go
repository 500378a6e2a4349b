package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func TestLoginHandler(t *testing.T) {
	knownUser := func() *store.User {
		u := &store.User{ID: 7, Username: "alice", IsStaff: true}
		require.NoError(t, u.Password.Set("correct-horse"))
		return u
	}

	tests := []struct {
		name          string
		body          string
		getByUsername func(context.Context, string) (*store.User, error)
		wantStatus    int
		wantMessage   string
		wantToken     bool
	}{
		{
			name: "unknown username answers 400",
			body: `{"username":"ghost","password":"whatever"}`,
			getByUsername: func(_ context.Context, _ string) (*store.User, error) {
				return nil, store.ErrNotFound
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid username",
		},
		{
			name: "wrong password answers 400",
			body: `{"username":"alice","password":"nope"}`,
			getByUsername: func(_ context.Context, _ string) (*store.User, error) {
				return knownUser(), nil
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid password",
		},
		{
			name: "missing password fails validation",
			body: `{"username":"alice"}`,
			getByUsername: func(_ context.Context, _ string) (*store.User, error) {
				t.Fatal("store should not be reached on validation failure")
				return nil, nil
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "valid credentials return user and token",
			body: `{"username":"alice","password":"correct-horse"}`,
			getByUsername: func(_ context.Context, _ string) (*store.User, error) {
				return knownUser(), nil
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(t)
			app.store.Users = &mockUsersStore{getByUsernameFn: tc.getByUsername}
			app.store.Tokens = &mockTokensStore{
				createFn: func(_ context.Context, userID int64) (string, error) {
					assert.Equal(t, int64(7), userID)
					return "issued-token", nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewBufferString(tc.body))
			rr := executeRequest(req, app.mount())

			require.Equal(t, tc.wantStatus, rr.Code)

			if tc.wantMessage != "" {
				var envelope errorEnvelope
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				assert.False(t, envelope.Success)
				assert.Equal(t, tc.wantMessage, envelope.Message)
			}

			if tc.wantToken {
				var envelope struct {
					Data UserWithToken `json:"data"`
				}
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				assert.Equal(t, "issued-token", envelope.Data.Token)
				require.NotNil(t, envelope.Data.User)
				assert.Equal(t, "alice", envelope.Data.User.Username)
			}
		})
	}
}
