package main

import (
	"errors"
	"net/http"

	"catalog/internal/store"
)

type LoginPayload struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserWithToken is the login response body.
type UserWithToken struct {
	User  *store.User `json:"user"`
	Token string      `json:"token"`
}

// loginHandler godoc
//
//	@Summary		Login with username and password
//	@Description	Validates credentials and issues an opaque bearer token. Both unknown username and wrong password answer 400.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"User credentials"
//	@Success		200		{object}	UserWithToken	"User and token"
//	@Failure		400		{object}	error			"Invalid credentials"
//	@Failure		500		{object}	error			"Internal server error"
//	@Router			/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	user, err := app.store.Users.GetByUsername(ctx, payload.Username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// 400 for both failure modes, distinguished in message only.
			app.badRequestResponse(w, r, errors.New("invalid username"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := user.Password.Compare(payload.Password); err != nil {
		app.badRequestResponse(w, r, errors.New("invalid password"))
		return
	}

	token, err := app.store.Tokens.Create(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, UserWithToken{User: user, Token: token}); err != nil {
		app.internalServerError(w, r, err)
	}
}
