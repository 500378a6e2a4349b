package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalog/internal/params"
)

type UpdateProfilePayload struct {
	Bio      *string `json:"bio"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Website  *string `json:"website" validate:"omitempty,url"`
}

// getProfileHandler godoc
//
//	@Summary		Get own profile
//	@Description	Returns the caller's profile, creating an empty one on first access.
//	@Tags			profiles
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Router			/profile [get]
func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)

	profile, err := app.store.Profiles.GetOrCreate(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("get profile: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusOK, profile)
}

func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)

	var payload UpdateProfilePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Updates go through the same lazy get-or-create path as reads.
	profile, err := app.store.Profiles.GetOrCreate(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("get profile: %w", err))
		return
	}

	if payload.Bio != nil {
		profile.Bio = *payload.Bio
	}
	if payload.Location != nil {
		profile.Location = *payload.Location
	}
	if payload.Website != nil {
		profile.Website = *payload.Website
	}

	if err := app.store.Profiles.Update(ctx, profile); err != nil {
		app.internalServerError(w, r, fmt.Errorf("update profile: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusOK, profile)
}

// listProfilesHandler is staff-only and pages through every profile.
func (app *application) listProfilesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pagination := params.ParsePagination(r.URL.Query())

	profiles, total, err := app.store.Profiles.List(ctx, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("list profiles: %w", err))
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"results":    profiles,
		"pagination": pagination,
	})
}
