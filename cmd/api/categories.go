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

type CreateCategoryPayload struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type UpdateCategoryPayload struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pagination := params.ParsePagination(r.URL.Query())

	categories, total, err := app.store.Categories.List(ctx, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("list categories: %w", err))
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"results":    categories,
		"pagination": pagination,
	})
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateCategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := &store.Category{
		Name:        payload.Name,
		Description: payload.Description,
	}

	if err := app.store.Categories.Create(ctx, category); err != nil {
		app.internalServerError(w, r, fmt.Errorf("create category: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusCreated, category)
}

func (app *application) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid category ID"))
		return
	}

	category, err := app.store.Categories.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, category)
}

func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid category ID"))
		return
	}

	var payload UpdateCategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Load existing and merge provided fields (partial update).
	category, err := app.store.Categories.GetByID(ctx, id)
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
		category.Name = *payload.Name
	}
	if payload.Description != nil {
		category.Description = *payload.Description
	}

	if err := app.store.Categories.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, category)
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid category ID"))
		return
	}

	if err := app.store.Categories.Delete(ctx, id); err != nil {
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
