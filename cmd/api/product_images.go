package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog/internal/params"
	"catalog/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateProductImagePayload struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	ImageURL  string  `json:"image_url" validate:"required,url"`
	AltText   *string `json:"alt_text"`
}

type UpdateProductImagePayload struct {
	ProductID *int64  `json:"product_id" validate:"omitempty,gt=0"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url"`
	AltText   *string `json:"alt_text"`
}

func (app *application) listProductImagesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pagination := params.ParsePagination(r.URL.Query())

	images, total, err := app.store.ProductImages.List(ctx, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("list product images: %w", err))
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"results":    images,
		"pagination": pagination,
	})
}

func (app *application) createProductImageHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateProductImagePayload
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

	image := &store.ProductImage{
		ProductID: payload.ProductID,
		ImageURL:  payload.ImageURL,
		AltText:   payload.AltText,
	}

	if err := app.store.ProductImages.Create(ctx, image); err != nil {
		switch {
		case errors.Is(err, store.ErrProductMissing):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, fmt.Errorf("create product image: %w", err))
		}
		return
	}

	app.jsonResponse(w, http.StatusCreated, image)
}

func (app *application) getProductImageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid image ID"))
		return
	}

	image, err := app.store.ProductImages.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, image)
}

func (app *application) updateProductImageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid image ID"))
		return
	}

	var payload UpdateProductImagePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	image, err := app.store.ProductImages.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if payload.ProductID != nil {
		image.ProductID = *payload.ProductID
	}
	if payload.ImageURL != nil {
		image.ImageURL = *payload.ImageURL
	}
	if payload.AltText != nil {
		image.AltText = payload.AltText
	}

	if err := app.store.ProductImages.Update(ctx, image); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrProductMissing):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, image)
}

func (app *application) deleteProductImageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid image ID"))
		return
	}

	image, err := app.store.ProductImages.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.ProductImages.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Async cleanup of hosted assets; local rows are gone either way.
	if strings.Contains(image.ImageURL, "cloudinary.com") {
		go func(url string) {
			if err := app.deletePhotoFromCloudinary(url); err != nil {
				app.logger.Errorw("failed to delete image from Cloudinary", "url", url, "error", err)
			}
		}(image.ImageURL)
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadProductImageHandler accepts a multipart form with an image file,
// pushes it to Cloudinary, and records the resulting URL.
func (app *application) uploadProductImageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	const maxBytes = 8 * 1024 * 1024 // 8MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid product_id"))
		return
	}

	var altText *string
	if alt := strings.TrimSpace(r.FormValue("alt_text")); alt != "" {
		altText = &alt
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("image file is required"))
		return
	}
	defer file.Close()

	mime, err := sniffMIME(file)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("sniff mime: %w", err))
		return
	}
	allowed := map[string]bool{"image/jpeg": true, "image/png": true, "image/webp": true}
	if !allowed[mime] {
		app.badRequestResponse(w, r, fmt.Errorf("invalid image type: %s", mime))
		return
	}

	publicID := fmt.Sprintf("products/%d/%d_%d", productID, time.Now().Unix(), rand.Intn(9999))
	imageURL, err := app.uploadToCloudinaryWithID(file, publicID)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("failed to upload image: %w", err))
		return
	}

	image := &store.ProductImage{
		ProductID: productID,
		ImageURL:  imageURL,
		AltText:   altText,
	}

	if err := app.store.ProductImages.Create(ctx, image); err != nil {
		// cleanup failed upload
		go app.deletePhotoFromCloudinary(imageURL)
		switch {
		case errors.Is(err, store.ErrProductMissing):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, fmt.Errorf("failed to save image: %w", err))
		}
		return
	}

	app.jsonResponse(w, http.StatusCreated, image)
}

func sniffMIME(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read: %w", err)
	}
	mime := http.DetectContentType(buf[:n])

	// reset so later reads start from byte 0
	if seeker, ok := file.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek reset: %w", err)
		}
	}
	return mime, nil
}
