package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// uploadToCloudinaryWithID uploads a file to Cloudinary under a custom public ID.
func (app *application) uploadToCloudinaryWithID(file io.Reader, publicID string) (string, error) {
	resp, err := app.cld.Upload.Upload(
		context.Background(),
		file,
		uploader.UploadParams{
			Folder:    "catalog",
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

func (app *application) deletePhotoFromCloudinary(photoURL string) error {
	publicID, err := extractPublicIDFromURL(photoURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = app.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo from Cloudinary: %w", err)
	}

	return nil
}

// extractPublicIDFromURL pulls the asset public ID out of a Cloudinary delivery URL.
func extractPublicIDFromURL(photoURL string) (string, error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part == "upload" && i+1 < len(pathParts) {
			return strings.Join(pathParts[i+1:], "/"), nil
		}
	}

	return "", errors.New("failed to extract public ID from URL")
}
