// Package screenshot stores publish screenshots in Cloudinary.
package screenshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader is the slice of the Cloudinary upload API we use
type ImageUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Cloudinary uploads local screenshots and removes them afterwards
type Cloudinary struct {
	api    ImageUploader
	folder string
	logger *slog.Logger
}

// NewCloudinary creates an uploader from account credentials
func NewCloudinary(cloudName, apiKey, apiSecret, folder string, logger *slog.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return NewWithAPI(&cld.Upload, folder, logger), nil
}

// NewWithAPI wraps an existing upload API
func NewWithAPI(api ImageUploader, folder string, logger *slog.Logger) *Cloudinary {
	return &Cloudinary{api: api, folder: folder, logger: logger.With("component", "cloudinary")}
}

// Upload sends the file at path and returns its secure URL. The local file is
// removed whether or not the upload succeeds.
func (c *Cloudinary) Upload(ctx context.Context, path string) (string, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove local screenshot", "path", path, "error", err)
		}
	}()

	res, err := c.api.Upload(ctx, path, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected %s: %s", path, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no url for %s", path)
	}

	c.logger.Debug("uploaded screenshot", "url", res.SecureURL)
	return res.SecureURL, nil
}
