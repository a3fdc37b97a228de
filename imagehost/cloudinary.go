package imagehost

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var _ Uploader = (*Cloudinary)(nil)

// Cloudinary uploads through the Cloudinary SDK.
type Cloudinary struct {
	cld  *cloudinary.Cloudinary
	opts Options
}

func NewCloudinary(cloudName, apiKey, apiSecret string, opts Options) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, opts: opts}, nil
}

// Upload names the asset after fileName with a random suffix.
func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, fileName string) (*Result, error) {
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		UseFilename:      api.Bool(true),
		FilenameOverride: fileName,
		UniqueFilename:   api.Bool(true),
		Tags:             c.opts.Tags,
		Folder:           c.opts.Folder,
	})
	if resp != nil && resp.Error.Message != "" {
		return nil, fmt.Errorf("%w: cloudinary: %s", ErrUploadRejected, resp.Error.Message)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return nil, fmt.Errorf("%w: cloudinary returned no url", ErrUploadRejected)
	}

	return &Result{
		URL:        resp.SecureURL,
		FileID:     resp.PublicID,
		StatusCode: http.StatusOK,
	}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, fileID string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: fileID})
	if err != nil {
		return fmt.Errorf("cloudinary delete %s: %w", fileID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary delete %s: %s", fileID, resp.Error.Message)
	}
	return nil
}
