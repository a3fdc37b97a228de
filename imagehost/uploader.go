// Package imagehost uploads dessert images to a hosted image service.
package imagehost

import (
	"context"
	"errors"
	"io"
)

// ErrUploadRejected means the service answered without error but did not
// accept the file.
var ErrUploadRejected = errors.New("image upload rejected")

// Result describes a stored image.
type Result struct {
	URL        string
	FileID     string
	StatusCode int
}

// Uploader is implemented by every image hosting backend.
type Uploader interface {
	// Upload stores r under a unique name derived from fileName.
	Upload(ctx context.Context, r io.Reader, fileName string) (*Result, error)

	// Delete removes a previously uploaded file.
	Delete(ctx context.Context, fileID string) error
}

// Options apply to every upload.
type Options struct {
	Tags   []string
	Folder string
}
