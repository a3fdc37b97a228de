package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// StagedFile is an uploaded part copied to local disk.
type StagedFile struct {
	Path string
	Name string
	Size int64
}

// StageTempFile copies src into a new temp file that keeps filename's
// extension. The returned cleanup removes the file and must always be called,
// even when err is non-nil.
func StageTempFile(dir string, src io.Reader, filename string) (*StagedFile, func(), error) {
	noop := func() {}

	dst, err := os.CreateTemp(dir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create temp file: %w", err)
	}

	path := dst.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove temp file", "path", path, "error", err)
		}
	}

	n, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to write temp file: %w", err)
	}

	return &StagedFile{Path: path, Name: filename, Size: n}, cleanup, nil
}
