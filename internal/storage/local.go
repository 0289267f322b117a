package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader writes files to the resolved directory on local disk under
// their original filename.
type LocalUploader struct{}

func NewLocalUploader() *LocalUploader {
	return &LocalUploader{}
}

func (u *LocalUploader) Upload(ctx context.Context, dest Destination, r io.Reader, originalName string) (*UploadResult, error) {
	// Strip any client-supplied directory components.
	name := filepath.Base(originalName)
	target := filepath.Join(dest.Path, name)

	f, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", target, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return nil, fmt.Errorf("write %s: %w", target, err)
	}

	return &UploadResult{Path: target}, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
