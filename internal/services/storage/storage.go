// Package storage implements the file store behind document uploads: files
// land on local disk under a per-user path and are served back from a static
// mount as public URLs.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/merchantfeeadvocate/backend/internal/config"
)

// ErrInvalidPath is returned when an upload path tries to escape the store
var ErrInvalidPath = errors.New("invalid upload path")

// FileStore saves uploaded files and hands back their public URLs
type FileStore struct {
	baseDir       string
	publicBaseURL string
}

// NewFileStore creates the store and its base directory
func NewFileStore(cfg *config.Config) (*FileStore, error) {
	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &FileStore{
		baseDir:       cfg.Storage.UploadDir,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
	}, nil
}

// BaseDir returns the directory served as the public uploads mount
func (f *FileStore) BaseDir() string {
	return f.baseDir
}

// Save writes the uploaded file under path and returns its public URL.
// Existing files at the same path are overwritten (upsert semantics).
func (f *FileStore) Save(file *multipart.FileHeader, path string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean("/" + path))
	if strings.Contains(cleaned, "..") {
		return "", ErrInvalidPath
	}
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidPath
	}

	dst := filepath.Join(f.baseDir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload subdir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return f.publicBaseURL + "/" + cleaned, nil
}
