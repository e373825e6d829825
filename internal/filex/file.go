// Package filex contains small filesystem helpers used by the client.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotImage     = errors.New("file is not an image")
)

// EnsureParentDir creates the directory that will hold path (the local
// database file, for instance). Paths without a directory part are left as is.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadImage loads at most maxSize bytes from path and sniffs its MIME type.
// Files bigger than maxSize and non-image content are rejected.
func ReadImage(path string, maxSize int64) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, path, maxSize)
	}

	mime := http.DetectContentType(data)
	if len(mime) < 6 || mime[:6] != "image/" {
		return nil, "", fmt.Errorf("%w: %s (%s)", ErrNotImage, path, mime)
	}
	return data, mime, nil
}
