// Package fs provides file-based storage for mirrored pages.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docmirror"
)

// Ensure Writer implements docmirror.Writer at compile time.
var _ docmirror.Writer = (*Writer)(nil)

// Writer writes pages as files under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Write stores text at path relative to the base directory, creating parent
// directories as needed. Paths escaping the base directory are rejected.
// A file that already holds the same text is left untouched.
func (w *Writer) Write(ctx context.Context, path string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := w.resolve(path)
	if err != nil {
		return err
	}

	unchanged, err := sameContent(fullPath, text)
	if err != nil {
		return err
	}
	if unchanged {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (w *Writer) resolve(path string) (string, error) {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return "", docmirror.Errorf(docmirror.EINVALID, "path traversal in output path %q", path)
	}
	return filepath.Join(w.baseDir, rel), nil
}

// sameContent reports whether the file at path exists and hashes to the same
// value as text.
func sameContent(path string, text string) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return xxhash.Sum64(existing) == xxhash.Sum64String(text), nil
}
