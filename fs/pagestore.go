package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/docmirror"
)

// Ensure FileStore implements docmirror.Writer and docmirror.Committer at
// compile time.
var (
	_ docmirror.Writer    = (*FileStore)(nil)
	_ docmirror.Committer = (*FileStore)(nil)
)

// FileStore writes pages with atomic update semantics.
// Pages are written to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
	writer  *Writer
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	s := &FileStore{
		baseDir: baseDir,
		name:    name,
	}
	s.writer = NewWriter(s.tempDir())
	return s
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Write stores text at path inside the temporary directory.
func (s *FileStore) Write(ctx context.Context, path string, text string) error {
	return s.writer.Write(ctx, path, text)
}

// Commit replaces the output directory with the temporary one. A run that
// wrote nothing commits an empty directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything written since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
