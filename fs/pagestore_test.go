package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic File Storage
// The store uses temp directory for atomic updates

func TestFileStore_WriteGoesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewFileStore(base, "en")

	// When I write a page
	err := store.Write(context.Background(), "http/ngx_http_core_module.md", "## Module ngx_http_core_module")

	// Then no error occurs
	require.NoError(t, err)

	// And the file exists in the temp directory (not final)
	tempPath := filepath.Join(base, "en.tmp", "http", "ngx_http_core_module.md")
	_, err = os.Stat(tempPath)
	require.NoError(t, err, "file should exist in temp directory")

	// And final directory does not exist yet
	_, err = os.Stat(filepath.Join(base, "en"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestFileStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with written pages
	base := t.TempDir()
	store := fs.NewFileStore(base, "en")
	require.NoError(t, store.Write(context.Background(), "index.md", "## nginx documentation"))

	// When I commit
	err := store.Commit()

	// Then no error occurs
	require.NoError(t, err)

	// And final directory exists with content
	content, err := os.ReadFile(filepath.Join(base, "en", "index.md"))
	require.NoError(t, err, "file should exist in final directory after commit")
	assert.Equal(t, "## nginx documentation", string(content))

	// And temp directory is gone
	_, err = os.Stat(filepath.Join(base, "en.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestFileStore_CommitReplacesPreviousMirror(t *testing.T) {
	t.Parallel()

	// Given a previous mirror with a page that no longer exists
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "en"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "en", "stale.md"), []byte("stale"), 0644))

	// When a new run writes and commits
	store := fs.NewFileStore(base, "en")
	require.NoError(t, store.Write(context.Background(), "index.md", "fresh"))
	require.NoError(t, store.Commit())

	// Then only the new pages remain
	_, err := os.Stat(filepath.Join(base, "en", "stale.md"))
	assert.True(t, os.IsNotExist(err), "stale page should be gone")
	_, err = os.Stat(filepath.Join(base, "en", "index.md"))
	assert.NoError(t, err)
}

func TestFileStore_CommitWithoutPages(t *testing.T) {
	t.Parallel()

	// Given a store nothing was written to
	base := t.TempDir()
	store := fs.NewFileStore(base, "en")

	// When I commit
	err := store.Commit()

	// Then an empty output directory exists
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Join(base, "en"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a previous mirror and a store with written pages
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "en"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "en", "index.md"), []byte("previous"), 0644))
	store := fs.NewFileStore(base, "en")
	require.NoError(t, store.Write(context.Background(), "index.md", "partial"))

	// When I abort
	err := store.Abort()

	// Then no error occurs
	require.NoError(t, err)

	// And temp directory is cleaned up
	_, err = os.Stat(filepath.Join(base, "en.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")

	// And the previous mirror is intact
	content, err := os.ReadFile(filepath.Join(base, "en", "index.md"))
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	// Given a store
	store := fs.NewFileStore(t.TempDir(), "en")

	// When I try to write outside the output directory
	err := store.Write(context.Background(), "../../etc/passwd", "bad content")

	// Then an error is returned
	require.Error(t, err, "path traversal should be rejected")
	assert.Contains(t, err.Error(), "path traversal")
	assert.Equal(t, docmirror.EINVALID, docmirror.ErrorCode(err))
}
