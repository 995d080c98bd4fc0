package crawl_test

import (
	"testing"

	"github.com/fwojciec/docmirror/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	got := crawl.FormatResult(&crawl.Result{Saved: 2, Bytes: 2048, Failed: 1, Idle: 2, Pending: 7})

	assert.Equal(t, "saved 2 pages (2.0 KB), 1 failed, 2 idle rounds, 7 pending", got)
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("returns consistent hash for same content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.ComputeHash("## Title"), crawl.ComputeHash("## Title"))
	})

	t.Run("returns different hashes for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, crawl.ComputeHash("content a"), crawl.ComputeHash("content b"))
	})

	t.Run("returns hex string", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]+$`, crawl.ComputeHash("test"))
	})
}
