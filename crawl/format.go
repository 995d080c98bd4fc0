package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash of content as a hex string.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatResult summarizes a finished run in one line.
func FormatResult(r *Result) string {
	return fmt.Sprintf("saved %d pages (%s), %d failed, %d idle rounds, %d pending",
		r.Saved, FormatBytes(r.Bytes), r.Failed, r.Idle, r.Pending)
}
