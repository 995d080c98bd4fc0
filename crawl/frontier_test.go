package crawl_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://nginx.org/en/docs"

var _ docmirror.URLFrontier = (*crawl.Frontier)(nil)

func TestFrontier_Dequeue_is_FIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base)
	f.Enqueue(base + "/install.html")
	f.Enqueue(base + "/beginners_guide.html")
	f.Enqueue(base + "/http/ngx_http_core_module.html")

	var got []string
	for {
		url, ok := f.Dequeue()
		if !ok {
			break
		}
		got = append(got, url)
	}

	assert.Equal(t, []string{
		base + "/install.html",
		base + "/beginners_guide.html",
		base + "/http/ngx_http_core_module.html",
	}, got)
}

func TestFrontier_Enqueue_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base)

	assert.True(t, f.Enqueue(base+"/install.html"), "first enqueue should succeed")
	assert.False(t, f.Enqueue(base+"/install.html"), "duplicate URL should be rejected")
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_never_revisits_dequeued_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base)
	require.True(t, f.Enqueue(base+"/install.html"))

	url, ok := f.Dequeue()
	require.True(t, ok)
	require.Equal(t, base+"/install.html", url)

	assert.False(t, f.Enqueue(base+"/install.html"), "dequeued URL must stay visited")
	assert.True(t, f.Seen(base+"/install.html"))
	assert.Zero(t, f.Len())
}

func TestFrontier_Enqueue_rejects_out_of_scope_URLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{"relative", "install.html"},
		{"root relative", "/en/docs/install.html"},
		{"other path", "https://nginx.org/ru/docs/install.html"},
		{"other host", "https://example.com/en/docs"},
		{"other scheme", "ftp://nginx.org/en/docs/install.html"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := crawl.NewFrontier(base)

			assert.False(t, f.Enqueue(tt.url))
			assert.False(t, f.Seen(tt.url))
			assert.Zero(t, f.Len())
		})
	}
}

func TestFrontier_Enqueue_accepts_the_base_URL_itself(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base)

	assert.True(t, f.Enqueue(base))
	assert.True(t, f.Seen(base))
}

func TestFrontier_strips_fragments(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base)

	assert.True(t, f.Enqueue(base+"/install.html#source"))
	assert.False(t, f.Enqueue(base+"/install.html"), "same page without fragment")
	assert.False(t, f.Enqueue(base+"/install.html#binary"), "same page with other fragment")
	assert.True(t, f.Seen(base+"/install.html#anything"))

	url, ok := f.Dequeue()
	require.True(t, ok)
	assert.Equal(t, base+"/install.html", url)
}

func TestFrontier_WithAllow_filters_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base, crawl.WithAllow(func(url string) bool {
		return !strings.Contains(url, "/private/")
	}))

	assert.True(t, f.Enqueue(base+"/install.html"))
	assert.False(t, f.Enqueue(base+"/private/secret.html"))
	assert.False(t, f.Seen(base+"/private/secret.html"), "rejected URLs are not marked visited")
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Dequeue_on_empty(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base)

	url, ok := f.Dequeue()

	assert.False(t, ok)
	assert.Empty(t, url)
}

func TestFrontier_concurrent_enqueue(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// Half the URLs are duplicates of the other half.
			f.Enqueue(fmt.Sprintf("%s/page%d.html", base, n%50))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, f.Len())
}

func TestFrontier_keeps_deduplicating_past_the_expected_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(base, crawl.WithExpectedURLs(4))

	for i := range 100 {
		require.True(t, f.Enqueue(fmt.Sprintf("%s/page%d.html", base, i)))
	}
	for i := range 100 {
		url := fmt.Sprintf("%s/page%d.html", base, i)
		assert.True(t, f.Seen(url), url)
		assert.False(t, f.Enqueue(url), url)
	}
	assert.Equal(t, 100, f.Len())
}
