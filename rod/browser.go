package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the default number of pages rendered by one browser
// process before it is replaced. Chrome's memory use grows with every page and
// never returns to its baseline.
const DefaultRecycleAfter = 75

// browser owns a headless Chrome process and replaces it after a number of
// pages. It is safe for concurrent use.
type browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	limit    int
}

func launchBrowser(limit int) (*browser, error) {
	b := &browser{limit: limit}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// acquire returns the browser to render the next page with, replacing the
// process first if it has rendered limit pages. A failed replacement keeps
// the old process.
func (b *browser) acquire() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil, fmt.Errorf("browser is closed")
	}

	if b.limit > 0 && b.pages >= b.limit {
		oldBrowser, oldLauncher := b.browser, b.launcher
		if err := b.launch(); err != nil {
			b.browser, b.launcher = oldBrowser, oldLauncher
		} else {
			_ = oldBrowser.Close()
			oldLauncher.Kill()
			b.pages = 0
		}
	}

	b.pages++
	return b.browser, nil
}

// launch starts a browser process with stability flags.
// Must be called with mu held.
func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = rb
	b.launcher = l
	return nil
}

// close shuts the process down. Closing twice is a no-op.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
