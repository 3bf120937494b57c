package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of flyer pages rendered before the browser
// is replaced with a fresh process.
const DefaultMaxPages = 75

// browsers hands out a shared headless Chrome and relaunches it after
// maxPages renders. Chrome's memory baseline keeps growing under load even
// when every page is closed.
type browsers struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int
	maxPages int
}

func newBrowsers(maxPages int) (*browsers, error) {
	b := &browsers{maxPages: maxPages}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// get returns the current browser, relaunching it first when the render
// budget is spent. A failed relaunch keeps the old browser.
func (b *browsers) get() *rod.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxPages > 0 && b.rendered >= b.maxPages {
		oldBrowser, oldLauncher := b.browser, b.launcher
		if err := b.launch(); err == nil {
			_ = oldBrowser.Close()
			oldLauncher.Kill()
			b.rendered = 0
		}
	}
	return b.browser
}

// done records one finished render.
func (b *browsers) done() {
	b.mu.Lock()
	b.rendered++
	b.mu.Unlock()
}

func (b *browsers) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

func (b *browsers) close() error {
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

// launch starts Chrome and stores it. Must be called with mu held.
func (b *browsers) launch() error {
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

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = l
	return nil
}
