package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

const screenshotTimeout = 20 * time.Second

// ErrClosed is returned when a closed session is used
var ErrClosed = errors.New("browser session closed")

// Session is one browser with one tab, owned by a single publish call.
// It satisfies adapter.Page and adapter.Browser.
type Session struct {
	browserCtx context.Context // survives the publish timeout so error screenshots still work
	runCtx     context.Context

	mu      sync.Mutex
	closed  bool
	cancels []context.CancelFunc
}

// Launch starts a browser. Actions run under cfg.Timeout and stop when ctx is done.
func Launch(ctx context.Context, cfg Config) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), Options(cfg)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	runCtx, runCancel := context.WithTimeout(browserCtx, timeout)
	stop := context.AfterFunc(ctx, runCancel)

	s := &Session{
		browserCtx: browserCtx,
		runCtx:     runCtx,
		cancels:    []context.CancelFunc{func() { stop() }, runCancel, browserCancel, allocCancel},
	}

	// First Run allocates the browser process
	if err := chromedp.Run(runCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return s, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	// Graceful close first so the profile is flushed
	err := chromedp.Cancel(s.browserCtx)
	for _, cancel := range s.cancels {
		cancel()
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Run executes actions in the publish context
func (s *Session) Run(actions ...chromedp.Action) error {
	if s == nil {
		return ErrClosed
	}
	return chromedp.Run(s.runCtx, actions...)
}

// Screenshot writes a full-page PNG to path
func (s *Session) Screenshot(ctx context.Context, path string) error {
	if s == nil {
		return ErrClosed
	}
	shotCtx, cancel := context.WithTimeout(s.browserCtx, screenshotTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var buf []byte
	if err := chromedp.Run(shotCtx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0600)
}

// Navigate loads url and waits for the body
func (s *Session) Navigate(url string) error {
	if err := s.Run(
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Fill types value into the element matched by sel
func (s *Session) Fill(sel, value string) error {
	if err := s.Run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Clear(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, value, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to fill %s: %w", sel, err)
	}
	return nil
}

// Type clicks sel and types value, for contenteditable editors that Fill cannot clear
func (s *Session) Type(sel, value string) error {
	if err := s.Run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, value, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to type into %s: %w", sel, err)
	}
	return nil
}

// SetValue sets a form value directly, for long bodies where typing is too slow
func (s *Session) SetValue(sel, value string) error {
	if err := s.Run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.SetValue(sel, value, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to set %s: %w", sel, err)
	}
	return nil
}

// Select picks an option value in a <select> and fires its change event
func (s *Session) Select(sel, value string) error {
	js := fmt.Sprintf(`(function(){
		const el = document.querySelector(%q);
		if (!el) return false;
		el.value = %q;
		el.dispatchEvent(new Event('change', {bubbles: true}));
		return el.value === %q;
	})()`, sel, value, value)

	var ok bool
	if err := s.Run(chromedp.Evaluate(js, &ok)); err != nil {
		return fmt.Errorf("failed to select %s: %w", sel, err)
	}
	if !ok {
		return fmt.Errorf("option %q not available in %s", value, sel)
	}
	return nil
}

// Click waits for sel to be visible and clicks it
func (s *Session) Click(sel string) error {
	if err := s.Run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to click %s: %w", sel, err)
	}
	return nil
}

// Exists reports whether sel currently matches any node, without waiting
func (s *Session) Exists(sel string) (bool, error) {
	var nodes []*cdp.Node
	if err := s.Run(chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

// WaitAny polls until one of selectors matches and returns it
func (s *Session) WaitAny(timeout time.Duration, selectors ...string) (string, error) {
	deadline := time.After(timeout)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		for _, sel := range selectors {
			if ok, err := s.Exists(sel); err == nil && ok {
				return sel, nil
			}
		}
		select {
		case <-deadline:
			return "", fmt.Errorf("none of %s appeared within %v", strings.Join(selectors, ", "), timeout)
		case <-s.runCtx.Done():
			return "", s.runCtx.Err()
		case <-ticker.C:
		}
	}
}

// Location returns the current page URL
func (s *Session) Location() (string, error) {
	var url string
	err := s.Run(chromedp.Location(&url))
	return url, err
}

// HTML returns the current document markup
func (s *Session) HTML() (string, error) {
	var html string
	err := s.Run(chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Sleep pauses inside the browser context
func (s *Session) Sleep(d time.Duration) error {
	return s.Run(chromedp.Sleep(d))
}

// InjectCookies sets stored cookies before navigation
func (s *Session) InjectCookies(cookies []*network.Cookie) error {
	return s.Run(
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				set := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithSecure(c.Secure).
					WithHTTPOnly(c.HTTPOnly)
				if c.SameSite != "" {
					set = set.WithSameSite(c.SameSite)
				}
				if err := set.Do(ctx); err != nil {
					return err
				}
			}
			return nil
		}),
	)
}

// Cookies returns all cookies from the browser
func (s *Session) Cookies() ([]*network.Cookie, error) {
	var cookies []*network.Cookie

	err := s.Run(
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)

	return cookies, err
}

// OpenPage launches a browser already showing url, used to capture result pages
func OpenPage(ctx context.Context, cfg Config, url string) (*Session, error) {
	s, err := Launch(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Navigate(url); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
