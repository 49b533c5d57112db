// Package web holds what the site adapters share: the browser page surface,
// the HTTP client factory and HTML inspection helpers.
package web

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/network"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/auth"
	"github.com/ibeckermayer/syndicate/internal/browser"
)

//go:generate mockgen -source=web.go -destination=mocks/mocks.go -package=mocks

// Page is the browser surface browser adapters drive. *browser.Session implements it.
type Page interface {
	adapter.Page
	adapter.Browser
	Navigate(url string) error
	Fill(sel, value string) error
	Type(sel, value string) error
	SetValue(sel, value string) error
	Select(sel, value string) error
	Click(sel string) error
	Exists(sel string) (bool, error)
	WaitAny(timeout time.Duration, selectors ...string) (string, error)
	Location() (string, error)
	HTML() (string, error)
	Sleep(d time.Duration) error
	InjectCookies(cookies []*network.Cookie) error
}

var _ Page = (*browser.Session)(nil)

// Launcher starts a fresh browser page for one publish
type Launcher func(ctx context.Context) (Page, error)

// ChromeLauncher launches chromedp sessions with cfg
func ChromeLauncher(cfg browser.Config) Launcher {
	return func(ctx context.Context) (Page, error) {
		s, err := browser.Launch(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// InjectStored loads cookies saved by `syndicate login` for site into page.
// It reports whether any were injected.
func InjectStored(page Page, cookies *auth.CookieStore, site string) (bool, error) {
	if cookies == nil {
		return false, nil
	}
	stored := cookies.Cookies(site)
	if len(stored) == 0 {
		return false, nil
	}
	if err := page.InjectCookies(stored); err != nil {
		return false, err
	}
	return true, nil
}

// CaptureResult opens url in a new page and uploads a screenshot of it. Failures
// are logged on b and yield an empty URL; a missing screenshot never fails a publish.
func CaptureResult(ctx context.Context, b *adapter.Base, launch Launcher, url string) string {
	if launch == nil || url == "" {
		return ""
	}

	page, err := launch(ctx)
	if err != nil {
		b.Logf(adapter.LevelWarning, "Could not open result page: %v", err)
		return ""
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		b.Logf(adapter.LevelWarning, "Could not open result page: %v", err)
		return ""
	}

	shot, err := b.CaptureAndUpload(ctx, page)
	if err != nil {
		b.Logf(adapter.LevelWarning, "Could not capture result page: %v", err)
		return ""
	}
	return shot
}
