package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ibeckermayer/syndicate/internal/browser"
)

// loginTimeout is how long the user gets to finish a manual login
const loginTimeout = 5 * time.Minute

// Manager runs interactive logins for sites whose publishing needs a signed-in browser
type Manager struct {
	cookieStore *CookieStore
	browserCfg  browser.Config
}

// NewManager creates a new auth manager
func NewManager(cookieStore *CookieStore, browserCfg browser.Config) *Manager {
	browserCfg.Headless = false
	browserCfg.Timeout = loginTimeout + time.Minute
	return &Manager{cookieStore: cookieStore, browserCfg: browserCfg}
}

// IsAuthenticated checks if we have valid stored cookies for site
func (m *Manager) IsAuthenticated(site string) bool {
	return m.cookieStore.IsValid(site)
}

// Login opens a visible browser on loginURL and waits for the user to land on a
// page whose URL starts with donePrefix (and is not the login page itself), then
// stores the cookies for site.
func (m *Manager) Login(ctx context.Context, site, loginURL, donePrefix string) error {
	sess, err := browser.Launch(ctx, m.browserCfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Navigate(loginURL); err != nil {
		return fmt.Errorf("failed to navigate to login page: %w", err)
	}

	if err := m.waitForLogin(ctx, sess, loginURL, donePrefix); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cookies, err := sess.Cookies()
	if err != nil {
		return fmt.Errorf("failed to extract cookies: %w", err)
	}

	if err := m.cookieStore.Save(site, cookies); err != nil {
		return fmt.Errorf("failed to save cookies: %w", err)
	}

	return nil
}

// waitForLogin polls until the browser reaches donePrefix
func (m *Manager) waitForLogin(ctx context.Context, sess *browser.Session, loginURL, donePrefix string) error {
	timeout := time.After(loginTimeout)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return fmt.Errorf("login timeout exceeded")
		case <-ticker.C:
			url, err := sess.Location()
			if err != nil {
				continue
			}
			if strings.HasPrefix(url, donePrefix) && !strings.HasPrefix(url, loginURL) {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Logout clears stored cookies for site
func (m *Manager) Logout(site string) error {
	return m.cookieStore.Clear(site)
}
