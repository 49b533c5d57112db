package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"

	"github.com/ibeckermayer/syndicate/internal/config"
)

// CookieStore keeps browser session cookies for sites that need a prior login.
// Each site gets its own JSON file under dir.
type CookieStore struct {
	dir string
}

// StoredCookies represents the persisted cookie data for one site
type StoredCookies struct {
	Site       string    `json:"site"`
	Cookies    []Cookie  `json:"cookies"`
	CapturedAt time.Time `json:"captured_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Cookie is the persisted subset of a browser cookie. network.Cookie is not
// stored directly because its enum fields do not decode when empty.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	Secure   bool    `json:"secure"`
	HTTPOnly bool    `json:"httpOnly"`
	SameSite string  `json:"sameSite,omitempty"`
	Session  bool    `json:"session"`
}

// FromNetwork copies the fields the browser needs to restore a login
func FromNetwork(c *network.Cookie) Cookie {
	return Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly,
		SameSite: string(c.SameSite),
		Session:  c.Session,
	}
}

// Network converts c back into the form chromedp injects
func (c Cookie) Network() *network.Cookie {
	return &network.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly,
		SameSite: network.CookieSameSite(c.SameSite),
		Session:  c.Session,
	}
}

// NewCookieStore creates a cookie store rooted at dir
func NewCookieStore(dir string) *CookieStore {
	return &CookieStore{dir: dir}
}

// DefaultCookieDir returns the default directory for cookie storage
func DefaultCookieDir() (string, error) {
	configDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cookies"), nil
}

func (cs *CookieStore) path(site string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, strings.ToLower(site))
	return filepath.Join(cs.dir, name+".json")
}

// Save persists cookies for site. Session cookies (no expiry) do not shorten ExpiresAt.
func (cs *CookieStore) Save(site string, cookies []*network.Cookie) error {
	if err := os.MkdirAll(cs.dir, 0700); err != nil {
		return err
	}

	var earliestExpiry time.Time
	saved := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, FromNetwork(c))
		if c.Expires <= 0 || c.Session {
			continue
		}
		exp := time.Unix(int64(c.Expires), 0)
		if earliestExpiry.IsZero() || exp.Before(earliestExpiry) {
			earliestExpiry = exp
		}
	}

	stored := StoredCookies{
		Site:       site,
		Cookies:    saved,
		CapturedAt: time.Now(),
		ExpiresAt:  earliestExpiry,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cs.path(site), data, 0600)
}

// Load retrieves cookies for site from disk
func (cs *CookieStore) Load(site string) (*StoredCookies, error) {
	data, err := os.ReadFile(cs.path(site))
	if err != nil {
		return nil, err
	}

	var stored StoredCookies
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode cookies for %s: %w", site, err)
	}

	return &stored, nil
}

// IsValid checks if stored cookies for site exist and have not expired
func (cs *CookieStore) IsValid(site string) bool {
	stored, err := cs.Load(site)
	if err != nil || len(stored.Cookies) == 0 {
		return false
	}
	if !stored.ExpiresAt.IsZero() && time.Now().After(stored.ExpiresAt) {
		return false
	}
	return true
}

// Clear removes stored cookies for site
func (cs *CookieStore) Clear(site string) error {
	return os.Remove(cs.path(site))
}

// Cookies returns valid stored cookies for site, or nil when there are none
func (cs *CookieStore) Cookies(site string) []*network.Cookie {
	if !cs.IsValid(site) {
		return nil
	}
	stored, err := cs.Load(site)
	if err != nil {
		return nil
	}
	cookies := make([]*network.Cookie, len(stored.Cookies))
	for i, c := range stored.Cookies {
		cookies[i] = c.Network()
	}
	return cookies
}
