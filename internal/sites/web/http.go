package web

import (
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"github.com/ibeckermayer/syndicate/internal/browser"
)

// HTTPOptions configures API adapter clients
type HTTPOptions struct {
	UserAgent        string
	Timeout          time.Duration
	CloudflareBypass bool
}

// NewClient creates a resty client for baseURL
func NewClient(baseURL string, opts HTTPOptions) *resty.Client {
	return Configure(resty.New(), baseURL, opts)
}

// Configure applies opts to an existing client, e.g. one wrapping a signing http.Client
func Configure(client *resty.Client, baseURL string, opts HTTPOptions) *resty.Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = browser.DefaultUserAgent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if baseURL != "" {
		client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
	client.SetHeader("user-agent", ua)
	client.SetTimeout(timeout)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	return client
}

// APIOptions are passed to every API adapter. BaseURL overrides the site's
// public endpoint; Capture, when set, screenshots the published page.
type APIOptions struct {
	BaseURL string
	HTTP    HTTPOptions
	Capture Launcher
}

// BaseURLOr returns o.BaseURL, or def when unset
func (o APIOptions) BaseURLOr(def string) string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return def
}
