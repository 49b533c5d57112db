// Package pastebin publishes pastes through the Pastebin API.
package pastebin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name           = "Pastebin"
	DefaultBaseURL = "https://pastebin.com"

	badRequestPrefix = "Bad API request"
)

// Adapter publishes content to Pastebin.
type Adapter struct {
	*adapter.Base
	client  *resty.Client
	capture web.Launcher
}

// New builds an Adapter from the shared publishing params.
func New(p adapter.Params, opts web.APIOptions) *Adapter {
	opts.HTTP.CloudflareBypass = true
	return &Adapter{
		Base:    adapter.NewBase(Name, p),
		client:  web.NewClient(opts.BaseURLOr(DefaultBaseURL), opts.HTTP),
		capture: opts.Capture,
	}
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	if err := a.Website.RequireCredentials("api_dev_key"); err != nil {
		return a.Reject(adapter.KindValidation, err)
	}
	devKey := a.Website.Credential("api_dev_key")

	code := a.Content.MarkdownBody()
	if strings.TrimSpace(code) == "" {
		return a.Reject(adapter.KindValidation, errors.New("body is required"))
	}

	var userKey string
	if user := a.Website.Credential("username"); user != "" {
		a.Log("Logging in", adapter.LevelDetail, false)
		key, err := a.login(ctx, devKey, user, a.Website.Credential("password"))
		if err != nil {
			return a.Reject(adapter.KindAuth, err)
		}
		userKey = key
	}

	a.Log("Creating paste", adapter.LevelInfo, true)

	form := map[string]string{
		"api_dev_key":           devKey,
		"api_option":            "paste",
		"api_paste_code":        code,
		"api_paste_name":        a.Content.Title,
		"api_paste_format":      "markdown",
		"api_paste_private":     "0",
		"api_paste_expire_date": "N",
	}
	if userKey != "" {
		form["api_user_key"] = userKey
	}

	body, err := a.post(ctx, "/api/api_post.php", form)
	if err != nil {
		return a.Reject(adapter.KindAPI, err)
	}
	if !strings.HasPrefix(body, "http") {
		return a.Reject(adapter.KindVerification, fmt.Errorf("unexpected paste response: %s", body))
	}

	shot := web.CaptureResult(ctx, a.Base, a.capture, body)
	return a.Succeed(body, shot)
}

func (a *Adapter) login(ctx context.Context, devKey, user, password string) (string, error) {
	key, err := a.post(ctx, "/api/api_login.php", map[string]string{
		"api_dev_key":       devKey,
		"api_user_name":     user,
		"api_user_password": password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}
	return key, nil
}

// post returns the trimmed plain-text response. Pastebin reports errors as
// 200 responses starting with "Bad API request".
func (a *Adapter) post(ctx context.Context, path string, form map[string]string) (string, error) {
	res, err := a.client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("failed to call pastebin: %w", err)
	}

	body := strings.TrimSpace(res.String())
	if res.IsError() || strings.HasPrefix(body, badRequestPrefix) {
		return "", fmt.Errorf("pastebin returned %s: %s", res.Status(), body)
	}
	return body, nil
}
