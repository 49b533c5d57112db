// Package plurk posts to a Plurk timeline through the OAuth1-signed APP API.
package plurk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name           = "Plurk"
	DefaultBaseURL = "https://www.plurk.com"
	maxContent     = 360
)

// Adapter publishes content to Plurk.
type Adapter struct {
	*adapter.Base
	opts web.APIOptions
}

// New builds an Adapter from the shared publishing params.
func New(p adapter.Params, opts web.APIOptions) *Adapter {
	return &Adapter{
		Base: adapter.NewBase(Name, p),
		opts: opts,
	}
}

func (a *Adapter) client(ctx context.Context) *resty.Client {
	config := oauth1.NewConfig(a.Website.Credential("consumer_key"), a.Website.Credential("consumer_secret"))
	token := oauth1.NewToken(a.Website.Credential("access_token"), a.Website.Credential("access_secret"))
	return web.Configure(resty.NewWithClient(config.Client(ctx, token)), a.opts.BaseURLOr(DefaultBaseURL), a.opts.HTTP)
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	if err := a.Website.RequireCredentials("consumer_key", "consumer_secret", "access_token", "access_secret"); err != nil {
		return a.Reject(adapter.KindValidation, err)
	}

	content := Compose(a.Content)
	if content == "" {
		return a.Reject(adapter.KindValidation, errors.New("content is empty"))
	}

	a.Log("Adding plurk", adapter.LevelInfo, true)

	var out struct {
		PlurkID   int64  `json:"plurk_id"`
		ErrorText string `json:"error_text"`
	}
	res, err := a.client(ctx).R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"content":   content,
			"qualifier": "shares",
			"lang":      "en",
		}).
		SetResult(&out).
		SetError(&out).
		Post("/APP/Timeline/plurkAdd")
	if err != nil {
		return a.Reject(adapter.KindAPI, fmt.Errorf("failed to call plurk: %w", err))
	}
	if res.IsError() || out.ErrorText != "" {
		msg := out.ErrorText
		if msg == "" {
			msg = res.String()
		}
		return a.Reject(adapter.KindAPI, fmt.Errorf("plurk returned %s: %s", res.Status(), msg))
	}
	if out.PlurkID == 0 {
		return a.Reject(adapter.KindVerification, errors.New("plurk response has no plurk_id"))
	}

	postURL := PostURL(out.PlurkID)
	shot := web.CaptureResult(ctx, a.Base, a.opts.Capture, postURL)
	return a.Succeed(postURL, shot)
}

// Compose builds the plurk text: title and link, or the summary, cut to 360 characters
func Compose(c adapter.Content) string {
	var parts []string
	if c.Title != "" {
		parts = append(parts, c.Title)
	} else if s := c.Summary(); s != "" {
		parts = append(parts, s)
	}
	if c.URL != "" {
		parts = append(parts, c.URL)
	}
	text := strings.Join(parts, " ")

	r := []rune(text)
	if len(r) <= maxContent {
		return text
	}
	if c.URL != "" {
		// keep the link whole
		head := []rune(strings.Join(parts[:len(parts)-1], " "))
		room := maxContent - len([]rune(c.URL)) - 2
		if room > 0 && room < len(head) {
			return string(head[:room]) + "… " + c.URL
		}
	}
	return string(r[:maxContent])
}

// PostURL is the public permalink; Plurk encodes ids in base 36
func PostURL(id int64) string {
	return DefaultBaseURL + "/p/" + strconv.FormatInt(id, 36)
}
