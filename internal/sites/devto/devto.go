// Package devto publishes articles through the DEV (Forem) API.
package devto

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name           = "Devto"
	DefaultBaseURL = "https://dev.to"
	maxTags        = 4
)

var nonTagChars = regexp.MustCompile(`[^a-z0-9]`)

// Adapter publishes content to DEV.
type Adapter struct {
	*adapter.Base
	client  *resty.Client
	capture web.Launcher
}

// New builds an Adapter from the shared publishing params.
func New(p adapter.Params, opts web.APIOptions) *Adapter {
	return &Adapter{
		Base:    adapter.NewBase(Name, p),
		client:  web.NewClient(opts.BaseURLOr(DefaultBaseURL), opts.HTTP),
		capture: opts.Capture,
	}
}

type article struct {
	Title        string   `json:"title"`
	BodyMarkdown string   `json:"body_markdown"`
	Published    bool     `json:"published"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	CanonicalURL string   `json:"canonical_url,omitempty"`
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	if err := a.Website.RequireCredentials("api_key"); err != nil {
		return a.Reject(adapter.KindValidation, err)
	}
	if a.Content.Title == "" {
		return a.Reject(adapter.KindValidation, errors.New("title is required"))
	}

	a.Log("Publishing article via API", adapter.LevelInfo, true)

	body := map[string]article{
		"article": {
			Title:        a.Content.Title,
			BodyMarkdown: a.Content.MarkdownBody(),
			Published:    true,
			Description:  a.Content.Description,
			Tags:         Tags(a.Content.Tags),
			CanonicalURL: a.Content.URL,
		},
	}

	var out struct {
		ID  int    `json:"id"`
		URL string `json:"url"`
	}
	res, err := a.client.R().
		SetContext(ctx).
		SetHeader("api-key", a.Website.Credential("api_key")).
		SetHeader("accept", "application/vnd.forem.api-v1+json").
		SetBody(body).
		SetResult(&out).
		Post("/api/articles")
	if err != nil {
		return a.Reject(adapter.KindAPI, fmt.Errorf("failed to call dev.to: %w", err))
	}
	if res.IsError() {
		return a.Reject(adapter.KindAPI, fmt.Errorf("dev.to returned %s: %s", res.Status(), res.String()))
	}
	if out.URL == "" {
		return a.Reject(adapter.KindVerification, errors.New("dev.to response has no article url"))
	}

	a.Logf(adapter.LevelDetail, "Article %d created", out.ID)
	shot := web.CaptureResult(ctx, a.Base, a.capture, out.URL)
	return a.Succeed(out.URL, shot)
}

// Tags normalises tags to DEV's rules: lowercase alphanumerics, at most four
func Tags(tags []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range tags {
		t = nonTagChars.ReplaceAllString(strings.ToLower(t), "")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	return out
}
