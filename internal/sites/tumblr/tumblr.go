// Package tumblr publishes text posts through the Tumblr v2 API using the
// Neue Post Format.
package tumblr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name           = "Tumblr"
	DefaultBaseURL = "https://api.tumblr.com"
)

// Adapter publishes content to Tumblr.
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

// Block is one NPF content block
type Block struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
	Text    string `json:"text,omitempty"`
	URL     string `json:"url,omitempty"`
	Title   string `json:"title,omitempty"`
}

type createResponse struct {
	Meta struct {
		Status int    `json:"status"`
		Msg    string `json:"msg"`
	} `json:"meta"`
	// Response is an object on success and an empty array on failure
	Response json.RawMessage `json:"response"`
	Errors   []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	if err := a.Website.RequireCredentials("access_token", "blog"); err != nil {
		return a.Reject(adapter.KindValidation, err)
	}
	blog := a.Website.Credential("blog")

	blocks := Blocks(a.Content)
	if len(blocks) == 0 {
		return a.Reject(adapter.KindValidation, errors.New("content is empty"))
	}

	a.Log("Creating post", adapter.LevelInfo, true)

	body := map[string]any{
		"content": blocks,
		"state":   "published",
	}
	if len(a.Content.Tags) > 0 {
		body["tags"] = strings.Join(a.Content.Tags, ",")
	}

	var out createResponse
	res, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.Website.Credential("access_token")).
		SetHeader("content-type", "application/json").
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/v2/blog/" + url.PathEscape(blog) + "/posts")
	if err != nil {
		return a.Reject(adapter.KindAPI, fmt.Errorf("failed to call tumblr: %w", err))
	}
	if res.IsError() {
		msg := out.Meta.Msg
		if len(out.Errors) > 0 {
			msg = out.Errors[0].Detail
		}
		if msg == "" {
			msg = res.String()
		}
		kind := adapter.KindAPI
		if res.StatusCode() == 401 {
			kind = adapter.KindAuth
		}
		return a.Reject(kind, fmt.Errorf("tumblr returned %s: %s", res.Status(), msg))
	}

	var created struct {
		ID       json.Number `json:"id"`
		IDString string      `json:"id_string"`
	}
	if err := json.Unmarshal(out.Response, &created); err != nil {
		return a.Reject(adapter.KindVerification, fmt.Errorf("failed to decode tumblr response: %w", err))
	}
	id := created.IDString
	if id == "" {
		id = created.ID.String()
	}
	if id == "" {
		return a.Reject(adapter.KindVerification, errors.New("tumblr response has no post id"))
	}

	postURL := PostURL(blog, id)
	shot := web.CaptureResult(ctx, a.Base, a.capture, postURL)
	return a.Succeed(postURL, shot)
}

// Blocks converts content into NPF: a heading, one text block per paragraph and a link block
func Blocks(c adapter.Content) []Block {
	var blocks []Block
	if c.Title != "" {
		blocks = append(blocks, Block{Type: "text", Subtype: "heading1", Text: c.Title})
	}

	text := c.Body
	if text == "" {
		text = c.MarkdownBody()
	}
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			blocks = append(blocks, Block{Type: "text", Text: para})
		}
	}

	if c.URL != "" {
		blocks = append(blocks, Block{Type: "link", URL: c.URL, Title: c.Title})
	}
	return blocks
}

// PostURL builds the public URL; blog is a name or a custom domain
func PostURL(blog, id string) string {
	host := blog
	if !strings.Contains(blog, ".") {
		host = blog + ".tumblr.com"
	}
	return "https://" + host + "/post/" + id
}
