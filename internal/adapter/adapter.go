// Package adapter defines the contract shared by every site publisher: identity,
// the per-publish log buffer, error screenshots and the Result type.
package adapter

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Website describes a publishing target. Credentials keys are site specific.
type Website struct {
	Site        string            `json:"site" yaml:"site"`
	URL         string            `json:"url" yaml:"url"`
	Category    string            `json:"category" yaml:"category"`
	Credentials map[string]string `json:"credentials" yaml:"credentials"`
}

// Credential returns the first non-empty credential among keys
func (w Website) Credential(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(w.Credentials[k]); v != "" {
			return v
		}
	}
	return ""
}

// RequireCredentials returns an error naming every missing key
func (w Website) RequireCredentials(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if w.Credential(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Content is the payload to publish. Adapters use whichever fields their site needs.
type Content struct {
	Title       string            `json:"title" yaml:"title"`
	Body        string            `json:"body" yaml:"body"`
	Markdown    string            `json:"markdown" yaml:"markdown"`
	HTML        string            `json:"html" yaml:"html"`
	Description string            `json:"description" yaml:"description"`
	Tags        []string          `json:"tags" yaml:"tags"`
	URL         string            `json:"url" yaml:"url"`
	Extra       map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// MarkdownBody prefers explicit markdown, then converts HTML, then falls back to Body
func (c Content) MarkdownBody() string {
	if c.Markdown != "" {
		return c.Markdown
	}
	if c.HTML != "" {
		converter := md.NewConverter("", true, nil)
		if out, err := converter.ConvertString(c.HTML); err == nil && strings.TrimSpace(out) != "" {
			return out
		}
	}
	return c.Body
}

// HTMLBody prefers explicit HTML and falls back to Body
func (c Content) HTMLBody() string {
	if c.HTML != "" {
		return c.HTML
	}
	return c.Body
}

// Summary returns Description, or the first 200 characters of the plain body
func (c Content) Summary() string {
	if c.Description != "" {
		return c.Description
	}
	body := []rune(strings.TrimSpace(c.Body))
	if len(body) > 200 {
		return string(body[:200])
	}
	return string(body)
}

//go:generate mockgen -source=adapter.go -destination=mocks/mocks.go -package=mocks

// Job is the hook an external job runner may attach to receive adapter logs
type Job interface {
	Log(message string)
}

// Page is something that can write a screenshot of itself to path
type Page interface {
	Screenshot(ctx context.Context, path string) error
}

// Browser is closed after a failed publish
type Browser interface {
	Close() error
}

// Uploader stores a local screenshot and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Publisher is implemented by every site adapter
type Publisher interface {
	Publish(ctx context.Context) Result
	CollectedLogs() []Entry
}

// Deps are the collaborators injected into every adapter
type Deps struct {
	Sink          Sink
	Uploader      Uploader
	Production    bool
	ScreenshotDir string
}

// Params is what an adapter is constructed from
type Params struct {
	RequestID string
	Website   Website
	Content   Content
	Job       Job
	Deps      Deps
}
