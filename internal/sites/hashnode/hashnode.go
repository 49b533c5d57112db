// Package hashnode publishes posts through the Hashnode GraphQL API.
package hashnode

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
	Name           = "Hashnode"
	DefaultBaseURL = "https://gql.hashnode.com"
	maxTags        = 5
)

const publishPostMutation = `mutation PublishPost($input: PublishPostInput!) {
  publishPost(input: $input) {
    post { id slug url }
  }
}`

var slugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Adapter publishes content to Hashnode.
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

type tag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type publishPostInput struct {
	Title              string `json:"title"`
	Subtitle           string `json:"subtitle,omitempty"`
	PublicationID      string `json:"publicationId"`
	ContentMarkdown    string `json:"contentMarkdown"`
	Tags               []tag  `json:"tags"`
	OriginalArticleURL string `json:"originalArticleURL,omitempty"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		PublishPost struct {
			Post struct {
				ID   string `json:"id"`
				Slug string `json:"slug"`
				URL  string `json:"url"`
			} `json:"post"`
		} `json:"publishPost"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	if err := a.Website.RequireCredentials("token", "publication_id"); err != nil {
		return a.Reject(adapter.KindValidation, err)
	}
	if a.Content.Title == "" {
		return a.Reject(adapter.KindValidation, errors.New("title is required"))
	}

	a.Log("Publishing post via GraphQL", adapter.LevelInfo, true)

	input := publishPostInput{
		Title:              a.Content.Title,
		Subtitle:           subtitle(a.Content.Description),
		PublicationID:      a.Website.Credential("publication_id"),
		ContentMarkdown:    a.Content.MarkdownBody(),
		Tags:               Tags(a.Content.Tags),
		OriginalArticleURL: a.Content.URL,
	}

	var out graphqlResponse
	res, err := a.client.R().
		SetContext(ctx).
		SetHeader("Authorization", a.Website.Credential("token")).
		SetHeader("content-type", "application/json").
		SetBody(graphqlRequest{
			Query:     publishPostMutation,
			Variables: map[string]any{"input": input},
		}).
		SetResult(&out).
		SetError(&out).
		Post("/")
	if err != nil {
		return a.Reject(adapter.KindAPI, fmt.Errorf("failed to call hashnode: %w", err))
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return a.Reject(adapter.KindAPI, fmt.Errorf("hashnode rejected post: %s", strings.Join(msgs, "; ")))
	}
	if res.IsError() {
		return a.Reject(adapter.KindAPI, fmt.Errorf("hashnode returned %s: %s", res.Status(), res.String()))
	}

	url := out.Data.PublishPost.Post.URL
	if url == "" {
		return a.Reject(adapter.KindVerification, errors.New("hashnode response has no post url"))
	}

	shot := web.CaptureResult(ctx, a.Base, a.capture, url)
	return a.Succeed(url, shot)
}

// Tags turns free-form tags into Hashnode tag inputs
func Tags(tags []string) []tag {
	out := []tag{}
	seen := map[string]bool{}
	for _, t := range tags {
		name := strings.TrimSpace(t)
		slug := strings.Trim(slugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, tag{Slug: slug, Name: name})
		if len(out) == maxTags {
			break
		}
	}
	return out
}

func subtitle(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > 150 {
		return string(r[:150])
	}
	return string(r)
}
