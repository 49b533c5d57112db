package linkedincomment

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
	"github.com/ibeckermayer/syndicate/internal/types"
)

// RelatedLinks finds a resource worth mentioning in a comment
type RelatedLinks interface {
	Find(ctx context.Context, category types.Category, query string) (string, error)
}

// RelatedLinkClient queries the related-link scraping API
type RelatedLinkClient struct {
	client *resty.Client
	apiKey string
}

// NewRelatedLinkClient returns nil when cfg has no endpoint
func NewRelatedLinkClient(cfg config.RelatedLinksConfig, opts web.HTTPOptions) *RelatedLinkClient {
	if cfg.Endpoint == "" {
		return nil
	}
	opts.CloudflareBypass = true
	return &RelatedLinkClient{
		client: web.NewClient(cfg.Endpoint, opts),
		apiKey: cfg.APIKey,
	}
}

type relatedResponse struct {
	Links []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"links"`
}

// Find returns the first link the API suggests, or "" when it has none
func (c *RelatedLinkClient) Find(ctx context.Context, category types.Category, query string) (string, error) {
	var out relatedResponse
	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("category", string(category)).
		SetQueryParam("q", query).
		SetResult(&out)
	if c.apiKey != "" {
		req.SetHeader("x-api-key", c.apiKey)
	}

	res, err := req.Get("")
	if err != nil {
		return "", fmt.Errorf("failed to query related links: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("related links returned %d: %s", res.StatusCode(), strings.TrimSpace(res.String()))
	}
	for _, l := range out.Links {
		if l.URL != "" {
			return l.URL, nil
		}
	}
	return "", nil
}
