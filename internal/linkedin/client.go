// Package linkedin wraps LinkedIn's OAuth2 and REST endpoints and exposes them
// as a session-keyed HTTP façade.
package linkedin

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ibeckermayer/syndicate/internal/config"
)

var tracer = otel.Tracer("github.com/ibeckermayer/syndicate/internal/linkedin")

const (
	restliProtocolVersion = "2.0.0"
	personURNPrefix       = "urn:li:person:"
)

// Token is the OAuth access token response
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// UserInfo is the OpenID userinfo response
type UserInfo struct {
	Sub   string `json:"sub"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// URN returns the member's person URN
func (u UserInfo) URN() string {
	return personURNPrefix + u.Sub
}

// Client calls LinkedIn on behalf of members identified by their access tokens
type Client struct {
	cfg    config.LinkedInConfig
	auth   *resty.Client
	api    *resty.Client
	logger *slog.Logger
}

// NewClient creates a client for cfg
func NewClient(cfg config.LinkedInConfig, logger *slog.Logger) *Client {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = "https://www.linkedin.com"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://api.linkedin.com"
	}
	if logger == nil {
		logger = slog.Default()
	}

	auth := resty.New()
	auth.SetBaseURL(strings.TrimRight(cfg.AuthBaseURL, "/"))
	auth.SetTimeout(30 * time.Second)

	api := resty.New()
	api.SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/"))
	api.SetTimeout(30 * time.Second)
	api.SetHeader("X-Restli-Protocol-Version", restliProtocolVersion)
	if cfg.APIVersion != "" {
		api.SetHeader("LinkedIn-Version", cfg.APIVersion)
	}

	return &Client{
		cfg:    cfg,
		auth:   auth,
		api:    api,
		logger: logger.With("component", "linkedin"),
	}
}

// AuthURL returns the authorization URL the member is redirected to
func (c *Client) AuthURL(state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("state", state)
	q.Set("scope", strings.Join(c.cfg.Scopes, " "))
	return strings.TrimRight(c.cfg.AuthBaseURL, "/") + "/oauth/v2/authorization?" + q.Encode()
}

// ExchangeCode trades an authorization code for an access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	ctx, span := tracer.Start(ctx, "LinkedIn.ExchangeCode")
	defer span.End()

	var token Token
	res, err := c.auth.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  c.cfg.RedirectURL,
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
		}).
		SetResult(&token).
		Post("/oauth/v2/accessToken")
	if err := check(span, res, err); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		err := fmt.Errorf("token response has no access_token")
		span.RecordError(err)
		return nil, err
	}
	return &token, nil
}

// UserInfo loads the member behind accessToken
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	ctx, span := tracer.Start(ctx, "LinkedIn.UserInfo")
	defer span.End()

	var info UserInfo
	res, err := c.request(ctx, accessToken).
		SetResult(&info).
		Get("/v2/userinfo")
	if err := check(span, res, err); err != nil {
		return nil, err
	}
	if info.Sub == "" {
		err := fmt.Errorf("userinfo response has no sub")
		span.RecordError(err)
		return nil, err
	}
	return &info, nil
}

// CreatePost publishes a public text share as author and returns its URN
func (c *Client) CreatePost(ctx context.Context, accessToken, author, text string) (string, error) {
	ctx, span := tracer.Start(ctx, "LinkedIn.CreatePost")
	defer span.End()

	body := map[string]any{
		"author":         author,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]string{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	var out struct {
		ID string `json:"id"`
	}
	res, err := c.request(ctx, accessToken).
		SetBody(body).
		SetResult(&out).
		Post("/v2/ugcPosts")
	if err := check(span, res, err); err != nil {
		return "", err
	}

	id := out.ID
	if id == "" {
		id = res.Header().Get("X-RestLi-Id")
	}
	span.SetAttributes(attribute.String("linkedin.post", id))
	return id, nil
}

// GetPost returns the raw post JSON
func (c *Client) GetPost(ctx context.Context, accessToken, postURN string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "LinkedIn.GetPost")
	defer span.End()

	res, err := c.request(ctx, accessToken).
		Get("/v2/ugcPosts/" + escapeURN(postURN))
	if err := check(span, res, err); err != nil {
		return nil, err
	}
	return res.Body(), nil
}

// DeletePost removes a post
func (c *Client) DeletePost(ctx context.Context, accessToken, postURN string) error {
	ctx, span := tracer.Start(ctx, "LinkedIn.DeletePost")
	defer span.End()

	res, err := c.request(ctx, accessToken).
		Delete("/v2/ugcPosts/" + escapeURN(postURN))
	return check(span, res, err)
}

// UpdatePost replaces the commentary of a post with a Rest.li partial update
func (c *Client) UpdatePost(ctx context.Context, accessToken, postURN, text string) error {
	ctx, span := tracer.Start(ctx, "LinkedIn.UpdatePost")
	defer span.End()

	body := map[string]any{
		"patch": map[string]any{
			"specificContent": map[string]any{
				"com.linkedin.ugc.ShareContent": map[string]any{
					"$set": map[string]any{
						"shareCommentary": map[string]string{"text": text},
					},
				},
			},
		},
	}

	res, err := c.request(ctx, accessToken).
		SetHeader("X-RestLi-Method", "PARTIAL_UPDATE").
		SetBody(body).
		Post("/v2/ugcPosts/" + escapeURN(postURN))
	return check(span, res, err)
}

// Comment is a comment as returned by socialActions
type Comment struct {
	ID      string `json:"id"`
	URN     string `json:"$URN,omitempty"`
	Actor   string `json:"actor"`
	Object  string `json:"object,omitempty"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// CreateComment comments on threadURN as actor
func (c *Client) CreateComment(ctx context.Context, accessToken, actor, threadURN, text string) (*Comment, error) {
	ctx, span := tracer.Start(ctx, "LinkedIn.CreateComment")
	defer span.End()
	span.SetAttributes(attribute.String("linkedin.thread", threadURN))

	body := map[string]any{
		"actor":   actor,
		"object":  threadURN,
		"message": map[string]string{"text": text},
	}

	var out Comment
	res, err := c.request(ctx, accessToken).
		SetBody(body).
		SetResult(&out).
		Post("/rest/socialActions/" + escapeURN(threadURN) + "/comments")
	if err := check(span, res, err); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out.ID = res.Header().Get("X-RestLi-Id")
	}
	return &out, nil
}

// GetComments returns the raw comment collection JSON for threadURN
func (c *Client) GetComments(ctx context.Context, accessToken, threadURN string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "LinkedIn.GetComments")
	defer span.End()

	res, err := c.request(ctx, accessToken).
		Get("/rest/socialActions/" + escapeURN(threadURN) + "/comments")
	if err := check(span, res, err); err != nil {
		return nil, err
	}
	return res.Body(), nil
}

// DeleteComment deletes commentID from threadURN as actor
func (c *Client) DeleteComment(ctx context.Context, accessToken, actor, threadURN, commentID string) error {
	ctx, span := tracer.Start(ctx, "LinkedIn.DeleteComment")
	defer span.End()

	res, err := c.request(ctx, accessToken).
		SetQueryParam("actor", actor).
		Delete("/rest/socialActions/" + escapeURN(threadURN) + "/comments/" + url.PathEscape(commentID))
	return check(span, res, err)
}

// escapeURN encodes a URN for use as a path segment, colons included
func escapeURN(urn string) string {
	return url.QueryEscape(urn)
}

func (c *Client) request(ctx context.Context, accessToken string) *resty.Request {
	return c.api.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("content-type", "application/json")
}

// check converts transport failures and non-2xx responses into errors
func check(span trace.Span, res *resty.Response, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("failed to call linkedin: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode()))
	if res.IsError() {
		apiErr := &APIError{Status: res.StatusCode(), Body: res.Body()}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, res.Status())
		return apiErr
	}
	return nil
}
