package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.LinkedInConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3000/auth/callback",
		Scopes:       []string{"openid", "w_member_social"},
		APIVersion:   "202405",
		AuthBaseURL:  srv.URL,
		APIBaseURL:   srv.URL,
	}, logging.Discard())
}

func TestAuthURL(t *testing.T) {
	c := NewClient(config.LinkedInConfig{
		ClientID:    "cid",
		RedirectURL: "http://localhost:3000/auth/callback",
		Scopes:      []string{"openid", "profile"},
	}, logging.Discard())

	u, err := url.Parse(c.AuthURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "www.linkedin.com", u.Host)
	assert.Equal(t, "/oauth/v2/authorization", u.Path)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "openid profile", q.Get("scope"))
	assert.Equal(t, "http://localhost:3000/auth/callback", q.Get("redirect_uri"))
}

func TestExchangeCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/v2/accessToken", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"tok","expires_in":5184000}`)
	})

	token, err := c.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "tok", token.AccessToken)
	assert.Equal(t, 5184000, token.ExpiresIn)
}

func TestUserInfoSendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/userinfo", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))
		assert.Equal(t, "202405", r.Header.Get("LinkedIn-Version"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"sub":"abc123","name":"Ada"}`)
	})

	info, err := c.UserInfo(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:person:abc123", info.URN())
}

func TestCreatePost(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/ugcPosts", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "urn:li:person:1", body["author"])
		assert.Equal(t, "PUBLISHED", body["lifecycleState"])

		w.Header().Set("X-RestLi-Id", "urn:li:share:42")
		w.WriteHeader(http.StatusCreated)
	})

	id, err := c.CreatePost(context.Background(), "tok", "urn:li:person:1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:42", id)
}

func TestUpdatePostUsesPartialUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/ugcPosts/urn%3Ali%3Ashare%3A42", r.URL.EscapedPath())
		assert.Equal(t, "PARTIAL_UPDATE", r.Header.Get("X-RestLi-Method"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"patch": map[string]any{
				"specificContent": map[string]any{
					"com.linkedin.ugc.ShareContent": map[string]any{
						"$set": map[string]any{
							"shareCommentary": map[string]any{"text": "edited"},
						},
					},
				},
			},
		}, body)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.UpdatePost(context.Background(), "tok", "urn:li:share:42", "edited"))
}

func TestCreateComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/socialActions/urn%3Ali%3AugcPost%3A7/comments", r.URL.EscapedPath())

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "urn:li:person:1", body["actor"])
		assert.Equal(t, "urn:li:ugcPost:7", body["object"])
		assert.Equal(t, map[string]any{"text": "nice"}, body["message"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"99","$URN":"urn:li:comment:(urn:li:ugcPost:7,99)","actor":"urn:li:person:1","message":{"text":"nice"}}`)
	})

	comment, err := c.CreateComment(context.Background(), "tok", "urn:li:person:1", "urn:li:ugcPost:7", "nice")
	require.NoError(t, err)
	assert.Equal(t, "99", comment.ID)
	assert.Equal(t, "urn:li:comment:(urn:li:ugcPost:7,99)", comment.URN)
	assert.Equal(t, "nice", comment.Message.Text)
}

func TestDeleteCommentPassesActor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rest/socialActions/urn%3Ali%3AugcPost%3A7/comments/99", r.URL.EscapedPath())
		assert.Equal(t, "urn:li:person:1", r.URL.Query().Get("actor"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteComment(context.Background(), "tok", "urn:li:person:1", "urn:li:ugcPost:7", "99"))
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"status":401,"message":"Invalid access token"}`)
	})

	_, err := c.GetPost(context.Background(), "bad", "urn:li:share:1")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, apiErr.Unauthorized())
	assert.Equal(t, "Invalid access token", apiErr.Message())
	assert.JSONEq(t, `{"status":401,"message":"Invalid access token"}`, string(apiErr.Body))
}
