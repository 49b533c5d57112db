package tumblr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

func newAdapter(t *testing.T, h http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return New(adapter.Params{
		Website: adapter.Website{Site: "tumblr", Credentials: map[string]string{"access_token": "tok", "blog": "myblog"}},
		Content: adapter.Content{Title: "Hi", Body: "one\n\ntwo", Tags: []string{"a", "b"}, URL: "https://example.com"},
	}, web.APIOptions{BaseURL: srv.URL})
}

func TestPublish(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/blog/myblog/posts", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body struct {
			Content []Block `json:"content"`
			Tags    string  `json:"tags"`
			State   string  `json:"state"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Content, 4)
		assert.Equal(t, "a,b", body.Tags)
		assert.Equal(t, "published", body.State)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"meta":{"status":201,"msg":"Created"},"response":{"id":"735021390122090496"}}`)
	})

	res := a.Publish(context.Background())
	assert.Equal(t, adapter.Ok{PostURL: "https://myblog.tumblr.com/post/735021390122090496"}, res)
}

func TestUnauthorized(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"meta":{"status":401,"msg":"Unauthorized"},"response":[],"errors":[{"title":"Unauthorized","detail":"Unable to authorize"}]}`)
	})

	res := a.Publish(context.Background())
	require.IsType(t, adapter.Err{}, res)
	assert.Equal(t, adapter.KindAuth, res.(adapter.Err).Kind)
	assert.Contains(t, res.(adapter.Err).Message, "Unable to authorize")
}

func TestBlocks(t *testing.T) {
	blocks := Blocks(adapter.Content{Title: "T", Body: "p1\r\n\r\n\r\np2"})
	assert.Equal(t, []Block{
		{Type: "text", Subtype: "heading1", Text: "T"},
		{Type: "text", Text: "p1"},
		{Type: "text", Text: "p2"},
	}, blocks)
}

func TestPostURL(t *testing.T) {
	assert.Equal(t, "https://myblog.tumblr.com/post/1", PostURL("myblog", "1"))
	assert.Equal(t, "https://blog.example.com/post/1", PostURL("blog.example.com", "1"))
}
