package hashnode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
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
		Website: adapter.Website{Site: "hashnode", Credentials: map[string]string{"token": "tok", "publication_id": "pub1"}},
		Content: adapter.Content{Title: "Hello", Body: "plain body", Tags: []string{"Go Lang", "go-lang", "CLI"}},
	}, web.APIOptions{BaseURL: srv.URL})
}

func TestPublish(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("Authorization"))

		var req struct {
			Query     string `json:"query"`
			Variables struct {
				Input publishPostInput `json:"input"`
			} `json:"variables"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "publishPost")
		assert.Equal(t, "pub1", req.Variables.Input.PublicationID)
		assert.Equal(t, "plain body", req.Variables.Input.ContentMarkdown)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":{"publishPost":{"post":{"id":"p1","slug":"hello","url":"https://me.hashnode.dev/hello"}}}}`)
	})

	res := a.Publish(context.Background())
	assert.Equal(t, adapter.Ok{PostURL: "https://me.hashnode.dev/hello"}, res)
}

func TestGraphQLErrors(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":null,"errors":[{"message":"Publication not found"}]}`)
	})

	res := a.Publish(context.Background())
	require.IsType(t, adapter.Err{}, res)
	assert.Equal(t, "hashnode rejected post: Publication not found", res.(adapter.Err).Message)
}

func TestTags(t *testing.T) {
	want := []tag{{Slug: "go-lang", Name: "Go Lang"}, {Slug: "cli", Name: "CLI"}}
	if diff := cmp.Diff(want, Tags([]string{"Go Lang", "go-lang", " CLI ", "!!"})); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}
