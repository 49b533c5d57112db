package pastebin

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

func newAdapter(t *testing.T, h http.HandlerFunc, creds map[string]string) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return New(adapter.Params{
		Website: adapter.Website{Site: "pastebin", Credentials: creds},
		Content: adapter.Content{Title: "Notes", HTML: "<p>Some <strong>notes</strong></p>"},
	}, web.APIOptions{BaseURL: srv.URL})
}

func TestPublishAsUser(t *testing.T) {
	var calls []string
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "dev", r.PostForm.Get("api_dev_key"))

		switch r.URL.Path {
		case "/api/api_login.php":
			assert.Equal(t, "ada", r.PostForm.Get("api_user_name"))
			io.WriteString(w, "user-key-1")
		case "/api/api_post.php":
			assert.Equal(t, "user-key-1", r.PostForm.Get("api_user_key"))
			assert.Equal(t, "paste", r.PostForm.Get("api_option"))
			assert.Equal(t, "Notes", r.PostForm.Get("api_paste_name"))
			assert.Equal(t, "Some **notes**", r.PostForm.Get("api_paste_code"))
			io.WriteString(w, "https://pastebin.com/AbC123\n")
		}
	}, map[string]string{"api_dev_key": "dev", "username": "ada", "password": "pw"})

	res := a.Publish(context.Background())
	assert.Equal(t, adapter.Ok{PostURL: "https://pastebin.com/AbC123"}, res)
	assert.Equal(t, []string{"/api/api_login.php", "/api/api_post.php"}, calls)
}

func TestPublishGuestPaste(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/api_post.php", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Empty(t, r.PostForm.Get("api_user_key"))
		io.WriteString(w, "https://pastebin.com/Guest1")
	}, map[string]string{"api_dev_key": "dev"})

	res := a.Publish(context.Background())
	require.True(t, adapter.Succeeded(res))
}

func TestBadAPIRequest(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Bad API request, invalid api_dev_key")
	}, map[string]string{"api_dev_key": "dev"})

	res := a.Publish(context.Background())
	require.IsType(t, adapter.Err{}, res)
	assert.Equal(t, adapter.KindAPI, res.(adapter.Err).Kind)
	assert.Contains(t, res.(adapter.Err).Message, "invalid api_dev_key")
}

func TestFailedLoginIsAuthError(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Bad API request, invalid login")
	}, map[string]string{"api_dev_key": "dev", "username": "ada", "password": "bad"})

	res := a.Publish(context.Background())
	require.IsType(t, adapter.Err{}, res)
	assert.Equal(t, adapter.KindAuth, res.(adapter.Err).Kind)
}
