package adapter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsiteCredentials(t *testing.T) {
	w := Website{Credentials: map[string]string{"username": "alice", "password": " ", "api_key": "k"}}

	assert.Equal(t, "alice", w.Credential("username"))
	assert.Equal(t, "k", w.Credential("token", "api_key"))
	assert.Empty(t, w.Credential("password"))

	require.NoError(t, w.RequireCredentials("username", "api_key"))
	err := w.RequireCredentials("username", "password", "token")
	require.Error(t, err)
	assert.Equal(t, "missing credentials: password, token", err.Error())
}

func TestContentMarkdownBody(t *testing.T) {
	assert.Equal(t, "# given", Content{Markdown: "# given", HTML: "<p>x</p>"}.MarkdownBody())
	assert.Equal(t, "plain", Content{Body: "plain"}.MarkdownBody())

	converted := Content{HTML: "<h1>Title</h1><p>Hello <strong>world</strong></p>"}.MarkdownBody()
	assert.Contains(t, converted, "# Title")
	assert.Contains(t, converted, "**world**")
}

func TestContentSummary(t *testing.T) {
	assert.Equal(t, "desc", Content{Description: "desc", Body: "body"}.Summary())
	long := strings.Repeat("a", 250)
	assert.Len(t, Content{Body: long}.Summary(), 200)
}

func TestSummaryJSON(t *testing.T) {
	data, err := json.Marshal(Err{Kind: KindAPI, Message: "401 Unauthorized"}.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"401 Unauthorized","kind":"api"}`, string(data))

	data, err = json.Marshal(Ok{PostURL: "https://x/p"}.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"postUrl":"https://x/p"}`, string(data))
}
