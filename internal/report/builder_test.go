package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/runner"
)

func TestBuild(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	outcomes := []runner.Outcome{
		{
			Site:     "devto",
			Result:   adapter.Ok{PostURL: "https://dev.to/ada/post", ScreenshotURL: "https://img.example/1.png"},
			Logs:     []adapter.Entry{{Message: "[Devto] Publication successful", Level: adapter.LevelSuccess}},
			Duration: 2 * time.Second,
		},
		{
			Site:   "reddit",
			Result: adapter.Err{Kind: adapter.KindAuth, Message: "stored session expired <login>"},
		},
	}

	r, err := b.Build("req-9", adapter.Content{Title: "Shipping Go"}, outcomes)
	require.NoError(t, err)

	assert.Equal(t, "Syndication: 1/2 published - Shipping Go", r.Subject)
	assert.Contains(t, r.HTMLBody, `href="https://dev.to/ada/post"`)
	assert.Contains(t, r.HTMLBody, "1 of 2 published")
	assert.Contains(t, r.HTMLBody, "stored session expired &lt;login&gt;")
	assert.Contains(t, r.PlainBody, "1. devto: OK https://dev.to/ada/post")
	assert.Contains(t, r.PlainBody, "   screenshot: https://img.example/1.png")
	assert.Contains(t, r.PlainBody, "2. reddit: FAILED [auth] stored session expired <login>")
}

func TestBuildNoOutcomes(t *testing.T) {
	b, err := New()
	require.NoError(t, err)
	_, err = b.Build("req", adapter.Content{}, nil)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
