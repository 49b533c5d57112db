package browser

import (
	"context"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	base := len(chromedp.DefaultExecAllocatorOptions)

	headful := Options(Config{})
	headless := Options(Config{Headless: true})
	withExt := Options(Config{ExtensionPath: "/opt/captcha-solver"})

	assert.Greater(t, len(headful), base)
	assert.Equal(t, len(headful)+1, len(headless))
	assert.Equal(t, len(headful)+2, len(withExt))
}

func TestNilSessionIsSafe(t *testing.T) {
	var s *Session

	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Screenshot(context.Background(), "/tmp/x.png"), ErrClosed)
	require.ErrorIs(t, s.Run(), ErrClosed)
}
