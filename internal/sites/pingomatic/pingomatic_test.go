package pingomatic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
	"github.com/ibeckermayer/syndicate/internal/sites/web/mocks"
)

func newAdapter(t *testing.T, page *mocks.MockPage) *Adapter {
	return New(adapter.Params{
		Website: adapter.Website{Site: "pingomatic"},
		Content: adapter.Content{Title: "My Blog", URL: "https://blog.example.com"},
		Deps:    adapter.Deps{ScreenshotDir: t.TempDir()},
	}, func(context.Context) (web.Page, error) { return page, nil })
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)

	gomock.InOrder(
		page.EXPECT().Navigate(DefaultURL).Return(nil),
		page.EXPECT().Fill(selTitle, "My Blog").Return(nil),
		page.EXPECT().Fill(selBlogURL, "https://blog.example.com").Return(nil),
	)
	page.EXPECT().Exists(services[0]).Return(true, nil)
	page.EXPECT().Click(services[0]).Return(nil)
	page.EXPECT().Exists(gomock.Any()).Return(false, nil).Times(len(services) - 1)
	page.EXPECT().Click(selSubmit).Return(nil)
	page.EXPECT().WaitAny(resultTimeout, selResults, selError).Return(selResults, nil)
	page.EXPECT().HTML().Return(`<html><body><h2>Pinging complete!</h2></body></html>`, nil)
	page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Close().Return(nil)

	a := newAdapter(t, page)
	res := a.Publish(context.Background())
	require.IsType(t, adapter.Ok{}, res)
	assert.Equal(t, "https://blog.example.com", res.(adapter.Ok).PostURL)
}

func TestPingNotConfirmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)

	page.EXPECT().Navigate(gomock.Any()).Return(nil)
	page.EXPECT().Fill(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	page.EXPECT().Exists(gomock.Any()).Return(false, nil).Times(len(services))
	page.EXPECT().Click(selSubmit).Return(nil)
	page.EXPECT().WaitAny(gomock.Any(), gomock.Any(), gomock.Any()).Return(selError, nil)
	page.EXPECT().HTML().Return(`<html><body><p class="error">Slow down</p></body></html>`, nil)
	// error screenshot, then the browser is closed by the error path
	page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Close().Return(nil)

	a := newAdapter(t, page)
	res := a.Publish(context.Background())
	assert.Equal(t, adapter.Err{Kind: adapter.KindVerification, Message: "ping not confirmed: Slow down"}, res)
}

func TestNavigationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)

	page.EXPECT().Navigate(gomock.Any()).Return(errors.New("net::ERR_NAME_NOT_RESOLVED"))
	page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).Return(errors.New("no page"))
	page.EXPECT().Close().Return(nil)

	a := newAdapter(t, page)
	res := a.Publish(context.Background())
	require.IsType(t, adapter.Err{}, res)
	assert.Equal(t, adapter.KindNavigation, res.(adapter.Err).Kind)
	assert.Equal(t, "net::ERR_NAME_NOT_RESOLVED", res.(adapter.Err).Message)
}

func TestRequiresURL(t *testing.T) {
	a := New(adapter.Params{}, nil)
	res := a.Publish(context.Background())
	assert.Equal(t, adapter.KindValidation, res.(adapter.Err).Kind)
}
